package domain

import (
	"encoding/json"
	"fmt"
)

// TaskName identifies a unit of offloaded work.
type TaskName string

const (
	TaskHashPassword    TaskName = "hashPassword"
	TaskSendEmail       TaskName = "sendEmail"
	TaskGenerateShayari TaskName = "generateShayari"
)

func (n TaskName) Valid() bool {
	switch n {
	case TaskHashPassword, TaskSendEmail, TaskGenerateShayari:
		return true
	}
	return false
}

// Request is the only input a worker receives. The payload is kept as
// raw JSON so that it is copied, never shared, across the worker boundary.
type Request struct {
	Task    TaskName        `json:"task"`
	Payload json.RawMessage `json:"payload"`
}

func NewRequest(task TaskName, payload any) (Request, error) {
	if payload == nil {
		payload = struct{}{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Request{}, fmt.Errorf("encode %s payload: %w", task, err)
	}
	return Request{Task: task, Payload: b}, nil
}

// Decode unmarshals the payload into v.
func (r Request) Decode(v any) error {
	if len(r.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(r.Payload, v)
}

// Result is the single message a worker posts back. Exactly one of
// Value or Error is meaningful, selected by OK.
type Result struct {
	OK    bool      `json:"ok"`
	Value string    `json:"value,omitempty"`
	Error string    `json:"error,omitempty"`
	Kind  ErrorKind `json:"kind,omitempty"`
}

func Success(v string) Result {
	return Result{OK: true, Value: v}
}

func Failure(kind ErrorKind, msg string) Result {
	return Result{Kind: kind, Error: msg}
}

// UnknownTask is the failure every layer reports for unrecognized names.
func UnknownTask(n TaskName) Result {
	return Failure(KindUnknownTask, fmt.Sprintf("Unknown task: %s", n))
}

type HashPasswordPayload struct {
	Password string `json:"password"`
}

type Credentials struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

type SendEmailPayload struct {
	// Auth overrides the configured SMTP credentials when set.
	Auth    Credentials `json:"auth"`
	To      string      `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html"`
}

type GenerateShayariPayload struct {
	// APIKey overrides the configured key when set.
	APIKey string `json:"apiKey"`
	Prompt string `json:"prompt"`
}

// EmailSent is the fixed confirmation value of a successful sendEmail.
const EmailSent = "Email sent successfully"
