package domain

import "time"

type JobStatus string

const (
	StatusQueued  JobStatus = "queued"
	StatusRunning JobStatus = "running"
	StatusDone    JobStatus = "done"
	StatusFailed  JobStatus = "failed"
	StatusDelayed JobStatus = "delayed"
)

// JobVerificationEmail is the only outbox job type: a verification
// email whose inline delivery failed during registration.
const JobVerificationEmail = "email.verification"

// Job is a durable outbox entry retried by the mailer until it succeeds
// or exhausts MaxAttempts.
type Job struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Payload     map[string]string `json:"payload"`
	Attempts    int               `json:"attempts"`
	MaxAttempts int               `json:"max_attempts"`
	Status      JobStatus         `json:"status"`
	LastError   string            `json:"last_error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	NextRunAt   time.Time         `json:"next_run_at"`
}

// EmailJob builds an outbox job carrying a sendEmail payload.
func EmailJob(p SendEmailPayload) Job {
	return Job{
		Type: JobVerificationEmail,
		Payload: map[string]string{
			"to":      p.To,
			"subject": p.Subject,
			"html":    p.HTML,
		},
	}
}

// EmailPayload reverses EmailJob. Credentials are never stored in the outbox.
func (j Job) EmailPayload() SendEmailPayload {
	return SendEmailPayload{
		To:      j.Payload["to"],
		Subject: j.Payload["subject"],
		HTML:    j.Payload["html"],
	}
}
