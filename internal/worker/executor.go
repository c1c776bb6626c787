// Package worker performs the offloaded tasks. An Executor runs exactly one
// task per call and never returns an error: every failure is reported as a
// failed domain.Result so that it can be posted back as a message.
package worker

import (
	"alfaaz/internal/config"
	"alfaaz/internal/domain"
	"context"
	"fmt"
)

type Hasher interface {
	Hash(password string) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, auth domain.Credentials, msg domain.SendEmailPayload) error
}

type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

type Executor struct {
	Hasher    Hasher
	Mailer    Mailer
	Generator Generator

	// SMTPAuth and APIKey are used when a payload leaves its own secret empty.
	SMTPAuth domain.Credentials
	APIKey   string
}

// NewExecutor wires the production collaborators and closes over the
// secrets read at process start.
func NewExecutor(cfg *config.Config) *Executor {
	return &Executor{
		Hasher:    BcryptHasher{Cost: DefaultCost},
		Mailer:    NewSMTPMailer(cfg.SMTP),
		Generator: NewGeminiGenerator(cfg.Gemini),
		SMTPAuth:  domain.Credentials{User: cfg.SMTP.User, Pass: cfg.SMTP.Pass},
		APIKey:    cfg.Gemini.APIKey,
	}
}

func (e *Executor) Execute(ctx context.Context, req domain.Request) domain.Result {
	switch req.Task {
	case domain.TaskHashPassword:
		var p domain.HashPasswordPayload
		if err := req.Decode(&p); err != nil {
			return invalidPayload(req.Task, err)
		}
		return e.hashPassword(p)

	case domain.TaskSendEmail:
		var p domain.SendEmailPayload
		if err := req.Decode(&p); err != nil {
			return invalidPayload(req.Task, err)
		}
		return e.sendEmail(ctx, p)

	case domain.TaskGenerateShayari:
		var p domain.GenerateShayariPayload
		if err := req.Decode(&p); err != nil {
			return invalidPayload(req.Task, err)
		}
		return e.generateShayari(ctx, p)

	default:
		return domain.UnknownTask(req.Task)
	}
}

func (e *Executor) hashPassword(p domain.HashPasswordPayload) domain.Result {
	h, err := e.Hasher.Hash(p.Password)
	if err != nil {
		return domain.Failure(domain.KindExecution, err.Error())
	}
	return domain.Success(h)
}

func (e *Executor) sendEmail(ctx context.Context, p domain.SendEmailPayload) domain.Result {
	auth := p.Auth
	if auth.User == "" {
		auth = e.SMTPAuth
	}
	if auth.User == "" {
		return domain.Failure(domain.KindMissingCredential, "SMTP credentials missing")
	}
	if err := e.Mailer.Send(ctx, auth, p); err != nil {
		return domain.Failure(domain.KindExecution, err.Error())
	}
	return domain.Success(domain.EmailSent)
}

func (e *Executor) generateShayari(ctx context.Context, p domain.GenerateShayariPayload) domain.Result {
	key := p.APIKey
	if key == "" {
		key = e.APIKey
	}
	if key == "" {
		return domain.Failure(domain.KindMissingCredential, "API Key missing")
	}
	text, err := e.Generator.Generate(ctx, key, p.Prompt)
	if err != nil {
		return domain.Failure(domain.KindExecution, err.Error())
	}
	return domain.Success(text)
}

func invalidPayload(task domain.TaskName, err error) domain.Result {
	return domain.Failure(domain.KindExecution, fmt.Sprintf("invalid %s payload: %v", task, err))
}
