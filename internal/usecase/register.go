package usecase

import (
	"alfaaz/internal/domain"
	"alfaaz/internal/ports"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrUserExists  = errors.New("user already exists")
	ErrHashFailed  = errors.New("password hashing failed")
	ErrEmailFailed = errors.New("email could not be sent")

	ErrUserNotFound = errors.New("user not found")
	ErrInvalidOTP   = errors.New("invalid otp")
	ErrOTPExpired   = errors.New("otp has expired")
)

const (
	otpTTL          = 10 * time.Minute
	otpEmailSubject = "Your OTP Code - अल्फाज़"
)

// Registration creates or refreshes an unverified account and mails its OTP.
//
// Hashing failure aborts before anything is stored. Email failure after the
// user is stored is retried through the outbox when one is configured;
// otherwise it fails the request and the user stays pending.
type Registration struct {
	Tasks  ports.TaskRunner
	Users  ports.UserStore
	Outbox *Enqueuer
	Now    func() time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterResult struct {
	Email       string
	EmailQueued bool
	JobID       string
}

func (r Registration) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	logger := log.Ctx(ctx).With().Str("email", in.Email).Logger()

	user, err := r.Users.FindUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		user = &domain.User{Email: in.Email}
	case err != nil:
		return RegisterResult{}, fmt.Errorf("look up user: %w", err)
	case user.Verified:
		return RegisterResult{}, ErrUserExists
	}

	hash, err := r.Tasks.Run(ctx, domain.TaskHashPassword, domain.HashPasswordPayload{Password: in.Password})
	if err != nil {
		return RegisterResult{}, fmt.Errorf("%w: %w", ErrHashFailed, err)
	}

	otp, err := generateOTP()
	if err != nil {
		return RegisterResult{}, err
	}
	user.Name = in.Name
	user.PasswordHash = hash
	user.OTP = otp
	user.OTPExpiresAt = r.now().Add(otpTTL)
	if err := r.Users.SaveUser(ctx, user); err != nil {
		return RegisterResult{}, fmt.Errorf("save user: %w", err)
	}

	mail := VerificationEmail(user.Email, otp)
	_, err = r.Tasks.Run(ctx, domain.TaskSendEmail, mail)
	if err == nil {
		logger.Info().Msg("verification email sent")
		return RegisterResult{Email: user.Email}, nil
	}
	if r.Outbox == nil {
		logger.Error().Err(err).Msg("verification email failed")
		return RegisterResult{}, fmt.Errorf("%w: %w", ErrEmailFailed, err)
	}

	logger.Warn().Err(err).Msg("verification email failed, queueing retry")
	id, qerr := r.Outbox.Now(ctx, domain.EmailJob(mail))
	if qerr != nil {
		logger.Error().Err(qerr).Msg("queueing verification email failed")
		return RegisterResult{}, fmt.Errorf("%w: %w", ErrEmailFailed, errors.Join(err, qerr))
	}
	return RegisterResult{Email: user.Email, EmailQueued: true, JobID: id}, nil
}

// Verify redeems the OTP mailed at registration and marks the user verified.
// The OTP is single use.
func (r Registration) Verify(ctx context.Context, email, otp string) (*domain.User, error) {
	logger := log.Ctx(ctx).With().Str("email", email).Logger()

	user, err := r.Users.FindUserByEmail(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if user.OTP == "" || strings.TrimSpace(user.OTP) != strings.TrimSpace(otp) {
		logger.Info().Msg("otp mismatch")
		return nil, ErrInvalidOTP
	}
	if r.now().After(user.OTPExpiresAt) {
		logger.Info().Msg("otp expired")
		return nil, ErrOTPExpired
	}

	user.Verified = true
	user.OTP = ""
	user.OTPExpiresAt = time.Time{}
	if err := r.Users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	logger.Info().Msg("email verified")
	return user, nil
}

func (r Registration) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// VerificationEmail builds the OTP message. Credentials are left to the worker.
func VerificationEmail(to, otp string) domain.SendEmailPayload {
	return domain.SendEmailPayload{
		To:      to,
		Subject: otpEmailSubject,
		HTML: fmt.Sprintf(`<h1>Verify your account</h1>
<p>Your OTP is: <b style="font-size: 24px;">%s</b></p>
<p>This code expires in %d minutes.</p>`, otp, int(otpTTL.Minutes())),
	}
}

// generateOTP returns a random six digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
