package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskName_Valid(t *testing.T) {
	for _, n := range []TaskName{TaskHashPassword, TaskSendEmail, TaskGenerateShayari} {
		assert.True(t, n.Valid(), n)
	}
	assert.False(t, TaskName("doSomethingElse").Valid())
	assert.False(t, TaskName("").Valid())
}

func TestRequest_PayloadIsCopied(t *testing.T) {
	p := HashPasswordPayload{Password: "Secret123"}
	req, err := NewRequest(TaskHashPassword, &p)
	require.NoError(t, err)

	p.Password = "changed"

	var got HashPasswordPayload
	require.NoError(t, req.Decode(&got))
	assert.Equal(t, "Secret123", got.Password)
}

func TestRequest_NilPayload(t *testing.T) {
	req, err := NewRequest("doSomethingElse", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(req.Payload))
}

func TestResult_Err(t *testing.T) {
	assert.NoError(t, Success("x").Err())

	err := UnknownTask("doSomethingElse").Err()
	require.Error(t, err)
	assert.Equal(t, "Unknown task: doSomethingElse", err.Error())
	assert.True(t, errors.Is(err, ErrUnknownTask))
	assert.False(t, errors.Is(err, ErrExecution))

	err = Failure(KindMissingCredential, "API Key missing").Err()
	assert.True(t, errors.Is(err, ErrMissingCredential))

	err = Failure("", "boom").Err()
	assert.True(t, errors.Is(err, ErrExecution))
}

func TestEmailJob_RoundTrip(t *testing.T) {
	p := SendEmailPayload{
		Auth:    Credentials{User: "u", Pass: "p"},
		To:      "a@example.com",
		Subject: "Your OTP Code",
		HTML:    "<b>123456</b>",
	}
	j := EmailJob(p)
	assert.Equal(t, JobVerificationEmail, j.Type)
	assert.NotContains(t, j.Payload, "pass")

	got := j.EmailPayload()
	assert.Equal(t, "a@example.com", got.To)
	assert.Equal(t, "Your OTP Code", got.Subject)
	assert.Equal(t, "<b>123456</b>", got.HTML)
	assert.Empty(t, got.Auth.Pass)
}
