package worker

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"alfaaz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_LongMultibytePassword(t *testing.T) {
	// 13 × "ख़" is 78 bytes
	password := strings.Repeat("ख़", 13)
	require.Greater(t, len(password), MaxPasswordBytes)

	e := &Executor{Hasher: BcryptHasher{Cost: 4}}
	res := e.Execute(context.Background(), request(t, domain.TaskHashPassword, domain.HashPasswordPayload{Password: password}))

	require.True(t, res.OK, res.Error)
	assert.Len(t, res.Value, 60)
	assert.True(t, Compare(res.Value, password))
	assert.False(t, Compare(res.Value, strings.Repeat("ख़", 11)))
}

func TestTruncatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"short", "Secret123", 9},
		{"exactly the limit", strings.Repeat("a", 72), 72},
		{"ascii over the limit", strings.Repeat("a", 80), 72},
		{"cut inside a rune", "a" + strings.Repeat("ख", 24), 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncatePassword(tt.password)
			assert.Len(t, got, tt.want)
			assert.True(t, utf8.Valid(got))
			assert.True(t, strings.HasPrefix(tt.password, string(got)))
		})
	}
}
