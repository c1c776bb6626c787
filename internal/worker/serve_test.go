package worker

import (
	"alfaaz/internal/domain"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_OneRequestOneResult(t *testing.T) {
	in := strings.NewReader(`{"task":"hashPassword","payload":{"password":"Secret123"}}`)
	var out bytes.Buffer

	err := Serve(context.Background(), in, &out, &Executor{Hasher: BcryptHasher{Cost: 4}})
	require.NoError(t, err)

	var res domain.Result
	require.NoError(t, json.NewDecoder(&out).Decode(&res))
	require.True(t, res.OK)
	assert.True(t, Compare(res.Value, "Secret123"))
}

func TestServe_UnknownTask(t *testing.T) {
	in := strings.NewReader(`{"task":"doSomethingElse","payload":{}}`)
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), in, &out, &Executor{}))

	var res domain.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.False(t, res.OK)
	assert.Equal(t, "Unknown task: doSomethingElse", res.Error)
}

func TestServe_MalformedRequest(t *testing.T) {
	var out bytes.Buffer

	err := Serve(context.Background(), strings.NewReader(`{`), &out, &Executor{})

	require.Error(t, err)
	assert.Zero(t, out.Len())
}
