package envelope

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthiasdebernardini/lowmain/internal/actions"
	"github.com/matthiasdebernardini/lowmain/internal/apperr"
)

func TestSuccessEnvelope(t *testing.T) {
	env := Success(
		map[string]any{"connected": true, "uri": "bolt://localhost:7687"},
		actions.ForPing(),
	)

	var buf bytes.Buffer
	require.NoError(t, env.Write(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, true, decoded["ok"])
	data, ok := decoded["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["connected"])

	next, ok := decoded["next_actions"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, next)

	// Error fields never appear on a success envelope.
	_, hasErr := decoded["error"]
	assert.False(t, hasErr)
	_, hasFix := decoded["fix"]
	assert.False(t, hasFix)
}

func TestSuccessEnvelope_SingleLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Success(map[string]any{"a": 1}, nil).Write(&buf))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestFailureEnvelope(t *testing.T) {
	env := Failure(apperr.NodeNotFound("42"))

	var buf bytes.Buffer
	require.NoError(t, env.Write(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, false, decoded["ok"])

	errBody, ok := decoded["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Node not found: 42", errBody["message"])
	assert.Equal(t, "NODE_NOT_FOUND", errBody["code"])
	assert.Equal(t, false, errBody["retryable"])

	fix, ok := decoded["fix"].(string)
	require.True(t, ok)
	assert.Contains(t, fix, "lowmain node find")

	_, hasData := decoded["data"]
	assert.False(t, hasData)
}

func TestFailureEnvelope_RetryableConnection(t *testing.T) {
	env := Failure(apperr.ConnectionFailed("dial tcp: connection refused"))

	var buf bytes.Buffer
	require.NoError(t, env.Write(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	errBody := decoded["error"].(map[string]any)
	assert.Equal(t, "CONNECTION_FAILED", errBody["code"])
	assert.Equal(t, true, errBody["retryable"])
}

func TestPanicEnvelope(t *testing.T) {
	out := Panic("index out of range")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, false, decoded["ok"])
	errBody := decoded["error"].(map[string]any)
	assert.Equal(t, "Internal error: index out of range", errBody["message"])
	assert.Equal(t, "PANIC", errBody["code"])
	assert.Equal(t, false, errBody["retryable"])
	assert.Equal(t, "Report this bug", decoded["fix"])
}

func TestPanicEnvelope_NonStringValue(t *testing.T) {
	out := Panic(42)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	errBody := decoded["error"].(map[string]any)
	assert.Equal(t, "Internal error: 42", errBody["message"])
}
