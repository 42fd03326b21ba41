package fallback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devforge/devtools-server/internal/executil"
	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/sanitize"
)

func testPolicy(workdir string) *sanitize.Policy {
	return &sanitize.Policy{
		StripKeys:        []string{"PORT"},
		ForcedKeys:       map[string]string{"NODE_ENV": "development"},
		WorkspaceDefault: workdir,
	}
}

func TestRunTagsResultAsFallback(t *testing.T) {
	executor := New(testPolicy(t.TempDir()), 0)

	envelope := executor.Run(context.Background(), "echo degraded", "")

	assert.True(t, envelope.Success)
	assert.True(t, envelope.Fallback)

	result, ok := envelope.Result.(executil.Result)
	require.True(t, ok)
	assert.Equal(t, "degraded\n", result.Stdout)
}

func TestRunAppliesSanitizePolicy(t *testing.T) {
	t.Setenv("PORT", "5173")
	executor := New(testPolicy(t.TempDir()), 0)

	envelope := executor.Run(context.Background(), `printf '%s|%s' "$NODE_ENV" "${PORT:-unset}"`, "")

	require.True(t, envelope.Success)
	result := envelope.Result.(executil.Result)
	assert.Equal(t, "development|unset", result.Stdout)
}

func TestRunTimeoutKeepsPartialOutput(t *testing.T) {
	executor := New(testPolicy(t.TempDir()), 1*time.Second)

	envelope := executor.Run(context.Background(), "echo partial; sleep 30", "")

	assert.False(t, envelope.Success)
	assert.True(t, envelope.Fallback)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, protocol.KindTimeout, envelope.Error.Kind)

	result, ok := envelope.Result.(executil.Result)
	require.True(t, ok)
	assert.Equal(t, "partial\n", result.Stdout)
}
