package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devforge/devtools-server/internal/sanitize"
)

func TestDefaultPolicyParses(t *testing.T) {
	policy, err := sanitize.Load(DefaultPolicy())
	require.NoError(t, err)

	assert.Contains(t, policy.StripKeys, "PORT")
	assert.Equal(t, "development", policy.ForcedKeys["NODE_ENV"])
}
