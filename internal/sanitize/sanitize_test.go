package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() *Policy {
	return &Policy{
		StripKeys:        []string{"PORT"},
		ForcedKeys:       map[string]string{"NODE_ENV": "development"},
		WorkspaceDefault: "/srv/workspace",
	}
}

func TestApplyStripsAndForces(t *testing.T) {
	env := []string{"PORT=5173", "HOME=/home/dev", "NODE_ENV=production"}

	out := testPolicy().Apply(env)

	assert.NotContains(t, out, "PORT=5173")
	assert.NotContains(t, out, "NODE_ENV=production")
	assert.Contains(t, out, "HOME=/home/dev")
	assert.Contains(t, out, "NODE_ENV=development")
}

func TestApplyIsIdempotent(t *testing.T) {
	policy := testPolicy()
	env := []string{"PORT=5173", "HOME=/home/dev", "PATH=/usr/bin", "NODE_ENV=test"}

	once := policy.Apply(env)
	twice := policy.Apply(once)

	assert.Equal(t, once, twice)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	env := []string{"PORT=5173", "HOME=/home/dev"}

	_ = testPolicy().Apply(env)

	assert.Equal(t, []string{"PORT=5173", "HOME=/home/dev"}, env)
}

func TestApplyNilPolicy(t *testing.T) {
	var policy *Policy
	env := []string{"PORT=5173"}

	assert.Equal(t, env, policy.Apply(env))
}

func TestWorkingDirectory(t *testing.T) {
	policy := testPolicy()

	assert.Equal(t, "/tmp/other", policy.WorkingDirectory("/tmp/other"))
	assert.Equal(t, "/srv/workspace", policy.WorkingDirectory(""))
	assert.Equal(t, "/srv/workspace", policy.WorkingDirectory("   "))

	empty := &Policy{}
	assert.Equal(t, ".", empty.WorkingDirectory(""))
}

func TestLoadYAML(t *testing.T) {
	data := []byte(`
strip_keys:
  - PORT
  - HOST
forced_keys:
  NODE_ENV: development
workspace_default: /data/ws
`)

	policy, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"PORT", "HOST"}, policy.StripKeys)
	assert.Equal(t, "development", policy.ForcedKeys["NODE_ENV"])
	assert.Equal(t, "/data/ws", policy.WorkspaceDefault)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load([]byte("bogus_field: true\n"))
	assert.Error(t, err)
}
