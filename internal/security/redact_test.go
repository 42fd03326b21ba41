package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactParameters(t *testing.T) {
	params := map[string]any{
		"path":       "a.txt",
		"apiToken":   "abc123",
		"Password":   "hunter2",
		"GIT_SECRET": "deadbeef",
		"content":    "hello",
	}

	redacted := RedactParameters(params)

	assert.Equal(t, "a.txt", redacted["path"])
	assert.Equal(t, "hello", redacted["content"])
	assert.Equal(t, "***", redacted["apiToken"])
	assert.Equal(t, "***", redacted["Password"])
	assert.Equal(t, "***", redacted["GIT_SECRET"])

	// Input is untouched.
	assert.Equal(t, "abc123", params["apiToken"])
}

func TestRedactParametersNil(t *testing.T) {
	assert.Nil(t, RedactParameters(nil))
}
