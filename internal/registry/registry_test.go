package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devforge/devtools-server/internal/protocol"
)

func noopHandler(ctx context.Context, params map[string]any) (any, error) {
	return nil, nil
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New()

	err := reg.Register(Descriptor{Name: "fs_read_file"}, noopHandler)
	require.NoError(t, err)

	descriptor, handler, ok := reg.Lookup("fs_read_file")
	assert.True(t, ok)
	assert.Equal(t, "fs_read_file", descriptor.Name)
	assert.NotNil(t, handler)

	_, _, ok = reg.Lookup("fs_missing")
	assert.False(t, ok)
}

func TestRegisterDuplicate(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(Descriptor{Name: "fs_read_file"}, noopHandler))

	err := reg.Register(Descriptor{Name: "fs_read_file"}, noopHandler)
	require.Error(t, err)

	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protocol.KindDuplicateTool, perr.Kind)
}

func TestDescriptorsSorted(t *testing.T) {
	reg := New()
	for _, name := range []string{"terminal_create", "fs_read_file", "git_status"} {
		require.NoError(t, reg.Register(Descriptor{Name: name}, noopHandler))
	}

	descriptors := reg.Descriptors()
	require.Len(t, descriptors, 3)
	assert.Equal(t, "fs_read_file", descriptors[0].Name)
	assert.Equal(t, "git_status", descriptors[1].Name)
	assert.Equal(t, "terminal_create", descriptors[2].Name)
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":      map[string]any{"type": "string"},
			"recursive": map[string]any{"type": "boolean"},
			"cols":      map[string]any{"type": "integer"},
		},
		"required": []string{"path"},
	}

	tests := []struct {
		name    string
		params  map[string]any
		wantErr bool
	}{
		{"valid", map[string]any{"path": "a.txt", "recursive": true}, false},
		{"missing required", map[string]any{"recursive": true}, true},
		{"wrong type", map[string]any{"path": 42}, true},
		{"wrong bool", map[string]any{"path": "a.txt", "recursive": "yes"}, true},
		{"json number for integer", map[string]any{"path": "a.txt", "cols": float64(80)}, false},
		{"undeclared key allowed", map[string]any{"path": "a.txt", "extra": "ignored"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateParameters(tc.params, schema)
			if tc.wantErr {
				var perr *protocol.Error
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, protocol.KindInvalidParameters, perr.Kind)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateParametersNilSchema(t *testing.T) {
	assert.NoError(t, ValidateParameters(map[string]any{"anything": 1}, nil))
}
