package registry

import (
	"fmt"

	"github.com/devforge/devtools-server/internal/protocol"
)

// ValidateParameters checks params against a JSON-schema-style descriptor
// schema: required keys must be present and declared primitive types must
// match. Keys not mentioned in the schema are allowed through.
func ValidateParameters(params map[string]any, schema map[string]any) error {
	if schema == nil {
		return nil
	}

	for _, name := range requiredFields(schema) {
		if _, ok := params[name]; !ok {
			return protocol.NewError(protocol.KindInvalidParameters, "missing required parameter %q", name)
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	for name, value := range params {
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		expected, _ := prop["type"].(string)
		if expected == "" {
			continue
		}
		if !matchesType(value, expected) {
			return protocol.NewError(protocol.KindInvalidParameters,
				"parameter %q: expected %s, got %s", name, expected, typeName(value))
		}
	}
	return nil
}

func requiredFields(schema map[string]any) []string {
	switch typed := schema["required"].(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if name, ok := item.(string); ok {
				out = append(out, name)
			}
		}
		return out
	default:
		return nil
	}
}

func matchesType(value any, expected string) bool {
	switch expected {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "integer", "number":
		switch value.(type) {
		case int, int32, int64, float32, float64:
			return true
		}
		return false
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		switch value.(type) {
		case []any, []string:
			return true
		}
		return false
	default:
		return true
	}
}

func typeName(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int32, int64, float32, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any, []string:
		return "array"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}
