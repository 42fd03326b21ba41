package tools

// Argument extraction helpers. Parameter shape is validated by the
// dispatcher before a handler runs; these only normalize JSON decoding
// quirks (numbers arriving as float64).

func stringArg(params map[string]any, key string) string {
	value, _ := params[key].(string)
	return value
}

func boolArg(params map[string]any, key string, def bool) bool {
	value, ok := params[key].(bool)
	if !ok {
		return def
	}
	return value
}

func intArg(params map[string]any, key string, def int) int {
	switch value := params[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	case int64:
		return int(value)
	default:
		return def
	}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func boolProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}
