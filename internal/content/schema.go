package content

// packSchema is the JSON schema a corpus pack file must satisfy.
var packSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{
			"type": "string",
		},
		"pages": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"units": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"ref":     map[string]any{"type": "string"},
					"page":    map[string]any{"type": "integer", "minimum": 1},
					"ordinal": map[string]any{"type": "integer", "minimum": 1},
					"text":    map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"ref", "page", "ordinal", "text"},
				"additionalProperties": false,
			},
			"minItems": 1,
		},
	},
	"required":             []any{"name", "pages", "units"},
	"additionalProperties": false,
}
