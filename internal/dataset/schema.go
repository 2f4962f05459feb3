// internal/dataset/schema.go
package dataset

// fixtureSchema is the JSON schema every task family fixture must satisfy.
var fixtureSchema = map[string]any{
	"type":     "object",
	"required": []any{"queries"},
	"properties": map[string]any{
		"task_family": map[string]any{
			"type": "string",
		},
		"queries": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "query", "expected_answer"},
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"query": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"domain": map[string]any{
						"type": "string",
					},
					"expected_answer": map[string]any{
						"type": []any{"string", "number"},
					},
					"tolerance": map[string]any{
						"type": []any{"number", "string"},
					},
				},
			},
		},
	},
}
