package catalog

// catalogSchema is the JSON Schema every catalog document must satisfy
// before graph construction. Structural invariants that need the whole
// catalog (dangling prerequisites, cycles) are checked by topicgraph.New.
const catalogSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"version": {
			"type": "string",
			"pattern": "^v[0-9]+\\.[0-9]+\\.[0-9]+$"
		},
		"topics": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"id": {
						"type": "string",
						"pattern": "^[a-z0-9][a-z0-9-]*$"
					},
					"name": {
						"type": "string",
						"minLength": 1
					},
					"level": {
						"type": "integer",
						"minimum": 0
					},
					"difficulty": {
						"type": "number",
						"minimum": 0,
						"maximum": 1
					},
					"prerequisites": {
						"type": "array",
						"items": {
							"type": "string",
							"minLength": 1
						}
					},
					"content": {
						"type": "string"
					}
				},
				"required": ["id", "name", "level", "difficulty"],
				"additionalProperties": false
			}
		}
	},
	"required": ["version", "topics"],
	"additionalProperties": false
}`
