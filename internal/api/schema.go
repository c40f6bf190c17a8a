package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionListSchema describes the question arrays returned by the
// placement-test endpoints. Validated before decoding so a malformed payload
// fails loudly instead of producing a half-usable test.
var questionListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":     map[string]any{"type": "integer"},
			"prompt": map[string]any{"type": "string", "minLength": 1},
			"choices": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 2,
			},
			"correct_choice": map[string]any{"type": "string", "minLength": 1},
			"language":       map[string]any{"type": "string"},
		},
		"required": []any{"prompt", "choices", "correct_choice"},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ValidateQuestions checks a raw question payload against the schema.
func ValidateQuestions(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid question JSON: %w", err)
	}

	compiled, err := questionSchema()
	if err != nil {
		return fmt.Errorf("compile question schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("question payload rejected: %w", err)
	}
	return nil
}

// questionSchema compiles the schema once and caches it.
func questionSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw bytes.
		defBytes, err := json.Marshal(questionListSchema)
		if err != nil {
			compileErr = err
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://placement-questions.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
