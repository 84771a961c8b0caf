package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema for a response envelope.
type Schema struct {
	Name       string
	Definition map[string]any
}

func envelope(name string, required []any, props map[string]any) *Schema {
	props["status"] = map[string]any{"type": "string"}
	return &Schema{
		Name: name,
		Definition: map[string]any{
			"type":       "object",
			"required":   append([]any{"status"}, required...),
			"properties": props,
		},
	}
}

var stringArray = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

var logEntrySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"timestamp":    map[string]any{"type": "string"},
		"user_message": map[string]any{"type": "string"},
		"bot_response": map[string]any{"type": "string"},
	},
}

var gradeMapSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": map[string]any{"type": "string"},
}

var evaluationSchema = map[string]any{
	"type":     "object",
	"required": []any{"grades"},
	"properties": map[string]any{
		"grades":           gradeMapSchema,
		"score_reasons":    gradeMapSchema,
		"improvement_tips": stringArray,
	},
}

var (
	chatSchema = envelope("chat", []any{"response"}, map[string]any{
		"response": map[string]any{"type": "string"},
	})

	ttsSchema = envelope("tts", []any{"audio_url"}, map[string]any{
		"audio_url": map[string]any{"type": "string", "minLength": 1},
	})

	evaluateSchema = envelope("evaluate", []any{"evaluation"}, map[string]any{
		"evaluation": evaluationSchema,
	})

	analyzeVoiceSchema = envelope("analyze-voice", []any{"analysis"}, map[string]any{
		"analysis": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary":          map[string]any{"type": "string"},
				"details":          map[string]any{"type": "string"},
				"positive_aspects": stringArray,
				"suggestions":      stringArray,
			},
		},
	})

	analyzeQuestSchema = envelope("analyze-quest", []any{"completed_quests"}, map[string]any{
		"completed_quests": stringArray,
	})

	logsSchema = envelope("logs", []any{"logs"}, map[string]any{
		"logs": map[string]any{"type": "array", "items": logEntrySchema},
		"date": map[string]any{"type": "string"},
	})

	feedbackSchema = envelope("feedback", []any{"feedback_data"}, map[string]any{
		"feedback_data": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"evaluation_date":   map[string]any{"type": "string"},
					"conversation_logs": map[string]any{"type": "array", "items": logEntrySchema},
					"evaluation_result": evaluationSchema,
				},
			},
		},
	})

	cheatsheetSchema = envelope("generate-cheatsheet", []any{"cheatsheet"}, map[string]any{
		"cheatsheet": map[string]any{"type": "object"},
	})
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse validates a decoded envelope against the given Schema.
// Returns *ErrInvalidResponse on failure.
func validateResponse(endpoint string, schema *Schema, raw json.RawMessage, parsed any) error {
	if schema == nil {
		return nil
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON values, so round-trip the Go maps.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
