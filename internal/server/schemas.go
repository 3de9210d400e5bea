package server

import (
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
)

var extractRequestSchema = map[string]any{
	"$schema":  "http://json-schema.org/draft-07/schema#",
	"type":     "object",
	"required": []any{"text"},
	"properties": map[string]any{
		"text": map[string]any{"type": "string"},
	},
}

func cardRequestSchema() map[string]any {
	props := map[string]any{}
	for _, k := range constants.ContactFieldKeys {
		props[k] = map[string]any{
			"type":      "string",
			"maxLength": constants.MaxFieldLength,
		}
	}
	return map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": props,
	}
}

type schemas struct {
	extract *jsonschema.Schema
	card    *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	extract, err := common.CompileSchema("extract_request.json", extractRequestSchema)
	if err != nil {
		return nil, err
	}
	card, err := common.CompileSchema("card_request.json", cardRequestSchema())
	if err != nil {
		return nil, err
	}
	return &schemas{extract: extract, card: card}, nil
}
