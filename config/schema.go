package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the generated schema.
const SchemaID = "https://github.com/randalmurphal/seqfilter/config.schema.json"

// Schema returns the JSON Schema describing the config file format.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag: "json",
	}
	s := r.Reflect(&Config{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "seqfilter configuration"

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return b, nil
}
