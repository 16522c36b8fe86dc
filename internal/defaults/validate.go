package defaults

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/b-ciq/brand-assets-server/internal/models"
)

// defaultsSchema is the contract every generated configuration must satisfy
// before it leaves the service. Missing fields and out-of-range confidence
// are rejected; callers turn a rejection into a 422.
const defaultsSchema = `{
	"type": "object",
	"required": ["format", "size", "background", "color", "confidence"],
	"properties": {
		"format":     {"type": "string", "minLength": 1},
		"size":       {"type": "string", "minLength": 1},
		"background": {"type": "string", "minLength": 1},
		"color":      {"type": "string", "minLength": 1},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(defaultsSchema)

// ValidateDefaults checks a generated configuration against the schema.
// Returns nil when valid, or an error listing every violation.
func ValidateDefaults(d *models.SmartDefaults) error {
	if d == nil {
		return fmt.Errorf("defaults cannot be nil")
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(d))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid defaults: %s", strings.Join(msgs, "; "))
	}

	return nil
}
