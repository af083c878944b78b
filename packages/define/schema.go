package define

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// definitionSchema is the JSON schema every definition document must
// satisfy. YAML decodes to string-keyed maps, so documents translate to
// JSON losslessly for validation.
const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["uri"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "method": {"type": "string"},
    "uri": {"type": "string"},
    "encoding": {"enum": ["urlencoded", "multipart", "raw"]},
    "https": {"type": "boolean"},
    "headers": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "params": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string"},
          "value": {"type": "string"}
        }
      }
    },
    "files": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["field", "filename"],
        "additionalProperties": false,
        "properties": {
          "field": {"type": "string"},
          "filename": {"type": "string"},
          "content": {"type": "string"},
          "contentBase64": {"type": "string"}
        }
      }
    },
    "body": {"type": "string"}
  }
}`

func validateDocument(doc any) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting definition for validation: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(definitionSchema)
	documentLoader := gojsonschema.NewBytesLoader(encoded)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validating definition: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid definition: %s", strings.Join(msgs, "; "))
	}
	return nil
}
