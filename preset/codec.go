package preset

import (
	"bytes"
	"fmt"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Marshal encodes doc as YAML.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("preset: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("preset: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a YAML document and checks its version. Behaviour records
// are not imported here; see Build.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("preset: decode: %w", err)
	}
	if doc.Version != Version {
		return Document{}, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}
	return doc, nil
}

// Schema describes the document format as JSON schema, for editors and
// external validation.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(new(Document))
	schema.Title = "Ember preset"
	schema.Description = "Emitters and the tagged records of their behaviours."
	return schema
}
