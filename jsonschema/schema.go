package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	Schema string `json:"$schema,omitempty"`
	Title  string `json:"title,omitempty"`

	// Core. Type is a string, or []string for nullable types.
	Type    any    `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Default any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	// PropertyOrder lists properties in declaration order (JSON objects are unordered).
	PropertyOrder []string `json:"x-propertyOrder,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`
}

// Draft is the dialect URI stamped on root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"
