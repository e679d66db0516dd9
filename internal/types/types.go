// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, validation and response can all import types
// without depending on each other.
package types

// ResourceType is the JSON:API "type" member for student records.
const ResourceType = "students"

// Attribute names as they appear under data.attributes.
const (
	FieldName    = "name"
	FieldAddress = "address"
	FieldEmail   = "email"
)

// Student represents a student record in our system.
//
// ID is assigned by the store on creation and never changes afterwards.
// It is rendered as the resource object's top-level "id", so it is kept
// out of the attributes encoding.
type Student struct {
	ID      int64  `json:"-"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// Apply merges validated attribute values into the record. Keys that are
// not present in fields leave the corresponding field untouched.
func (s *Student) Apply(fields map[string]string) {
	if v, ok := fields[FieldName]; ok {
		s.Name = v
	}
	if v, ok := fields[FieldAddress]; ok {
		s.Address = v
	}
	if v, ok := fields[FieldEmail]; ok {
		s.Email = v
	}
}

// RequestDocument is the inbound JSON:API envelope for create and update.
//
//	{ "data": { "type": "students", "attributes": { "name": "...", ... } } }
//
// Attributes are decoded into a map so the handler can tell a missing
// key apart from an empty value.
type RequestDocument struct {
	Data RequestData `json:"data"`
}

// RequestData is the primary data member of a RequestDocument.
type RequestData struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Attributes map[string]any `json:"attributes"`
}
