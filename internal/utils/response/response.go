// Package response shapes every body this API sends into a JSON:API
// document and writes it.
//
// Success bodies look like
//
//	{ "data": { "type": "students", "id": "1", "attributes": { ... } } }
//	{ "data": [ { ... }, { ... } ] }
//
// and error bodies always look like
//
//	{ "errors": [ { "status": "404", "title": "...", "details": "..." } ] }
package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/students-jsonapi/internal/types"
	"github.com/aanand-mishra/students-jsonapi/internal/utils/locale"
	"github.com/aanand-mishra/students-jsonapi/internal/validation"

	"golang.org/x/text/message"
)

// MediaType is the only media type this API speaks.
const MediaType = "application/vnd.api+json"

// Resource is a JSON:API resource object.
type Resource struct {
	Type       string        `json:"type"`
	ID         string        `json:"id"`
	Attributes types.Student `json:"attributes"`
}

// ResourceDocument wraps a single resource.
type ResourceDocument struct {
	Data Resource `json:"data"`
}

// CollectionDocument wraps a list of resources.
type CollectionDocument struct {
	Data []Resource `json:"data"`
}

// ErrorSource points at the request member that caused an error.
type ErrorSource struct {
	Pointer string `json:"pointer"`
}

// ErrorObject is one entry of an error document.
type ErrorObject struct {
	Status  string       `json:"status"` // always a string, e.g. "406"
	Title   string       `json:"title"`
	Details string       `json:"details"`
	Source  *ErrorSource `json:"source,omitempty"`
}

// ErrorDocument wraps one or more errors.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// Titles shared by handlers and middleware.
const (
	TitleNotFound         = "Source not found"
	TitleNotAcceptable    = "Not acceptable"
	TitleValidationFailed = "Validation failed"
	TitleBadRequest       = "Bad request"
	TitleConflict         = "Conflict"
	TitleInternal         = "Internal server error"
)

// WriteJSON writes data as a JSON:API document with the given status.
// A nil data writes the status line only, which is what 204 needs.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	if data == nil {
		w.WriteHeader(status)
		return nil
	}

	w.Header().Set("Content-Type", MediaType)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// FormatResource wraps one record.
func FormatResource(student types.Student) ResourceDocument {
	return ResourceDocument{Data: toResource(student)}
}

// FormatCollection wraps a list of records. An empty list encodes as [].
func FormatCollection(students []types.Student) CollectionDocument {
	data := make([]Resource, 0, len(students))
	for _, s := range students {
		data = append(data, toResource(s))
	}
	return CollectionDocument{Data: data}
}

// FormatError wraps a single error. Status is rendered as a string
// ("406", "404") for every error, JSON:API's type for the member.
func FormatError(status int, title, details string) ErrorDocument {
	return ErrorDocument{Errors: []ErrorObject{{
		Status:  strconv.Itoa(status),
		Title:   title,
		Details: details,
	}}}
}

// ValidationError turns every failing field into its own error object,
// with a source pointer at the offending attribute.
func ValidationError(p *message.Printer, verr *validation.Error) ErrorDocument {
	status := strconv.Itoa(http.StatusUnprocessableEntity)
	doc := ErrorDocument{Errors: make([]ErrorObject, 0, len(verr.Fields))}

	for _, f := range verr.Fields {
		var details string
		switch f.Tag {
		case "required":
			details = p.Sprintf(locale.FieldRequired, f.Field)
		case "min":
			details = p.Sprintf(locale.FieldMin, f.Field, f.Param)
		case "email":
			details = p.Sprintf(locale.FieldEmail, f.Field)
		case validation.TagUnique:
			details = p.Sprintf(locale.FieldUnique, f.Field)
		case validation.TagString:
			details = p.Sprintf(locale.FieldString, f.Field)
		default:
			details = p.Sprintf(locale.FieldInvalid, f.Field)
		}

		doc.Errors = append(doc.Errors, ErrorObject{
			Status:  status,
			Title:   TitleValidationFailed,
			Details: details,
			Source:  &ErrorSource{Pointer: "/data/attributes/" + f.Field},
		})
	}
	return doc
}

func toResource(student types.Student) Resource {
	return Resource{
		Type:       types.ResourceType,
		ID:         strconv.FormatInt(student.ID, 10),
		Attributes: student,
	}
}
