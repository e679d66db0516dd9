package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aanand-mishra/students-jsonapi/internal/types"
	"github.com/aanand-mishra/students-jsonapi/internal/utils/locale"
	"github.com/aanand-mishra/students-jsonapi/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResource(t *testing.T) {
	t.Parallel()

	doc := FormatResource(types.Student{ID: 7, Name: "Maria López", Address: "Calle 1", Email: "a@b.com"})

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"data": {
			"type": "students",
			"id": "7",
			"attributes": {"name": "Maria López", "address": "Calle 1", "email": "a@b.com"}
		}
	}`, string(b))
}

func TestFormatCollection(t *testing.T) {
	t.Parallel()

	t.Run("empty list is an empty array", func(t *testing.T) {
		t.Parallel()
		b, err := json.Marshal(FormatCollection(nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"data": []}`, string(b))
	})

	t.Run("each entry is a resource object", func(t *testing.T) {
		t.Parallel()
		doc := FormatCollection([]types.Student{
			{ID: 1, Name: "Maria López", Address: "Calle 1", Email: "a@b.com"},
			{ID: 2, Name: "Juan Pérez", Address: "Calle 2", Email: "c@d.com"},
		})

		require.Len(t, doc.Data, 2)
		assert.Equal(t, FormatResource(types.Student{ID: 2, Name: "Juan Pérez", Address: "Calle 2", Email: "c@d.com"}).Data, doc.Data[1])
	})
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(FormatError(http.StatusNotFound, TitleNotFound, "gone"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors": [{"status": "404", "title": "Source not found", "details": "gone"}]}`, string(b))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	verr := &validation.Error{Fields: []validation.FieldError{
		{Field: "name", Tag: "min", Param: "5"},
		{Field: "address", Tag: "required"},
		{Field: "email", Tag: validation.TagUnique},
	}}

	doc := ValidationError(locale.Printer("en"), verr)

	require.Len(t, doc.Errors, 3)
	for _, e := range doc.Errors {
		assert.Equal(t, "422", e.Status)
		assert.Equal(t, TitleValidationFailed, e.Title)
	}
	assert.Equal(t, "field name must be at least 5 characters", doc.Errors[0].Details)
	assert.Equal(t, "/data/attributes/name", doc.Errors[0].Source.Pointer)
	assert.Equal(t, "field address is required", doc.Errors[1].Details)
	assert.Equal(t, "field email has already been taken", doc.Errors[2].Details)
	assert.Equal(t, "/data/attributes/email", doc.Errors[2].Source.Pointer)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes document with media type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		require.NoError(t, WriteJSON(rec, http.StatusCreated, FormatError(http.StatusConflict, TitleConflict, "x")))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, MediaType, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"errors"`)
	})

	t.Run("nil data writes no body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		require.NoError(t, WriteJSON(rec, http.StatusNoContent, nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Empty(t, rec.Header().Get("Content-Type"))
	})
}

func TestFormatErrorStatusIsString(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(FormatError(http.StatusNotAcceptable, TitleNotAcceptable, "Content type not specified"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"406"`)
}
