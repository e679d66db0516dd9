// Package student contains the HTTP handlers for the students resource.
//
// Handlers use the closure / factory pattern: each exported function
// receives its dependencies once at route registration and returns the
// http.HandlerFunc that serves every request.
//
//	router.Handle("GET /students/{id}", student.GetByID(store))
//
// Every path writes a JSON:API document with a status code; nothing
// escapes a handler as a panic or a bare error.
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/students-jsonapi/internal/http/middleware"
	"github.com/aanand-mishra/students-jsonapi/internal/storage"
	"github.com/aanand-mishra/students-jsonapi/internal/types"
	"github.com/aanand-mishra/students-jsonapi/internal/utils/locale"
	"github.com/aanand-mishra/students-jsonapi/internal/utils/response"
	"github.com/aanand-mishra/students-jsonapi/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /students
//
// Request body:
//
//	{ "data": { "type": "students",
//	            "attributes": { "name": "Maria López", "address": "Calle 1", "email": "a@b.com" } } }
//
// Success: 201 with the created resource and a Location header.
// Errors: 400 bad body, 409 wrong type, 422 validation, 500 store failure.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	engine := validation.New(store)

	return func(w http.ResponseWriter, r *http.Request) {
		log := middleware.Logger(r.Context())
		log.Info("creating a student")

		attrs, ok := decode(w, r)
		if !ok {
			return
		}

		fields, err := engine.Validate(r.Context(), validation.FullReplace, attrs, 0)
		if err != nil {
			writeValidationFailure(w, r, err)
			return
		}

		var student types.Student
		student.Apply(fields)

		created, err := store.CreateStudent(r.Context(), student)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				writeValidationFailure(w, r, validation.Duplicate())
				return
			}
			writeInternal(w, r, err)
			return
		}

		log.Info("student created", slog.Int64("id", created.ID))

		w.Header().Set("Location", fmt.Sprintf("/%s/%d", types.ResourceType, created.ID))
		response.WriteJSON(w, http.StatusCreated, response.FormatResource(created))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /students/{id}
//
// Success: 200 with the resource. Errors: 404 standard not-found document.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		student, ok := find(w, r, store)
		if !ok {
			return
		}
		response.WriteJSON(w, http.StatusOK, response.FormatResource(student))
	}
}

// GetList handles GET /students. An empty store yields "data": [].
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.Logger(r.Context()).Info("getting all students")

		students, err := store.GetStudents(r.Context())
		if err != nil {
			writeInternal(w, r, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.FormatCollection(students))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT and PATCH /students/{id}
//
// PUT replaces: name, address and email are all required.
// PATCH merges: only attributes present in the body are checked and
// written, the rest of the record is kept.
//
// In both modes the email must not belong to any other record; keeping
// the record's own email is fine.
//
// Success: 200 with the updated resource.
// Errors: 400 bad body, 404 absent id, 409 wrong type, 422 validation.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	engine := validation.New(store)

	return func(w http.ResponseWriter, r *http.Request) {
		student, ok := find(w, r, store)
		if !ok {
			return
		}

		mode := validation.ModeForMethod(r.Method)
		log := middleware.Logger(r.Context())
		log.Info("updating a student",
			slog.Int64("id", student.ID),
			slog.String("mode", mode.String()))

		attrs, ok := decode(w, r)
		if !ok {
			return
		}

		fields, err := engine.Validate(r.Context(), mode, attrs, student.ID)
		if err != nil {
			writeValidationFailure(w, r, err)
			return
		}

		student.Apply(fields)

		updated, err := store.UpdateStudent(r.Context(), student)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			writeNotFound(w, r)
			return
		case errors.Is(err, storage.ErrDuplicateKey):
			writeValidationFailure(w, r, validation.Duplicate())
			return
		case err != nil:
			writeInternal(w, r, err)
			return
		}

		log.Info("student updated", slog.Int64("id", updated.ID))
		response.WriteJSON(w, http.StatusOK, response.FormatResource(updated))
	}
}

// Delete handles DELETE /students/{id}. Success is 204 with no body.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		student, ok := find(w, r, store)
		if !ok {
			return
		}

		err := store.DeleteStudentByID(r.Context(), student.ID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			writeNotFound(w, r)
			return
		case err != nil:
			writeInternal(w, r, err)
			return
		}

		middleware.Logger(r.Context()).Info("student deleted", slog.Int64("id", student.ID))
		response.WriteJSON(w, http.StatusNoContent, nil)
	}
}

// find loads the record named by the {id} path segment. A segment that
// is not a positive integer cannot name a record and is reported the
// same way as an absent one.
func find(w http.ResponseWriter, r *http.Request, store storage.Storage) (types.Student, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeNotFound(w, r)
		return types.Student{}, false
	}

	student, err := store.GetStudentByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeNotFound(w, r)
		return types.Student{}, false
	}
	if err != nil {
		writeInternal(w, r, err)
		return types.Student{}, false
	}
	return student, true
}

// decode reads the request document and returns its attributes.
func decode(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var doc types.RequestDocument

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	err := dec.Decode(&doc)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.FormatError(http.StatusBadRequest, response.TitleBadRequest, "request body is empty"))
		return nil, false
	}
	if err == nil {
		// Anything after the document makes the body invalid.
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errors.New("trailing data after document")
		}
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.FormatError(http.StatusBadRequest, response.TitleBadRequest, "request body is not a valid JSON:API document"))
		return nil, false
	}

	if doc.Data.Type != "" && doc.Data.Type != types.ResourceType {
		response.WriteJSON(w, http.StatusConflict,
			response.FormatError(http.StatusConflict, response.TitleConflict,
				fmt.Sprintf("resource type %q is not %q", doc.Data.Type, types.ResourceType)))
		return nil, false
	}

	if doc.Data.Attributes == nil {
		return map[string]any{}, true
	}
	return doc.Data.Attributes, true
}

func writeNotFound(w http.ResponseWriter, r *http.Request) {
	p := locale.Printer(r.Header.Get("Accept-Language"))
	response.WriteJSON(w, http.StatusNotFound,
		response.FormatError(http.StatusNotFound, response.TitleNotFound, p.Sprintf(locale.NotFound)))
}

// writeValidationFailure writes 422 for a *validation.Error and 500 for
// anything else the engine returned.
func writeValidationFailure(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		writeInternal(w, r, err)
		return
	}

	middleware.Logger(r.Context()).Info("validation failed", slog.String("error", verr.Error()))
	p := locale.Printer(r.Header.Get("Accept-Language"))
	response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(p, verr))
}

func writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	middleware.Logger(r.Context()).Error("storage failure", slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError,
		response.FormatError(http.StatusInternalServerError, response.TitleInternal, "the request could not be completed"))
}
