// Package router builds the application's http.Handler.
//
// Route table:
//
//	GET    /students        list
//	POST   /students        create
//	GET    /students/{id}   show
//	PUT    /students/{id}   full update
//	PATCH  /students/{id}   partial update
//	DELETE /students/{id}   delete
//
// Every request passes the request logger and then the content
// negotiation gate before reaching the mux.
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/students-jsonapi/internal/http/handlers/student"
	"github.com/aanand-mishra/students-jsonapi/internal/http/middleware"
	"github.com/aanand-mishra/students-jsonapi/internal/storage"
)

func New(store storage.Storage, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /students", student.GetList(store))
	mux.HandleFunc("POST /students", student.New(store))
	mux.HandleFunc("GET /students/{id}", student.GetByID(store))
	mux.HandleFunc("PUT /students/{id}", student.Update(store))
	mux.HandleFunc("PATCH /students/{id}", student.Update(store))
	mux.HandleFunc("DELETE /students/{id}", student.Delete(store))

	return middleware.RequestLogger(log)(middleware.ContentNegotiation(mux))
}
