// Package middleware holds the http.Handler wrappers that run in front of
// every route.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/students-jsonapi/internal/utils/response"

	"github.com/google/uuid"
)

// HeaderRequestID carries the per-request id back to the client.
const HeaderRequestID = "X-Request-Id"

// Details text of the 406 document.
const detailsNotAcceptable = "Content type not specified"

type loggerKey struct{}

// ContentNegotiation rejects any request whose Accept header is not
// exactly response.MediaType with a 406 error document. Nothing after it
// runs for such requests.
func ContentNegotiation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != response.MediaType {
			Logger(r.Context()).Warn("rejected request: unacceptable media type",
				slog.String("accept", r.Header.Get("Accept")))
			response.WriteJSON(w, http.StatusNotAcceptable,
				response.FormatError(http.StatusNotAcceptable, response.TitleNotAcceptable, detailsNotAcceptable))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger tags the request with an id, stores a logger carrying it
// in the context, and logs one line when the request completes.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(HeaderRequestID, requestID)

			log := base.With(
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			r = r.WithContext(context.WithValue(r.Context(), loggerKey{}, log))

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			log.Info("request completed",
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

// Logger returns the request-scoped logger, or slog.Default() outside a
// request.
func Logger(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
