package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"emistat/internal/errs"
)

// Problem represents an RFC 7807 problem details object.
type Problem struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

func newProblem(status int, detail string) Problem {
	return Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// problemFromError maps the pipeline error taxonomy onto HTTP statuses. An
// exhausted year range is the caller's problem (404, with the range echoed in
// the detail); a schema error means the served dataset itself is broken (500).
func problemFromError(err error) Problem {
	var rangeErr *errs.EmptyRangeError
	if errors.As(err, &rangeErr) {
		return newProblem(http.StatusNotFound, rangeErr.Error())
	}
	var schemaErr *errs.SchemaError
	if errors.As(err, &schemaErr) {
		return newProblem(http.StatusInternalServerError,
			"the report dataset does not satisfy the expected schema")
	}
	return newProblem(http.StatusInternalServerError, "failed to compute the report")
}

// writeProblem writes an RFC 7807 response, stamping the request id as the
// trace identifier.
func writeProblem(w http.ResponseWriter, r *http.Request, p Problem) {
	p.TraceID = middleware.GetReqID(r.Context())
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p) //nolint:errcheck
}

func (s *Server) renderProblem(w http.ResponseWriter, r *http.Request, err error, p Problem) {
	if p.Status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	} else {
		s.logger.WarnContext(r.Context(), "request rejected",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
	writeProblem(w, r, p)
}
