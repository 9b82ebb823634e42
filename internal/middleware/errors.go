package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Problem represents an RFC 7807 problem details object
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Trace  string `json:"trace_id,omitempty"`
}

// Write sends the problem as application/problem+json
func (p Problem) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	return json.NewEncoder(w).Encode(p)
}

// ProblemFromStatus builds a problem whose type is derived from the status text
func ProblemFromStatus(status int, detail string, traceID string) Problem {
	title := http.StatusText(status)
	return Problem{
		Type:   "/errors/" + strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Title:  title,
		Status: status,
		Detail: detail,
		Trace:  traceID,
	}
}

// NotFound answers unknown routes with a problem document
func NotFound(w http.ResponseWriter, r *http.Request) {
	_ = ProblemFromStatus(http.StatusNotFound, "No route for "+r.URL.Path, traceIDFor(r.Context())).Write(w)
}
