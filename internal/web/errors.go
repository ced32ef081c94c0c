package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. Error is mapped via core.MapError to a user message and status code
//  4. Technical error + context is logged with the request ID
//  5. User message is rendered as JSON for API clients, HTML otherwise

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/logging"
	"github.com/JonMunkholm/teamtab/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusByCode maps error codes to HTTP status codes.
var statusByCode = map[string]int{
	"FILE001": http.StatusRequestEntityTooLarge,
	"FILE002": http.StatusBadRequest,
	"FILE004": http.StatusBadRequest,
	"FILE005": http.StatusBadRequest,
	"SRC001":  http.StatusBadGateway,
	"SRC002":  http.StatusBadGateway,
	"SRC003":  http.StatusGatewayTimeout,
	"SRC004":  http.StatusBadRequest,
	"LOAD001": http.StatusServiceUnavailable,
	"LOAD002": http.StatusRequestTimeout,
	"EXP001":  http.StatusConflict,
	"EXP002":  http.StatusBadRequest,
	"EXP003":  http.StatusBadRequest,
}

// statusForError returns the HTTP status code for err.
func statusForError(err error) int {
	if status, ok := statusByCode[core.MapError(err).Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError logs the technical error and writes a user-friendly response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := core.MapError(err)
	statusCode := statusForError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
	} else {
		respondErrorHTML(w, r, userMsg, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML renders the error page.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	page := templates.ErrorPage(msg.Message, msg.Action, msg.Code)
	templ.Handler(page, templ.WithStatus(statusCode)).ServeHTTP(w, r)
}

// wantsJSON checks if the client prefers JSON response.
//
// Browser form posts ask for text/html and get redirected back to the page;
// everything else under /api/ is answered with JSON.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")

	if strings.Contains(accept, "application/json") {
		return true
	}
	if strings.Contains(accept, "text/html") {
		return false
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}

	return strings.HasPrefix(r.URL.Path, "/api/")
}
