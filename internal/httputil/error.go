package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Sentinel errors for the response taxonomy. Handlers wrap these with
// fmt.Errorf("%w: detail", ...) and WriteError maps them to a status code.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
)

type errorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError maps an error to its HTTP status. Client errors surface their
// message; anything unrecognized is an internal failure whose detail is
// logged but never sent to the client.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		slog.Warn("unauthorized", "error", err)
		WriteJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrForbidden):
		slog.Warn("forbidden", "error", err)
		WriteJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		slog.Warn("not found", "error", err)
		WriteJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrBadRequest):
		slog.Warn("bad request", "error", err)
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "error", err)
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	WriteJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func Unauthorized(w http.ResponseWriter, msg string) {
	slog.Warn("unauthorized", "message", msg)
	WriteJSON(w, http.StatusUnauthorized, errorResponse{Error: msg})
}
