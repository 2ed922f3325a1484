package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"carreramedico/internal/domain"
)

// errorResponse is the error body read by the frontend.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.lggr.Errorw("failed to encode JSON response", "error", err)
	}
}

func (h *Handler) locale(r *http.Request) string {
	return h.svc.Translator.Locale(r.Header.Get("Accept-Language"))
}

func (h *Handler) writeDetail(w http.ResponseWriter, r *http.Request, status int, key string, data map[string]any) {
	h.writeJSON(w, status, errorResponse{Detail: h.svc.Translator.T(h.locale(r), key, data)})
}

// writeError maps a use case error onto a status code and localized detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.Code(err)
	if code == "" {
		h.lggr.Errorw("request error", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
		h.writeDetail(w, r, http.StatusInternalServerError, "error.internal", nil)
		return
	}

	var data map[string]any
	var dup *domain.DuplicatePhoneError
	var full *domain.RegistrationFullError
	switch {
	case errors.As(err, &dup):
		data = map[string]any{"Name": dup.ExistingName}
	case errors.As(err, &full):
		data = map[string]any{"Limit": full.Limit}
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		h.lggr.Errorw("request error", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	h.writeDetail(w, r, status, "error."+code, data)
}

func statusFor(code string) int {
	switch code {
	case domain.ErrParticipantNotFound.Code():
		return http.StatusNotFound
	case domain.ErrInvalidCredentials.Code():
		return http.StatusUnauthorized
	case domain.ErrBibRender.Code():
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		h.writeDetail(w, r, http.StatusBadRequest, "error.invalid_json", nil)
		return false
	}
	return true
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, errorResponse{Detail: http.StatusText(http.StatusNotFound)})
}
