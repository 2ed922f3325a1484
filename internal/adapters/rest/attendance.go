package rest

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"carreramedico/internal/ports/input"
)

// queryInt reads an integer query parameter; absent or malformed values yield def.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Attendance.List(r.Context(), input.ListQuery{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toPageResponse(page))
}

// LookupParticipant handles ?tipo=numero|nombre|telefono&valor=...
func (h *Handler) LookupParticipant(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := h.svc.Attendance.Lookup(r.Context(), q.Get("tipo"), q.Get("valor"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toParticipantResponse(p))
}

func (h *Handler) GlobalSearch(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Attendance.GlobalSearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toPageResponse(page))
}

func (h *Handler) ExportParticipants(w http.ResponseWriter, r *http.Request) {
	// Buffer the workbook so failures still produce a JSON error.
	var buf bytes.Buffer
	if err := h.svc.Attendance.Export(r.Context(), &buf, r.URL.Query().Get("search")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", h.svc.Attendance.ExportContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": h.svc.Attendance.ExportFilename(),
	}))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.lggr.Warnw("write export", "error", err)
	}
}

func (h *Handler) SetAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		h.writeDetail(w, r, http.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	var req attendanceRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Attended == nil {
		h.writeDetail(w, r, http.StatusBadRequest, "error.invalid_field", nil)
		return
	}
	p, err := h.svc.Attendance.SetAttendance(r.Context(), uint(id), *req.Attended)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toParticipantResponse(p))
}

func (h *Handler) BulkAttendance(w http.ResponseWriter, r *http.Request) {
	var req bulkAttendanceRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Attended == nil {
		h.writeDetail(w, r, http.StatusBadRequest, "error.invalid_field", nil)
		return
	}
	n, err := h.svc.Attendance.BulkSetAttendance(r.Context(), req.IDs, *req.Attended)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bulkAttendanceResponse{Updated: n})
}

func (h *Handler) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Attendance.Summary(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summaryResponse{Total: s.Total, Attended: s.Attended, Pending: s.Pending})
}

func (h *Handler) TotalParticipants(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.Attendance.Total(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, totalResponse{Total: total})
}
