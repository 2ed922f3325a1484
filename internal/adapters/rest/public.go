package rest

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"carreramedico/internal/ports/input"
)

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, messageResponse{Message: h.svc.Translator.T(h.locale(r), "health.ok", nil)})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Database: "ok",
		Message:  h.svc.Translator.T(h.locale(r), "health.ok", nil),
	}
	if err := h.svc.Health.Ping(r.Context()); err != nil {
		h.lggr.Warnw("health check: storage unreachable", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		h.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Registration.Status(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statusResponse{Total: st.Total, Limit: st.Limit, CanJoin: st.CanJoin})
}

func (h *Handler) Sectors(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, sectorsResponse{Sectors: h.svc.Registration.Sectors()})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Registration.Register(r.Context(), input.RegistrationRequest{
		Name:   req.Name,
		Sex:    req.Sex,
		Phone:  req.Phone,
		Sector: req.Sector,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, registrationResponse{
		ID:       res.ID,
		Number:   res.Number,
		Message:  h.svc.Translator.T(h.locale(r), "registration.success", map[string]any{"Number": res.Number}),
		ImageURL: res.ImageURL,
	})
}

func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	img, err := h.svc.Bibs.Bib(r.Context(), mux.Vars(r)["numero"], r.URL.Query().Get("nombre"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img.PNG)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": img.Filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.PNG); err != nil {
		h.lggr.Warnw("write bib image", "error", err)
	}
}

func (h *Handler) Race(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Race.Info(r.Context(), h.now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, raceResponse{Race: info.Race, Countdown: info.Countdown})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	token, expiresAt, err := h.svc.Admin.Login(r.Context(), req.Password, h.now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}
