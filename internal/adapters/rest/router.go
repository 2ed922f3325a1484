// Package rest exposes the registration site and the admin attendance console
// over HTTP.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"carreramedico/internal/ports/input"
	"carreramedico/internal/ports/output"
	"carreramedico/pkg/logger"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the use cases served by the API.
type Services struct {
	Registration input.RegistrationUseCase
	Attendance   input.AttendanceUseCase
	Race         input.RaceUseCase
	Admin        input.AdminUseCase
	Bibs         input.BibUseCase
	Health       Pinger
	Translator   output.Translator
}

// Options configures the router.
type Options struct {
	CORSOrigins []string
	// FrontendDir, when set, is served as a single page application.
	FrontendDir string
}

type Handler struct {
	svc  Services
	lggr logger.Logger
	now  func() time.Time
}

func NewHandler(svc Services, lggr logger.Logger) *Handler {
	return &Handler{
		svc:  svc,
		lggr: lggr.Named("http"),
		now:  time.Now,
	}
}

// NewRouter wires every route of the API.
func NewRouter(h *Handler, opts Options) http.Handler {
	r := mux.NewRouter()
	r.Use(h.withRequestID, h.withLogging)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	api.HandleFunc("/status", h.Status).Methods(http.MethodGet)
	api.HandleFunc("/sectores", h.Sectors).Methods(http.MethodGet)
	api.HandleFunc("/registro", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/imagen/{numero}", h.Image).Methods(http.MethodGet)
	api.HandleFunc("/carrera", h.Race).Methods(http.MethodGet)
	api.HandleFunc("/admin/login", h.Login).Methods(http.MethodPost)

	admin := api.NewRoute().Subrouter()
	admin.Use(h.requireAdmin)
	admin.HandleFunc("/participantes", h.ListParticipants).Methods(http.MethodGet)
	admin.HandleFunc("/participantes/buscar", h.LookupParticipant).Methods(http.MethodGet)
	admin.HandleFunc("/participantes/global", h.GlobalSearch).Methods(http.MethodGet)
	admin.HandleFunc("/participantes/export", h.ExportParticipants).Methods(http.MethodGet)
	admin.HandleFunc("/participantes/asistencia/bulk", h.BulkAttendance).Methods(http.MethodPatch)
	admin.HandleFunc("/participantes/{id}/asistencia", h.SetAttendance).Methods(http.MethodPatch)
	admin.HandleFunc("/asistencia/resumen", h.AttendanceSummary).Methods(http.MethodGet)
	admin.HandleFunc("/total_participantes", h.TotalParticipants).Methods(http.MethodGet)

	api.NotFoundHandler = http.HandlerFunc(h.notFound)

	if opts.FrontendDir != "" {
		r.PathPrefix("/").Handler(spaHandler{dir: opts.FrontendDir})
	} else {
		r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept-Language"},
		ExposedHeaders:   []string{"Content-Disposition", requestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
