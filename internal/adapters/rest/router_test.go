package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"carreramedico/internal/adapters/discord"
	"carreramedico/internal/application"
	"carreramedico/internal/infrastructure/auth"
	"carreramedico/internal/infrastructure/bib"
	"carreramedico/internal/infrastructure/export"
	"carreramedico/internal/infrastructure/i18n"
	"carreramedico/internal/infrastructure/memory"
	"carreramedico/internal/infrastructure/racedata"
	"carreramedico/pkg/logger"
	"carreramedico/pkg/tz"
)

const adminPassword = "clave-admin"

type testServer struct {
	handler http.Handler
	repo    *memory.ParticipantRepository
	ping    *flakyPinger
}

type flakyPinger struct{ err error }

func (p *flakyPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, limit int, opts Options) *testServer {
	t.Helper()
	lggr := logger.Test(t)
	repo := memory.NewParticipantRepository()

	races, err := racedata.Load("")
	require.NoError(t, err)
	renderer, err := bib.NewRenderer("")
	require.NoError(t, err)
	authenticator, err := auth.NewAuthenticatorFromPassword([]byte("test-secret"), adminPassword, time.Hour, bcrypt.MinCost)
	require.NoError(t, err)

	ping := &flakyPinger{}
	h := NewHandler(Services{
		Registration: application.NewRegistrationService(repo, discord.NopNotifier{}, limit, lggr),
		Attendance:   application.NewAttendanceService(repo, export.NewXLSX(tz.MexicoCity), lggr),
		Race:         application.NewRaceService(races),
		Admin:        application.NewAdminService(authenticator, lggr),
		Bibs:         application.NewBibService(repo, renderer, lggr),
		Health:       ping,
		Translator:   i18n.NewTranslator("es", lggr),
	}, lggr)
	return &testServer{handler: NewRouter(h, opts), repo: repo, ping: ping}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T) map[string]string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"password": adminPassword}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return map[string]string{"Authorization": "Bearer " + resp.Token}
}

func (s *testServer) register(t *testing.T, name, phone string) registrationResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/registro", registrationRequest{
		Name:   name,
		Sex:    "Femenino",
		Phone:  phone,
		Sector: "Medicina General",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp registrationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPublicRoutes(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 2, Options{})

	rec := s.do(t, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[healthResponse](t, rec).Database)

	s.ping.err = errors.New("down")
	rec = s.do(t, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	s.ping.err = nil

	rec = s.do(t, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API Carrera del Médico funcionando correctamente", decodeBody[messageResponse](t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/sectores", nil, nil)
	assert.Len(t, decodeBody[sectorsResponse](t, rec).Sectors, 12)

	rec = s.do(t, http.MethodGet, "/api/carrera", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var race map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &race))
	assert.Equal(t, "Carrera del Médico", race["name"])
	assert.Contains(t, race, "countdown")
	assert.Contains(t, race, "sponsors")
}

func TestRegistrationFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 2, Options{})

	st := decodeBody[statusResponse](t, s.do(t, http.MethodGet, "/api/status", nil, nil))
	assert.Equal(t, statusResponse{Total: 0, Limit: 2, CanJoin: true}, st)

	first := s.register(t, "Ana Pérez", "5512345678")
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, "0001", first.Number)
	assert.Equal(t, "¡Registro exitoso! Tu número es: 0001", first.Message)
	assert.Equal(t, "/api/imagen/0001?nombre=Ana+P%C3%A9rez", first.ImageURL)

	rec := s.do(t, http.MethodPost, "/api/registro", registrationRequest{
		Name: "Otra", Sex: "Masculino", Phone: "5512345678", Sector: "Farmacia",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Ya existe un registro con este número de teléfono: Ana Pérez", decodeBody[errorResponse](t, rec).Detail)

	rec = s.do(t, http.MethodPost, "/api/registro", registrationRequest{
		Name: "Corto", Sex: "Masculino", Phone: "123", Sector: "Farmacia",
	}, map[string]string{"Accept-Language": "en-US"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "The phone number must have at least 10 digits", decodeBody[errorResponse](t, rec).Detail)

	rec = s.do(t, http.MethodPost, "/api/registro", registrationRequest{Name: "Falta"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Todos los campos son obligatorios", decodeBody[errorResponse](t, rec).Detail)

	s.register(t, "Bruno Díaz", "5587654321")

	rec = s.do(t, http.MethodPost, "/api/registro", registrationRequest{
		Name: "Tarde", Sex: "Masculino", Phone: "5511112222", Sector: "Farmacia",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Se ha alcanzado el límite máximo de 2 registros", decodeBody[errorResponse](t, rec).Detail)

	st = decodeBody[statusResponse](t, s.do(t, http.MethodGet, "/api/status", nil, nil))
	assert.Equal(t, statusResponse{Total: 2, Limit: 2, CanJoin: false}, st)

	req := httptest.NewRequest(http.MethodPost, "/api/registro", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cuerpo de la petición inválido", decodeBody[errorResponse](t, rec).Detail)
}

func TestImage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10, Options{})
	reg := s.register(t, "Ana Pérez", "5512345678")

	rec := s.do(t, http.MethodGet, reg.ImageURL, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = s.do(t, http.MethodGet, "/api/imagen/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "participante_0001_Ana_P")

	rec = s.do(t, http.MethodGet, "/api/imagen/0099", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Participante no encontrado", decodeBody[errorResponse](t, rec).Detail)

	rec = s.do(t, http.MethodGet, "/api/imagen/abc?nombre=X", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10, Options{})

	for _, path := range []string{
		"/api/participantes",
		"/api/participantes/buscar?tipo=numero&valor=1",
		"/api/participantes/global?q=ana",
		"/api/participantes/export",
		"/api/asistencia/resumen",
		"/api/total_participantes",
	} {
		rec := s.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		rec = s.do(t, http.MethodGet, path, nil, map[string]string{"Authorization": "Bearer nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Credenciales inválidas", decodeBody[errorResponse](t, rec).Detail)
}

func TestAttendanceConsole(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10, Options{})
	for i, name := range []string{"Ana Pérez", "Bruno Díaz", "Carla Ana Ruiz"} {
		s.register(t, name, fmt.Sprintf("55000000%02d", i+1))
	}
	admin := s.login(t)

	page := decodeBody[participantPageResponse](t, s.do(t, http.MethodGet, "/api/participantes?limit=2", nil, admin))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Participants, 2)

	page = decodeBody[participantPageResponse](t, s.do(t, http.MethodGet, "/api/participantes/global?q=ana", nil, admin))
	assert.Equal(t, int64(2), page.Total)

	rec := s.do(t, http.MethodGet, "/api/participantes/global", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	p := decodeBody[participantResponse](t, s.do(t, http.MethodGet, "/api/participantes/buscar?tipo=numero&valor=2", nil, admin))
	assert.Equal(t, "Bruno Díaz", p.Name)
	assert.Equal(t, "0002", p.Number)

	rec = s.do(t, http.MethodGet, "/api/participantes/buscar?tipo=email&valor=x", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/participantes/buscar?tipo=telefono&valor=0000000000", nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	attended := true
	p = decodeBody[participantResponse](t, s.do(t, http.MethodPatch, "/api/participantes/2/asistencia", attendanceRequest{Attended: &attended}, admin))
	assert.True(t, p.Attended)

	rec = s.do(t, http.MethodPatch, "/api/participantes/99/asistencia", attendanceRequest{Attended: &attended}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodPatch, "/api/participantes/abc/asistencia", attendanceRequest{Attended: &attended}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPatch, "/api/participantes/2/asistencia", map[string]any{}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bulk := decodeBody[bulkAttendanceResponse](t, s.do(t, http.MethodPatch, "/api/participantes/asistencia/bulk",
		bulkAttendanceRequest{IDs: []uint{1, 3, 3, 50}, Attended: &attended}, admin))
	assert.Equal(t, int64(2), bulk.Updated)

	rec = s.do(t, http.MethodPatch, "/api/participantes/asistencia/bulk", bulkAttendanceRequest{IDs: []uint{}, Attended: &attended}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Lista de IDs no válida", decodeBody[errorResponse](t, rec).Detail)

	sum := decodeBody[summaryResponse](t, s.do(t, http.MethodGet, "/api/asistencia/resumen", nil, admin))
	assert.Equal(t, summaryResponse{Total: 3, Attended: 3, Pending: 0}, sum)

	total := decodeBody[totalResponse](t, s.do(t, http.MethodGet, "/api/total_participantes", nil, admin))
	assert.Equal(t, int64(3), total.Total)
}

func TestExport(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10, Options{})
	s.register(t, "Ana Pérez", "5500000001")
	s.register(t, "Bruno Díaz", "5500000002")
	admin := s.login(t)

	rec := s.do(t, http.MethodGet, "/api/participantes/export", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=participantes.xlsx", rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Participantes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "0001", rows[1][0])
	assert.Equal(t, "0002", rows[2][0])
}

func TestRequestIDAndCORS(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, 10, Options{CORSOrigins: []string{"https://carrera.mx"}})

	rec := s.do(t, http.MethodGet, "/api/status", nil, nil)
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	require.NoError(t, err)

	id := uuid.NewString()
	rec = s.do(t, http.MethodGet, "/api/status", nil, map[string]string{requestIDHeader: id})
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))

	rec = s.do(t, http.MethodGet, "/api/status", nil, map[string]string{"Origin": "https://carrera.mx"})
	assert.Equal(t, "https://carrera.mx", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = s.do(t, http.MethodGet, "/api/status", nil, map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = s.do(t, http.MethodGet, "/api/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFrontendFallback(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o600))
	s := newTestServer(t, 10, Options{FrontendDir: dir})

	rec := s.do(t, http.MethodGet, "/assets/app.js", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/admin/asistencia", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "spa")

	rec = s.do(t, http.MethodGet, "/api/status", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

type failingRenderer struct{}

func (failingRenderer) Render(string, string) ([]byte, error) {
	return nil, errors.New("template unreadable")
}

func TestImageRenderFailure(t *testing.T) {
	t.Parallel()
	lggr := logger.Test(t)
	h := NewHandler(Services{
		Bibs:       application.NewBibService(memory.NewParticipantRepository(), failingRenderer{}, lggr),
		Translator: i18n.NewTranslator("es", lggr),
	}, lggr)
	srv := &testServer{handler: NewRouter(h, Options{})}

	rec := srv.do(t, http.MethodGet, "/api/imagen/0001?nombre=Ana", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "No se pudo generar la imagen", decodeBody[errorResponse](t, rec).Detail)

	rec = srv.do(t, http.MethodGet, "/api/imagen/0001?nombre=Ana", nil, map[string]string{"Accept-Language": "en"})
	assert.Equal(t, "The image could not be generated", decodeBody[errorResponse](t, rec).Detail)
}
