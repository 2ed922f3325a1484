package rest

import (
	"time"

	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/input"
)

type participantResponse struct {
	ID           uint      `json:"id"`
	Number       string    `json:"numero_asignado"`
	Name         string    `json:"nombre"`
	Sex          string    `json:"sexo"`
	Phone        string    `json:"telefono"`
	Sector       string    `json:"sector_profesional"`
	RegisteredAt time.Time `json:"fecha_registro"`
	Attended     bool      `json:"asistio"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toParticipantResponse(p *entities.Participant) participantResponse {
	return participantResponse{
		ID:           p.ID,
		Number:       p.Number,
		Name:         p.Name,
		Sex:          p.Sex,
		Phone:        p.Phone,
		Sector:       p.Sector,
		RegisteredAt: p.RegisteredAt,
		Attended:     p.Attended,
		UpdatedAt:    p.UpdatedAt,
	}
}

type participantPageResponse struct {
	Participants []participantResponse `json:"participantes"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

func toPageResponse(page *input.ParticipantPage) participantPageResponse {
	out := participantPageResponse{
		Participants: make([]participantResponse, len(page.Participants)),
		Total:        page.Total,
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	for i := range page.Participants {
		out.Participants[i] = toParticipantResponse(&page.Participants[i])
	}
	return out
}

type registrationRequest struct {
	Name   string `json:"nombre"`
	Sex    string `json:"sexo"`
	Phone  string `json:"telefono"`
	Sector string `json:"sector_profesional"`
}

type registrationResponse struct {
	ID       uint   `json:"id"`
	Number   string `json:"numero_asignado"`
	Message  string `json:"message"`
	ImageURL string `json:"imagen_url"`
}

type statusResponse struct {
	Total   int64 `json:"total_registros"`
	Limit   int   `json:"limite_maximo"`
	CanJoin bool  `json:"puede_registrar"`
}

type sectorsResponse struct {
	Sectors []string `json:"sectores"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message"`
}

type raceResponse struct {
	*entities.Race
	Countdown entities.Countdown `json:"countdown"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type attendanceRequest struct {
	Attended *bool `json:"asistio"`
}

type bulkAttendanceRequest struct {
	IDs      []uint `json:"ids"`
	Attended *bool  `json:"asistio"`
}

type bulkAttendanceResponse struct {
	Updated int64 `json:"updated"`
}

type summaryResponse struct {
	Total    int64 `json:"total"`
	Attended int64 `json:"asistieron"`
	Pending  int64 `json:"pendientes"`
}

type totalResponse struct {
	Total int64 `json:"total"`
}
