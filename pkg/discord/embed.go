package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"carreramedico/internal/domain/entities"
)

const (
	embedColor       = 0x1E3A8A
	embedColorClosed = 0xDC2626
	embedTitle       = "🏃 Nuevo registro"
)

func formatPlaces(total int64, limit int) string {
	if limit <= 0 {
		return fmt.Sprintf("%d (sin límite)", total)
	}
	return fmt.Sprintf("%d/%d", total, limit)
}

// BuildRegistrationEmbed describes a new participant and the remaining capacity.
// The phone number is never published.
func BuildRegistrationEmbed(p *entities.Participant, total int64, limit int, loc *time.Location) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Número :** %s\n", p.Number))
	b.WriteString(fmt.Sprintf("**Nombre :** %s\n", p.Name))
	b.WriteString(fmt.Sprintf("**Sector :** %s", p.Sector))
	return &discordgo.MessageEmbed{
		Title:       embedTitle,
		Description: b.String(),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Lugares", Value: formatPlaces(total, limit), Inline: true},
			{Name: "Registrado", Value: p.RegisteredAt.In(loc).Format("02/01/2006 15:04"), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Carrera del Médico"},
	}
}

// BuildClosedEmbed announces that every slot is taken.
func BuildClosedEmbed(limit int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🚫 Registro cerrado",
		Description: fmt.Sprintf("Se alcanzó el límite de %d participantes.", limit),
		Color:       embedColorClosed,
	}
}
