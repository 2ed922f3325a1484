package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/output"
	pkgdiscord "carreramedico/pkg/discord"
	"carreramedico/pkg/logger"
)

var (
	_ output.RegistrationNotifier = (*WebhookNotifier)(nil)
	_ output.RegistrationNotifier = NopNotifier{}
)

const webhookUsername = "Carrera del Médico"

// webhookExecutor is the part of *discordgo.Session used by the notifier.
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// WebhookNotifier posts registration activity to a Discord channel webhook.
type WebhookNotifier struct {
	session   webhookExecutor
	webhookID string
	token     string
	loc       *time.Location
	lggr      logger.Logger
}

// NewWebhookNotifier creates a notifier for a webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}.
func NewWebhookNotifier(webhookURL string, loc *time.Location, lggr logger.Logger) (*WebhookNotifier, error) {
	id, token, err := pkgdiscord.ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	// Webhooks need no bot token.
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return newWebhookNotifier(s, id, token, loc, lggr), nil
}

func newWebhookNotifier(session webhookExecutor, id, token string, loc *time.Location, lggr logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		session:   session,
		webhookID: id,
		token:     token,
		loc:       loc,
		lggr:      lggr.Named("discord"),
	}
}

func (n *WebhookNotifier) send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := n.session.WebhookExecute(n.webhookID, n.token, false, &discordgo.WebhookParams{
		Username: webhookUsername,
		Embeds:   []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("execute webhook: %w", err)
	}
	return nil
}

func (n *WebhookNotifier) ParticipantRegistered(ctx context.Context, p *entities.Participant, total int64, limit int) error {
	return n.send(ctx, pkgdiscord.BuildRegistrationEmbed(p, total, limit, n.loc))
}

func (n *WebhookNotifier) RegistrationClosed(ctx context.Context, limit int) error {
	n.lggr.Infow("🚫 registration closed", "limit", limit)
	return n.send(ctx, pkgdiscord.BuildClosedEmbed(limit))
}

// NopNotifier is used when no webhook is configured.
type NopNotifier struct{}

func (NopNotifier) ParticipantRegistered(context.Context, *entities.Participant, int64, int) error {
	return nil
}

func (NopNotifier) RegistrationClosed(context.Context, int) error { return nil }
