package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"carreramedico/internal/adapters/discord"
	"carreramedico/internal/adapters/rest"
	"carreramedico/internal/application"
	"carreramedico/internal/config"
	"carreramedico/internal/infrastructure/auth"
	"carreramedico/internal/infrastructure/bib"
	"carreramedico/internal/infrastructure/database"
	"carreramedico/internal/infrastructure/export"
	"carreramedico/internal/infrastructure/i18n"
	"carreramedico/internal/infrastructure/memory"
	"carreramedico/internal/infrastructure/racedata"
	"carreramedico/internal/ports/output"
	"carreramedico/pkg/logger"
	"carreramedico/pkg/tz"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lggr, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = lggr.Sync() }()
			return serve(cmd.Context(), cfg, lggr)
		},
	}
}

// openRepository connects the configured storage backend. The returned
// cleanup func releases it.
func openRepository(ctx context.Context, cfg *config.Config, lggr logger.Logger) (output.ParticipantRepository, func(), error) {
	if cfg.Storage == config.StorageMemory {
		lggr.Warnw("using in-memory storage, data is lost on restart")
		return memory.NewParticipantRepository(), func() {}, nil
	}
	pool, err := database.Open(ctx, cfg.DatabaseURL, lggr.Named("database"))
	if err != nil {
		return nil, nil, err
	}
	return database.NewParticipantRepository(pool), pool.Close, nil
}

func newAuthenticator(cfg *config.Config) (*auth.Authenticator, error) {
	if cfg.AdminPasswordHash != "" {
		return auth.NewAuthenticator([]byte(cfg.JWTSecret), []byte(cfg.AdminPasswordHash), cfg.TokenTTL), nil
	}
	return auth.NewAuthenticatorFromPassword([]byte(cfg.JWTSecret), cfg.AdminPassword, cfg.TokenTTL, bcrypt.DefaultCost)
}

func newNotifier(cfg *config.Config, loc *time.Location, lggr logger.Logger) (output.RegistrationNotifier, error) {
	if cfg.DiscordWebhookURL == "" {
		return discord.NopNotifier{}, nil
	}
	return discord.NewWebhookNotifier(cfg.DiscordWebhookURL, loc, lggr)
}

func serve(ctx context.Context, cfg *config.Config, lggr logger.Logger) error {
	loc, err := tz.Load(cfg.Timezone)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(ctx, cfg, lggr)
	if err != nil {
		return err
	}
	defer closeRepo()

	races, err := racedata.Load(cfg.RaceDataPath)
	if err != nil {
		return err
	}
	renderer, err := bib.NewRenderer(cfg.BibTemplatePath)
	if err != nil {
		return err
	}
	authenticator, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}
	notifier, err := newNotifier(cfg, loc, lggr)
	if err != nil {
		return err
	}

	registration := application.NewRegistrationService(repo, notifier, cfg.MaxRegistrations, lggr)
	defer registration.Wait()

	handler := rest.NewHandler(rest.Services{
		Registration: registration,
		Attendance:   application.NewAttendanceService(repo, export.NewXLSX(loc), lggr),
		Race:         application.NewRaceService(races),
		Admin:        application.NewAdminService(authenticator, lggr),
		Bibs:         application.NewBibService(repo, renderer, lggr),
		Health:       repo,
		Translator:   i18n.NewTranslator(cfg.DefaultLocale, lggr),
	}, lggr)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: rest.NewRouter(handler, rest.Options{
			CORSOrigins: cfg.CORSOrigins,
			FrontendDir: cfg.FrontendDir,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lggr.Infow("🚀 HTTP server listening", "addr", srv.Addr, "storage", cfg.Storage, "limit", cfg.MaxRegistrations)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lggr.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
