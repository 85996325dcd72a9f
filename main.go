package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pharma_qms/internal/app"
	"pharma_qms/internal/drive"
	"pharma_qms/internal/notifications"
	"pharma_qms/internal/qms"
	"pharma_qms/internal/sheets"
	"pharma_qms/internal/web"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()
	cfg := app.LoadConfig()

	ctx := context.Background()
	service := initializeService(ctx, cfg)

	server, err := web.NewServer(service)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create web server")
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("Starting QMS server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}

func initializeService(ctx context.Context, cfg app.Config) *qms.Service {
	log.Debug().Msg("Initializing clients")

	sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile, cfg.TableIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	driveClient, err := drive.NewClient(ctx, cfg.CredentialsFile, cfg.DriveFolderID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create drive client")
	}

	notifier := notifications.NewClient(cfg.NtfyURL, cfg.NtfyTopic, cfg.NtfyPriority, cfg.NtfyEnabled)
	if cfg.NtfyEnabled {
		log.Info().Str("topic", cfg.NtfyTopic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}

	log.Debug().Msg("Clients initialized successfully")
	return qms.NewService(sheetsClient, driveClient, notifier, cfg.AdminPassword)
}
