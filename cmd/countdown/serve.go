package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"countdown_timers/internal/handlers"
	"countdown_timers/internal/logger"
	"countdown_timers/internal/server"
	"countdown_timers/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the timer engine and the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	log := logger.Get(cfg.LogLevel)

	store, err := openStorage(cfg, log)
	if err != nil {
		log.Fatalw("failed to open storage", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Errorw("failed to close storage", "err", cerr)
		}
	}()

	services := service.NewService(store.repos, log, cfg.serviceConfig())
	// A failed load is logged by the engine; it starts empty and keeps running.
	_ = services.Engine.Load(cmd.Context())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go services.Engine.Run(ctx, cfg.TickInterval)

	stopLog := logNotifications(services.Engine, log.Named("alerts"))
	defer stopLog()

	apiHandler := handlers.NewHandler(services, log, cfg.AuthEnabled)
	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	waitForShutdown(cancel, srv, services.Engine, log)
	return nil
}

// logNotifications writes every engine event to the log at info level.
func logNotifications(engine service.Engine, log *logger.Logger) func() {
	events, unsubscribe := engine.Subscribe(32)
	go func() {
		for ev := range events {
			log.Infow(ev.Message, "type", ev.Type, "id", ev.TimerID, "category", ev.Category)
		}
	}()
	return unsubscribe
}

func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops the HTTP server,
// the tick loop and the persistence queue in that order.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, engine service.Engine, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	cancel()
	if err := engine.Close(ctx); err != nil {
		log.Errorw("pending writes not flushed", "err", err)
	}
}
