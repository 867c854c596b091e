package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedbox/app/api"
	"feedbox/app/cfg"
	"feedbox/app/database"
	"feedbox/app/tasks"
)

// runServe starts the HTTP API and a background scheduler that
// refreshes all active feeds on the configured interval.
func runServe(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("serve takes no arguments")
	}

	c := cfg.Get()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	feedRepo := database.NewFeedRepository(db)
	entryRepo := database.NewEntryRepository(db)
	refresher := newRefresher(feedRepo, entryRepo)

	scheduler := tasks.NewScheduler(refresher,
		time.Duration(c.RefreshInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(feedRepo, entryRepo, refresher)
	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      api.NewServer(handler, c.APIAccessKey),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return httpServer.Shutdown(shutdownCtx)
}
