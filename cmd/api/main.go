package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendbook/internal/config"
	"github.com/MrJamesThe3rd/spendbook/internal/database"
	"github.com/MrJamesThe3rd/spendbook/internal/export"
	spendbookHttp "github.com/MrJamesThe3rd/spendbook/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/spendbook/internal/http/budget"
	dataHandler "github.com/MrJamesThe3rd/spendbook/internal/http/data"
	expenseHandler "github.com/MrJamesThe3rd/spendbook/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/spendbook/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spendbook/internal/http/importcsv"
	statsHandler "github.com/MrJamesThe3rd/spendbook/internal/http/stats"
	"github.com/MrJamesThe3rd/spendbook/internal/importer"
	"github.com/MrJamesThe3rd/spendbook/internal/logger"
	"github.com/MrJamesThe3rd/spendbook/internal/storage"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := database.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	var (
		trackerService = tracker.Load(ctx, storage.New(backend))
		exportService  = export.NewService(trackerService)
	)

	router := spendbookHttp.New(spendbookHttp.Handlers{
		Expenses: expenseHandler.NewHandler(trackerService, cfg.App.PageSize),
		Budgets:  budgetHandler.NewHandler(trackerService),
		Stats:    statsHandler.NewHandler(trackerService),
		Import:   importHandler.NewHandler(importer.NewParser(), trackerService),
		Export:   exportHandler.NewHandler(exportService),
		Data:     dataHandler.NewHandler(trackerService),
	}, cfg.Server.CORSOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "storage", cfg.Storage.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
