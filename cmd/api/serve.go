package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	appHTTP "github.com/storeplan/planning-backend-go/internal/handler/http"
	"github.com/storeplan/planning-backend-go/internal/pkg/cron"
	"github.com/storeplan/planning-backend-go/internal/pkg/jwt"
	"github.com/storeplan/planning-backend-go/internal/pkg/logger"
	"github.com/storeplan/planning-backend-go/internal/pkg/storage"
	serviceAuth "github.com/storeplan/planning-backend-go/internal/service/auth"
	employeeService "github.com/storeplan/planning-backend-go/internal/service/employee"
	"github.com/storeplan/planning-backend-go/internal/service/master"
	scheduleService "github.com/storeplan/planning-backend-go/internal/service/schedule"
	storeHoursService "github.com/storeplan/planning-backend-go/internal/service/storehours"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg := a.cfg

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(JWTService, serviceAuth.Manager{
		Username:     cfg.Manager.Username,
		PasswordHash: cfg.Manager.PasswordHash,
	}, cfg.JWT.AccessExpiration)
	if cfg.Manager.PasswordHash == "" {
		a.logger.Warn("MANAGER_PASSWORD_HASH is empty, login is disabled")
	}

	masterService := master.NewMasterService(a.repos.Stores, a.repos.TimeSlots, a.repos.AbsenceTypes, a.cache)
	employeeSvc := employeeService.NewEmployeeService(a.repos.Employees)
	scheduleSvc := scheduleService.NewScheduleService(a.repos.Schedules)
	storeHoursSvc := storeHoursService.NewStoreHoursService(a.repos.StoreHours)
	planningSvc, err := a.planningService()
	if err != nil {
		return err
	}

	scheduler := cron.NewScheduler()
	exportJobs := cron.NewExportJobs(a.repos.Exports, a.files, cfg.Export.Retention, cfg.Export.PurgeInterval)
	exportJobs.RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	routerConfig := appHTTP.RouterConfig{
		Logger:      a.logger,
		LogLevel:    logger.ParseLevel(cfg.App.LogLevel),
		CORSOrigins: cfg.App.CORSOrigins,
	}
	if local, ok := a.files.(*storage.LocalStorage); ok && strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		routerConfig.FilesDir = local.BasePath()
		routerConfig.FilesPrefix = strings.TrimSuffix(cfg.Storage.BaseURL, "/")
	}

	router := appHTTP.NewRouter(routerConfig, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Master:     appHTTP.NewMasterHandler(masterService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		StoreHours: appHTTP.NewStoreHoursHandler(storeHoursSvc),
		Planning:   appHTTP.NewPlanningHandler(planningSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server listening", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
