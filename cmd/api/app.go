package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"
	"github.com/storeplan/planning-backend-go/internal/config"
	"github.com/storeplan/planning-backend-go/internal/domain/planning"
	"github.com/storeplan/planning-backend-go/internal/pkg/cache"
	"github.com/storeplan/planning-backend-go/internal/pkg/database"
	"github.com/storeplan/planning-backend-go/internal/pkg/email"
	"github.com/storeplan/planning-backend-go/internal/pkg/logger"
	"github.com/storeplan/planning-backend-go/internal/pkg/pdf"
	"github.com/storeplan/planning-backend-go/internal/pkg/storage"
	"github.com/storeplan/planning-backend-go/internal/repository/postgresql"
	planningService "github.com/storeplan/planning-backend-go/internal/service/planning"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *database.DB
	cache   cache.Cache
	files   storage.FileStorage
	repos   planningService.Repositories
	closers []io.Closer
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, logCloser := logger.New(logger.Options{
		Level:       cfg.App.LogLevel,
		File:        cfg.App.LogFile,
		ReplaceAttr: httplog.SchemaECS.Concise(cfg.App.Env != "development").ReplaceAttr,
	})
	slog.SetDefault(log)

	a := &app{cfg: cfg, logger: log, closers: []io.Closer{logCloser}}

	a.db, err = database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgresql.Migrate(ctx, a.db); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a.cache = cache.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
			Prefix:   "planning:",
		})
		if err != nil {
			log.Warn("Redis unavailable, registry cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			a.cache = redisCache
			a.closers = append(a.closers, redisCache)
		}
	}

	switch cfg.Storage.Driver {
	case "s3":
		a.files = storage.NewS3Storage(storage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			PathStyle: cfg.Storage.S3PathStyle,
		})
	default:
		a.files, err = storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.BaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
	}

	a.repos = planningService.Repositories{
		Employees:    postgresql.NewEmployeeRepository(a.db),
		Stores:       postgresql.NewStoreRepository(a.db),
		TimeSlots:    postgresql.NewTimeSlotRepository(a.db),
		AbsenceTypes: postgresql.NewAbsenceTypeRepository(a.db),
		Schedules:    postgresql.NewScheduleRepository(a.db),
		StoreHours:   postgresql.NewStoreHoursRepository(a.db),
		Exports:      postgresql.NewExportRepository(a.db),
	}
	return a, nil
}

func (a *app) planningService() (planning.PlanningService, error) {
	defaults, err := a.cfg.DefaultStoreHours()
	if err != nil {
		return nil, err
	}

	mailer, err := email.NewMailer(email.Config{
		Host:        a.cfg.SMTP.Host,
		Port:        a.cfg.SMTP.Port,
		Username:    a.cfg.SMTP.Username,
		Password:    a.cfg.SMTP.Password,
		FromEmail:   a.cfg.SMTP.FromEmail,
		FromName:    a.cfg.SMTP.FromName,
		Concurrency: a.cfg.SMTP.Concurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	return planningService.NewPlanningService(
		postgresql.NewTransactor(a.db),
		a.repos,
		a.files,
		pdf.NewRenderer(a.cfg.SMTP.FromName),
		mailer,
		planningService.Options{
			DefaultHours:           defaults,
			MonthlyDefaultClosures: a.cfg.Planning.MonthlyDefaultClosures,
			URLExpiry:              a.cfg.Storage.S3PresignTTL,
		},
	), nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("Failed to close resource", "error", err)
		}
	}
}
