package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/storeplan/planning-backend-go/internal/handler/http/middleware"
	"github.com/storeplan/planning-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Logger      *slog.Logger
	LogLevel    slog.Level
	CORSOrigins []string
	// FilesDir serves archived exports under FilesPrefix when set.
	FilesDir    string
	FilesPrefix string
}

type Handlers struct {
	Auth       AuthHandler
	Master     MasterHandler
	Employee   EmployeeHandler
	Schedule   ScheduleHandler
	StoreHours StoreHoursHandler
	Planning   PlanningHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", archiveURLHeader},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/stores", func(r chi.Router) {
				r.Get("/", h.Master.ListStores)
				r.Post("/", h.Master.CreateStore)
				r.Get("/{id}", h.Master.GetStore)
				r.Put("/{id}", h.Master.UpdateStore)
				r.Delete("/{id}", h.Master.DeleteStore)
			})

			r.Route("/time-slots", func(r chi.Router) {
				r.Get("/", h.Master.ListTimeSlots)
				r.Post("/", h.Master.CreateTimeSlot)
				r.Get("/{id}", h.Master.GetTimeSlot)
				r.Put("/{id}", h.Master.UpdateTimeSlot)
				r.Delete("/{id}", h.Master.DeleteTimeSlot)
			})

			r.Route("/absence-types", func(r chi.Router) {
				r.Get("/", h.Master.ListAbsenceTypes)
				r.Post("/", h.Master.CreateAbsenceType)
				r.Get("/{id}", h.Master.GetAbsenceType)
				r.Put("/{id}", h.Master.UpdateAbsenceType)
				r.Delete("/{id}", h.Master.DeleteAbsenceType)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
				r.Delete("/{id}", h.Employee.DeleteEmployee)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.Schedule.ListSchedules)
				r.Put("/", h.Schedule.UpsertSchedule)
				r.Delete("/{employeeID}/{date}", h.Schedule.DeleteSchedule)
			})

			r.Route("/store-hours", func(r chi.Router) {
				r.Get("/", h.StoreHours.ListStoreHours)
				r.Put("/{date}", h.StoreHours.UpsertStoreHours)
				r.Delete("/{date}", h.StoreHours.DeleteStoreHours)
			})

			r.Route("/planning", func(r chi.Router) {
				r.Route("/week", func(r chi.Router) {
					r.Get("/", h.Planning.GetWeek)
					r.Get("/pdf", h.Planning.ExportWeekPDF)
					r.Post("/copy", h.Planning.CopyWeek)
					r.Post("/send", h.Planning.SendWeekPlanning)
					r.Delete("/{monday}", h.Planning.DeleteWeek)
				})
				r.Route("/month", func(r chi.Router) {
					r.Get("/", h.Planning.GetMonthlyTotals)
					r.Get("/pdf", h.Planning.ExportMonthPDF)
					r.Post("/send", h.Planning.SendMonthPlanning)
				})
			})
		})
	})

	if cfg.FilesDir != "" && cfg.FilesPrefix != "" {
		fileServer := http.StripPrefix(cfg.FilesPrefix, http.FileServer(http.Dir(cfg.FilesDir)))
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Get(cfg.FilesPrefix+"/*", fileServer.ServeHTTP)
		})
	}
	return r
}
