package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/handler/http/middleware"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	trackingHandler TrackingHandler,
	timesheetHandler TimesheetHandler,
	activityHandler ActivityHandler,
	auditLogHandler AuditLogHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timetrack-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// SSE stream authenticates via its own short-lived token.
		r.Get("/tracking/events", eventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/check-in", timesheetHandler.CheckIn)
				r.Post("/check-out", timesheetHandler.CheckOut)
				r.Get("/", timesheetHandler.List)
				r.Get("/today", timesheetHandler.GetToday)
			})

			r.Route("/time-entries", func(r chi.Router) {
				r.Post("/start", trackingHandler.Start)
				r.Post("/stop", trackingHandler.Stop)
				r.Get("/", trackingHandler.List)
				r.Get("/active", trackingHandler.GetActive)
			})

			r.Post("/activity", activityHandler.Report)
			r.Put("/employees/work-type", timesheetHandler.UpdateWorkType)
			r.Get("/audit-logs", auditLogHandler.List)
			r.Post("/tracking/events/token", eventsHandler.Token)
		})
	})

	return r
}
