package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gama-center/ponto-backend-go/internal/handler/http/middleware"
	"github.com/gama-center/ponto-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Punch         PunchHandler
	Token         TokenHandler
	Justification JustificationHandler
	Report        ReportHandler
	Holiday       HolidayHandler
	User          UserHandler
	Setting       SettingHandler
	Stream        StreamHandler
	File          FileHandler
}

func NewRouter(JWTService jwt.Service, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto-gama"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
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

	// Uploaded avatars and evidence photos are served from here; the URLs
	// handed out by the file service point at this route.
	r.Get("/uploads/*", h.File.Serve)

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/punches", func(r chi.Router) {
				r.Post("/", h.Punch.Register)
				r.Get("/today", h.Punch.Today)
				r.Get("/history", h.Report.History)
			})

			r.Route("/token", func(r chi.Router) {
				r.Get("/", h.Token.Current)
				r.Get("/challenge", h.Token.Challenge)
				r.Post("/verify", h.Token.Verify)
			})

			r.Route("/justifications", func(r chi.Router) {
				r.Post("/", h.Justification.Submit)
				r.Get("/latest", h.Justification.Latest)
				r.Get("/stream", h.Stream.JustificationStream)
				r.Post("/{id}/ack", h.Justification.Acknowledge)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", h.Justification.Approve)
					r.Post("/{id}/reject", h.Justification.Reject)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", h.Report.Get)
				r.Get("/bank-of-hours", h.Report.BankOfHours)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.User.Me)
				r.Put("/birthdate", h.User.UpdateBirthdate)
				r.Put("/avatar", h.User.UpdateAvatar)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/radius", h.Setting.GetRadius)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/radius", h.Setting.UpdateRadius)
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
