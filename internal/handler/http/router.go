package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/smartattend/attendance-backend-go/internal/handler/http/middleware"
	"github.com/smartattend/attendance-backend-go/internal/handler/http/response"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
	"github.com/smartattend/attendance-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	AppEnv         string
}

func NewRouter(
	cfg RouterConfig,
	db *database.DB,
	jwtService jwt.Service,
	authHandler AuthHandler,
	checkinHandler CheckinHandler,
	manualCheckHandler ManualCheckHandler,
	leaveHandler LeaveHandler,
	departmentHandler DepartmentHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			response.InternalServerError(w, "Database unreachable")
			return
		}
		response.Success(w, map[string]string{"database": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/checkins", func(r chi.Router) {
				r.Post("/", checkinHandler.Record)
				r.Get("/", checkinHandler.List)
			})

			r.Route("/manual-checks", func(r chi.Router) {
				r.Post("/", manualCheckHandler.Submit)
				r.Get("/", manualCheckHandler.List)

				// Reviewer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/{id}/review", manualCheckHandler.Review)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/", leaveHandler.List)

				// Reviewer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Post("/{id}/review", leaveHandler.Review)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/users", func(r chi.Router) {
					r.Post("/", userHandler.Create)
					r.Get("/", userHandler.List)
					r.Put("/{id}", userHandler.Update)
				})

				r.Route("/departments", func(r chi.Router) {
					r.Post("/", departmentHandler.Create)
					r.Get("/", departmentHandler.List)
					r.Put("/{id}", departmentHandler.Update)
				})
			})
		})
	})
	return r
}
