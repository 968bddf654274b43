package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"placetrack/internal/config"
	"placetrack/internal/handlers"
	"placetrack/internal/middleware"
	"placetrack/internal/repo"
)

// newRouter wires repositories, handlers, and the middleware chain.
// Split out from main so integration tests can mount the full API on a
// mock-backed DB.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	placeRepo := repo.NewPlaceRepo(database)
	recordRepo := repo.NewRecordRepo(database)
	auditRepo := repo.NewAuditRepo(database)

	secret := []byte(cfg.JWTSecret)
	tokenLifetime := time.Duration(cfg.JWTExpireHours) * time.Hour

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Secret: secret, TokenLifetime: tokenLifetime}
	placeHandler := &handlers.PlaceHandler{Repo: placeRepo, Records: recordRepo, AuditRepo: auditRepo}
	recordHandler := &handlers.RecordHandler{Repo: recordRepo, Places: placeRepo, AuditRepo: auditRepo}
	statsHandler := &handlers.StatsHandler{Places: placeRepo, Records: recordRepo}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo}

	authLimiter := middleware.AuthRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.Env == "prod"))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	// Operational endpoints
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		if err := database.PingContext(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			handlers.JSONResponse(w, map[string]string{"message": "placetrack API"})
		})

		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/auth/signup", authHandler.Signup)
			r.Post("/auth/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWT(secret))

			r.Get("/auth/check", authHandler.Check)

			r.Get("/places", placeHandler.ListPlaces)
			r.Post("/places", placeHandler.CreatePlace)
			r.Get("/places/{slug}", placeHandler.GetPlace)
			r.Delete("/places/{slug}", placeHandler.DeletePlace)

			r.Post("/records", recordHandler.CreateRecord)
			r.Delete("/records/{id}", recordHandler.DeleteRecord)

			r.Get("/stats", statsHandler.GetStats)
			r.Get("/audit", auditHandler.ListAudit)
		})
	})

	return r
}
