// Package server wires the services into the HTTP router and runs the
// application.
package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"ocena/internal/domain/admins"
	"ocena/internal/domain/employees"
	"ocena/internal/domain/examples"
	"ocena/internal/domain/identity"
	"ocena/internal/domain/managers"
	"ocena/internal/domain/reports"
	"ocena/internal/domain/users"
	"ocena/internal/platform/config"
	"ocena/internal/platform/db"
	adminhandler "ocena/internal/transport/http/handlers/admins"
	authhandler "ocena/internal/transport/http/handlers/auth"
	employeehandler "ocena/internal/transport/http/handlers/employees"
	examplehandler "ocena/internal/transport/http/handlers/examples"
	managerhandler "ocena/internal/transport/http/handlers/managers"
	reportshandler "ocena/internal/transport/http/handlers/reports"
	userhandler "ocena/internal/transport/http/handlers/users"
	"ocena/internal/transport/http/middleware"
)

// Services bundles everything the router needs. Tests assemble it from
// in-memory implementations; Run builds it over Postgres.
type Services struct {
	Users     identity.Gateway
	Admins    *admins.Service
	Managers  *managers.Service
	Employees *employees.Service
	Accounts  *users.Service
	Examples  *examples.Service
	Reports   *reports.Service
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	gateway := identity.NewStore(pool)
	employeeSvc := employees.NewService(employees.NewStore(pool), gateway)
	svcs := Services{
		Users:     gateway,
		Admins:    admins.NewService(admins.NewStore(pool), gateway),
		Managers:  managers.NewService(managers.NewStore(pool), gateway),
		Employees: employeeSvc,
		Accounts:  users.NewService(gateway),
		Examples:  examples.NewService(examples.NewStore(pool)),
		Reports:   reports.NewService(employeeSvc),
	}

	router := NewRouter(cfg, svcs, pool.Ping)

	log.Printf("ocena server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func NewRouter(cfg config.Config, svcs Services, ready func(context.Context) error) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if ready != nil {
			if err := ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(svcs.Users, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Get("/me", authHandler.HandleMe)

		adminhandler.NewHandler(svcs.Admins).RegisterRoutes(r)
		managerhandler.NewHandler(svcs.Managers).RegisterRoutes(r)
		employeehandler.NewHandler(svcs.Employees).RegisterRoutes(r)
		userhandler.NewHandler(svcs.Accounts).RegisterRoutes(r)
		examplehandler.NewHandler(svcs.Examples).RegisterRoutes(r)
		reportshandler.NewHandler(svcs.Reports).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return router
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
