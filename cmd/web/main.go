// cmd/web/main.go
//
// Summit – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → conf/.env fallback).
//
//  2. Load configuration (koanf layers, Vault resolution, validation).
//
//  3. Start daily rotating logger (tees to console when running in a TTY).
//
//  4. Configure the admin session signer and the optional GeoIP reader.
//
//  5. Open the database and apply every component's migrations.
//
//  6. Build the chi router: security headers, request-info enrichment,
//     /metrics, /healthz, then each component's routes.
//
//  7. Serve, optionally behind the ForceHTTPS redirect wrapper.
//
// Large comment blocks are framed by blank “//” lines; inline comments
// use a single “//”.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/summit/internal/component"
	"github.com/yanizio/summit/internal/config"
	"github.com/yanizio/summit/internal/database"
	"github.com/yanizio/summit/internal/logger"
	"github.com/yanizio/summit/internal/middleware"
	"github.com/yanizio/summit/internal/requestinfo"
	"github.com/yanizio/summit/internal/respond"
	"github.com/yanizio/summit/internal/session"

	"github.com/yanizio/summit/components/admin"
	"github.com/yanizio/summit/components/exhibitor"
	"github.com/yanizio/summit/components/feedback"
	"github.com/yanizio/summit/components/partnership"
	"github.com/yanizio/summit/components/question"
	"github.com/yanizio/summit/components/registration"
)

const serverEnvPath = "/usr/local/etc/summit/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	session.Configure(cfg.Admin.SessionSecret, cfg.Admin.SessionTTL)

	if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
		// Geo enrichment is optional; analytics events degrade to
		// bare IPs when the database is absent.
		logOut.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "err", err)
	}

	//
	// ── 1.  Database connect + migrations ──────────────────────────────
	//
	dsn := fmt.Sprintf(cfg.Database.DSN, cfg.Database.Password)
	logOut.Infow("connecting to database")
	db, err := database.Open(dsn)
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	logOut.Infow("database online")

	//
	// ── 2.  Components ─────────────────────────────────────────────────
	//
	component.Register(registration.New(db))
	component.Register(question.New(db))
	component.Register(partnership.New(db))
	component.Register(exhibitor.New(db))
	component.Register(feedback.New(db))
	component.Register(admin.New(db, cfg.Admin.PasswordHash))

	if err := database.Migrate(db, component.Migrations()); err != nil {
		logOut.Fatalw("apply migrations", "err", err)
	}

	//
	// ── 3.  Router ─────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			respond.Fail(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		respond.Message(w, "ok")
	})

	for _, c := range component.All() {
		c.Routes(r)
		logOut.Infow("component mounted", "component", c.Name())
	}

	//
	// ── 4.  Serve ──────────────────────────────────────────────────────
	//
	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.ListenAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second, // abort slow-loris headers
		WriteTimeout: 15 * time.Second, // cap total response time
		IdleTimeout:  60 * time.Second, // close idle keep-alives
	}

	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
}
