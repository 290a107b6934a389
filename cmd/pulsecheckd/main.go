// Command pulsecheckd is the Pulsecheck platform service.
// It serves the customer API, the embedded dashboard, Prometheus metrics,
// and a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulsecheck/pulsecheck/internal/api"
	"github.com/pulsecheck/pulsecheck/internal/metrics"
	"github.com/pulsecheck/pulsecheck/internal/platform"
	"github.com/pulsecheck/pulsecheck/internal/store"
	"github.com/pulsecheck/pulsecheck/pkg/config"
	"github.com/pulsecheck/pulsecheck/pkg/health"
)

type serverConfig struct {
	Port        string
	DatabaseURL string
	APIKey      string
	ConfigPath  string
}

func loadServerConfig() serverConfig {
	return serverConfig{
		Port:        envOrDefault("PORT", "8080"),
		DatabaseURL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/pulsecheck?sslmode=disable"),
		APIKey:      os.Getenv("API_KEY"),
		ConfigPath:  envOrDefault("CONFIG_PATH", "pulsecheck.yaml"),
	}
}

func main() {
	sc := loadServerConfig()

	cfg, err := config.Load(sc.ConfigPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != "" {
		sc.Port = envOrDefault("PORT", cfg.Server.Port)
	}
	if os.Getenv("DATABASE_URL") == "" && cfg.Server.DatabaseURL != "" {
		sc.DatabaseURL = cfg.Server.DatabaseURL
	}
	if sc.APIKey == "" {
		sc.APIKey = cfg.Server.APIKey
	}

	db, err := sql.Open("postgres", sc.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	engine, err := health.NewEngine(cfg.EngineConfig())
	if err != nil {
		log.Fatalf("build scoring engine: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	handler := api.NewHandler(store.NewStore(db), engine, m)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:    ":" + sc.Port,
		Handler: api.CORS(api.APIKeyAuth(sc.APIKey)(mux)),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting pulsecheckd on :%s", sc.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
