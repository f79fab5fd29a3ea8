package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/username/docbridge/backend/src/clients"
	"github.com/username/docbridge/backend/src/config"
	"github.com/username/docbridge/backend/src/database"
	"github.com/username/docbridge/backend/src/handlers"
	"github.com/username/docbridge/backend/src/logger"
	"github.com/username/docbridge/backend/src/observability/metrics"
	"github.com/username/docbridge/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Docbridge export server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	metrics.Init()

	logger.L.Info("Initializing services and handlers...")
	docAIClient := clients.NewDocAIClient(config.Cfg.DocAIURLTemplate, config.Cfg.DocAIAPIToken, config.Cfg.HTTPClientTimeout)
	sinkClient := clients.NewSinkClient(config.Cfg.SinkURL, config.Cfg.HTTPClientTimeout)
	exportService := services.NewExportService(docAIClient, sinkClient)
	exportHandler := handlers.NewExportHandler(exportService)

	logger.L.Info("Configuring routes...")
	basicAuth := handlers.BasicAuthMiddleware(config.Cfg.AuthUsername, config.Cfg.AuthPassword)

	mux := http.NewServeMux()
	mux.Handle("GET /export", basicAuth(http.HandlerFunc(exportHandler.HandleExport)))
	mux.Handle("GET /api/exports", basicAuth(http.HandlerFunc(exportHandler.HandleListExports)))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Docbridge export server is running"})
		} else {
			logger.L.Warn("Path not found", "method", r.Method, "path", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := rateLimitMiddleware(mux)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     finalHandler,
		ReadTimeout: 15 * time.Second,
		// The export pipeline makes two sequential outbound calls, each
		// bounded by HTTP_CLIENT_TIMEOUT; the write timeout must outlast both.
		WriteTimeout: 2*config.Cfg.HTTPClientTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
