package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vaanisetu/scheme-cli/internal/analysis"
	"github.com/vaanisetu/scheme-cli/internal/model"
	"github.com/vaanisetu/scheme-cli/internal/monitoring"
	"github.com/vaanisetu/scheme-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := buildRouter(env, rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter wires the API routes and middleware onto a fresh chi router.
func buildRouter(env *env, rps rate.Limit, burst int) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimiter(rps, burst))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth(env))
		r.Get("/schemes", handleSchemes(env))
		r.Post("/schemes/reload", handleReload(env))
		r.Get("/queries", handleQueries(env))
		r.Get("/stats", handleStats(env))
		r.Get("/demo-response", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, analysis.Demo())
		})
		r.With(safeFallback).Post("/full-analysis", handleFullAnalysis(env))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("serve: encode response", zap.Error(err))
	}
}

// rateLimiter applies a global token bucket across all endpoints.
func rateLimiter(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// safeFallback turns a panic into the friendly empty analysis rather than a
// 500. Voice clients read the speakable text aloud, so even a crash must
// produce something speakable.
func safeFallback(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zap.L().Error("serve: analysis panic", zap.Any("panic", rec))
				writeJSON(w, http.StatusOK, model.AnalysisResponse{
					Schemes:         []model.SchemeMatch{},
					ProfileSummary:  "We need a little more information.",
					BenefitsSummary: "Please describe your situation so we can help.",
					SpeakableText:   "Please tell me about your situation so I can help.",
					DataSource:      analysis.DataSourceLabel,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func handleHealth(env *env) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":       "ok",
			"database":     env.Catalog.Status(),
			"cache_loaded": env.Catalog.Len() > 0,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func handleSchemes(env *env) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, env.Catalog.Schemes())
	}
}

func handleReload(env *env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env.Catalog.Reload(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"status": env.Catalog.Status(),
			"count":  env.Catalog.Len(),
		})
	}
}

func handleQueries(env *env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := env.Store.RecentQueries(r.Context(), 50)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if recent == nil {
			recent = []store.QueryRecord{}
		}
		writeJSON(w, http.StatusOK, recent)
	}
}

func handleStats(env *env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lookback := 24
		if v := r.URL.Query().Get("lookback_hours"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				lookback = n
			}
		}
		snap, err := monitoring.NewCollector(env.Store).Collect(r.Context(), lookback)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func handleFullAnalysis(env *env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("demo") == "1" || r.URL.Query().Get("demo") == "true" {
			writeJSON(w, http.StatusOK, analysis.Demo())
			return
		}

		var req model.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		writeJSON(w, http.StatusOK, env.Service.Analyze(r.Context(), req))
	}
}
