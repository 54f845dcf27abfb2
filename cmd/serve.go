package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/landserv/survey-cli/internal/geometry"
	"github.com/landserv/survey-cli/internal/store"
	"github.com/landserv/survey-cli/internal/survey"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the survey HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := initService(0)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(svc, st, cfg.Server.RateLimit, cfg.Server.RateBurst),
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("dataset", svc.Index().Path()),
			zap.Int("regions", svc.Index().Len()),
			zap.Int("epsg", svc.Projection().EPSG()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter assembles the API routes with CORS and a global rate limit.
func newRouter(svc *survey.Service, st store.Store, limit float64, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(rateLimit(rate.Limit(limit), burst))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/locate", handleLocate(svc, st))
	r.Post("/v1/parcel", handleParcel(svc, st))

	return r
}

// rateLimit applies a process-wide token bucket to all requests.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type locateRequest struct {
	Easting  float64      `json:"easting"`
	Northing float64      `json:"northing"`
	Points   [][2]float64 `json:"points,omitempty"`
}

// handleLocate locates one coordinate pair, or a batch when "points" is set.
func handleLocate(svc *survey.Service, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req locateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if len(req.Points) > 0 {
			points := make([]geometry.Point, len(req.Points))
			for i, p := range req.Points {
				points[i] = geometry.Point{X: p[0], Y: p[1]}
			}

			results, err := svc.LocateBatch(r.Context(), points, 0)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}

			saveRun(r.Context(), st, store.KindLocate, req, results)
			writeJSON(w, http.StatusOK, results)
			return
		}

		res, err := svc.Locate(req.Easting, req.Northing)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		saveRun(r.Context(), st, store.KindLocate, req, res)
		writeJSON(w, http.StatusOK, res)
	}
}

type parcelRequest struct {
	Points [][2]float64 `json:"points"`
}

func handleParcel(svc *survey.Service, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req parcelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.Points) == 0 {
			writeError(w, http.StatusBadRequest, "points is required")
			return
		}

		points := make([]geometry.Point, len(req.Points))
		for i, p := range req.Points {
			points[i] = geometry.Point{X: p[0], Y: p[1]}
		}

		res, err := svc.Parcel(points)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		saveRun(r.Context(), st, store.KindParcel, req, res)
		writeJSON(w, http.StatusOK, res)
	}
}

// saveRun records an API request when a store is available. Persistence
// failures are logged, never surfaced to the client.
func saveRun(ctx context.Context, st store.Store, kind string, request, result any) {
	if st == nil {
		return
	}
	if _, err := st.SaveRun(ctx, kind, request, result); err != nil {
		zap.L().Warn("save run failed", zap.String("kind", kind), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
