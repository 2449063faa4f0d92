package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
)

var servePort int

type searchRequest struct {
	CallerID      string   `json:"caller_id"`
	Location      string   `json:"location"`
	BusinessType  string   `json:"business_type"`
	Keywords      []string `json:"keywords,omitempty"`
	LocationTerms []string `json:"location_terms,omitempty"`
	MaxResults    int      `json:"max_results,omitempty"`
	Premium       bool     `json:"premium,omitempty"`
	SeedURL       string   `json:"seed_url,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for lead searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env := initSearchEnv("")

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/api/search", func(w http.ResponseWriter, req *http.Request) {
			var body searchRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if body.CallerID == "" {
				body.CallerID = req.RemoteAddr
			}

			if !env.Entitlements.Consume(body.CallerID, body.Premium) {
				// Quota exhaustion is an upgrade prompt, not an error.
				writeJSON(w, http.StatusOK, model.SearchResult{
					Success:         false,
					Leads:           []model.Lead{},
					RequiresUpgrade: true,
					Error:           "daily search limit reached",
				})
				return
			}

			session := model.NewSearchSession(
				body.Location,
				body.BusinessType,
				body.Keywords,
				body.LocationTerms,
				body.MaxResults,
				body.Premium,
			)

			result := env.Pipeline.Run(req.Context(), session)

			status := http.StatusOK
			if !result.Success && result.TotalFound == 0 && result.Error != "" {
				status = http.StatusBadGateway
			}
			if session.Validate() != nil {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, result)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
