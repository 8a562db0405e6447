// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/canchalibre/canchaops/internal/api"
	"github.com/canchalibre/canchaops/internal/api/bookings"
	"github.com/canchalibre/canchaops/internal/api/dashboard"
	"github.com/canchalibre/canchaops/internal/api/players"
	"github.com/canchalibre/canchaops/internal/api/reports"
	"github.com/canchalibre/canchaops/internal/config"
	"github.com/canchalibre/canchaops/internal/entity"
	"github.com/canchalibre/canchaops/internal/entity/entitystore"
	"github.com/canchalibre/canchaops/internal/state"
	"github.com/canchalibre/canchaops/internal/submitgate"
)

func newServer(cfg *config.Config) (*http.Server, func(), error) {
	playerAPI, bookingAPI, cleanup, err := newEntityAPIs(cfg)
	if err != nil {
		return nil, nil, err
	}

	bookings.InitHandlers(bookingAPI)
	players.InitHandlers(playerAPI)
	dashboard.InitHandlers(playerAPI, bookingAPI, &state.Snapshot[dashboard.Metrics]{})
	reports.InitHandlers(playerAPI, bookingAPI)

	router := http.NewServeMux()
	registerRoutes(router)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, cleanup, nil
}

// newEntityAPIs selects the accessor backend: a remote entity service when
// configured, the embedded SQLite store otherwise.
func newEntityAPIs(cfg *config.Config) (entity.PlayerAPI, entity.BookingAPI, func(), error) {
	if cfg.EntityAPI.BaseURL != "" {
		log.Info().Str("base_url", cfg.EntityAPI.BaseURL).Msg("Using remote entity API")
		client := entity.NewClient(cfg.EntityAPI.BaseURL, &http.Client{Timeout: cfg.EntityAPI.Timeout()})
		return client.Players(), client.Bookings(), func() {}, nil
	}

	log.Info().Str("filename", cfg.Database.Filename).Msg("Using embedded entity store")
	store, err := entitystore.Open(cfg.Database.Filename)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close entity store")
		}
	}
	return store.Players(), store.Bookings(), cleanup, nil
}

func registerRoutes(mux *http.ServeMux) {
	// One in-flight mutation per client and route; duplicates get 429.
	gate := submitgate.Middleware(submitgate.New(0, nil))

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Dashboard
	mux.HandleFunc("GET /api/v1/dashboard/metrics", dashboard.HandleMetrics)

	// Bookings
	mux.HandleFunc("GET /api/v1/bookings", bookings.HandleList)
	mux.HandleFunc("GET /api/v1/bookings/slots", bookings.HandleTimeSlots)
	mux.Handle("POST /api/v1/bookings", gate(http.HandlerFunc(bookings.HandleCreate)))
	mux.Handle("PUT /api/v1/bookings/{id}", gate(http.HandlerFunc(bookings.HandleUpdate)))
	mux.Handle("PATCH /api/v1/bookings/{id}/estado", gate(http.HandlerFunc(bookings.HandleStatusChange)))

	// Players
	mux.HandleFunc("GET /api/v1/players", players.HandleList)
	mux.Handle("POST /api/v1/players", gate(http.HandlerFunc(players.HandleCreate)))
	mux.Handle("PUT /api/v1/players/{id}", gate(http.HandlerFunc(players.HandleUpdate)))
	mux.Handle("PATCH /api/v1/players/{id}/estado", gate(http.HandlerFunc(players.HandleToggle)))

	// Reports
	mux.HandleFunc("GET /api/v1/reports/monthly", reports.HandleMonthly)
	mux.HandleFunc("GET /api/v1/reports/export", reports.HandleExport)
}
