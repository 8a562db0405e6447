// internal/api/dashboard/handlers.go

// Package dashboard serves the landing view: headline metrics, recent
// bookings, and player stats. A scheduler job refreshes the snapshot in the
// background so GET normally answers from memory; a cold snapshot falls back
// to fetching inline.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/canchalibre/canchaops/internal/api/apiutil"
	"github.com/canchalibre/canchaops/internal/booking"
	"github.com/canchalibre/canchaops/internal/entity"
	"github.com/canchalibre/canchaops/internal/metrics"
	"github.com/canchalibre/canchaops/internal/player"
	"github.com/canchalibre/canchaops/internal/state"
)

const (
	// recentLimit bounds both the accessor window and the recent list.
	recentWindow = 50
	recentLimit  = 8

	refreshTimeout = 10 * time.Second
	dateLayout     = "2006-01-02"
)

var (
	playerAPI  entity.PlayerAPI
	bookingAPI entity.BookingAPI
	snapshot   *state.Snapshot[Metrics]
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(players entity.PlayerAPI, bookings entity.BookingAPI, snap *state.Snapshot[Metrics]) {
	playerAPI = players
	bookingAPI = bookings
	snapshot = snap
}

// Metrics is the dashboard view model.
type Metrics struct {
	JugadoresActivos    int              `json:"jugadores_activos"`
	NuevosJugadoresMes  int              `json:"nuevos_jugadores_mes"`
	ReservasHoy         int              `json:"reservas_hoy"`
	ConfirmadasHoy      int              `json:"confirmadas_hoy"`
	ReservasMes         int              `json:"reservas_mes"`
	IngresosMes         float64          `json:"ingresos_mes"`
	IngresosMesTexto    string           `json:"ingresos_mes_texto"`
	PromedioPorReserva  int              `json:"promedio_por_reserva"`
	ReservasRecientes   []entity.Booking `json:"reservas_recientes"`
	EstadisticasJugador player.Stats     `json:"estadisticas_jugadores"`
	GeneradoEn          time.Time        `json:"generado_en"`
}

// BuildMetrics fetches both collections and folds them into the view model.
func BuildMetrics(ctx context.Context, now time.Time) (Metrics, error) {
	players, err := playerAPI.List(ctx, "-created_date", 0)
	if err != nil {
		return Metrics{}, err
	}
	bookings, err := bookingAPI.List(ctx, "-created_date", recentWindow)
	if err != nil {
		return Metrics{}, err
	}

	today := now.Format(dateLayout)
	var reservasHoy, confirmadasHoy int
	for _, b := range bookings {
		if b.Fecha != today {
			continue
		}
		reservasHoy++
		if b.Estado == entity.StatusConfirmada {
			confirmadasHoy++
		}
	}

	monthly := booking.FilterMonth(bookings, now.Year(), now.Month())
	revenue := booking.SumRevenue(monthly)

	recent := bookings
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	stats := player.ComputeStats(players)
	return Metrics{
		JugadoresActivos:    stats.Active,
		NuevosJugadoresMes:  player.NewThisMonth(players, now),
		ReservasHoy:         reservasHoy,
		ConfirmadasHoy:      confirmadasHoy,
		ReservasMes:         len(monthly),
		IngresosMes:         revenue,
		IngresosMesTexto:    metrics.FormatCurrency(revenue),
		PromedioPorReserva:  metrics.Average(revenue, len(monthly)),
		ReservasRecientes:   recent,
		EstadisticasJugador: stats,
		GeneradoEn:          now.UTC(),
	}, nil
}

// RefreshSnapshot rebuilds the snapshot. Concurrent refreshes may finish out
// of order; the snapshot discards completions from reloads that started
// before the one already applied.
func RefreshSnapshot(ctx context.Context) {
	seq := snapshot.Begin()

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	m, err := BuildMetrics(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Dashboard snapshot refresh failed")
		return
	}
	if !snapshot.Complete(seq, m) {
		log.Debug().Uint64("seq", seq).Msg("Stale dashboard snapshot discarded")
	}
}

// HandleMetrics serves GET /api/v1/dashboard. It answers from the warm
// snapshot when one exists and fetches inline otherwise.
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if m, ok := snapshot.Get(); ok {
		_ = apiutil.WriteJSON(w, http.StatusOK, m)
		return
	}

	seq := snapshot.Begin()
	m, err := BuildMetrics(r.Context(), time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build dashboard metrics")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudieron cargar los datos del panel.")
		return
	}
	snapshot.Complete(seq, m)

	_ = apiutil.WriteJSON(w, http.StatusOK, m)
}
