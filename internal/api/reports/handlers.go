// internal/api/reports/handlers.go

// Package reports serves the monthly report view and its CSV export.
package reports

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/canchalibre/canchaops/internal/api/apiutil"
	"github.com/canchalibre/canchaops/internal/booking"
	"github.com/canchalibre/canchaops/internal/entity"
	"github.com/canchalibre/canchaops/internal/metrics"
	"github.com/canchalibre/canchaops/internal/player"
)

const (
	// reportWindow is how many bookings the report pulls, newest first. Wider
	// than the list view so past months stay reportable.
	reportWindow = 200

	monthLayout  = "2006-01"
	monthOptions = 12
)

var (
	playerAPI  entity.PlayerAPI
	bookingAPI entity.BookingAPI

	nowFunc = time.Now
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(players entity.PlayerAPI, bookings entity.BookingAPI) {
	playerAPI = players
	bookingAPI = bookings
}

// MonthOption is one entry of the month selector.
type MonthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type monthlyResponse struct {
	Mes           string          `json:"mes"`
	Resumen       booking.Summary `json:"resumen"`
	IngresosTexto string          `json:"ingresos_texto"`
	Jugadores     player.Stats    `json:"jugadores"`
	OpcionesMes   []MonthOption   `json:"opciones_mes"`
}

// HandleMonthly serves GET /api/v1/reports/monthly?mes=YYYY-MM. A missing mes
// defaults to the current month.
func HandleMonthly(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	year, month, ok := parseMonth(r.URL.Query().Get("mes"))
	if !ok {
		apiutil.WriteError(w, http.StatusBadRequest, "El mes no es válido.")
		return
	}

	players, err := playerAPI.List(r.Context(), "-created_date", 0)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load players for report")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudieron cargar los datos del informe.")
		return
	}
	bookings, err := bookingAPI.List(r.Context(), "-fecha", reportWindow)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load bookings for report")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudieron cargar los datos del informe.")
		return
	}

	summary := booking.Summarize(booking.FilterMonth(bookings, year, month), year, month)

	_ = apiutil.WriteJSON(w, http.StatusOK, monthlyResponse{
		Mes:           fmt.Sprintf("%04d-%02d", year, int(month)),
		Resumen:       summary,
		IngresosTexto: metrics.FormatCurrency(summary.Revenue),
		Jugadores:     player.ComputeStats(players),
		OpcionesMes:   MonthOptions(nowFunc(), monthOptions),
	})
}

// HandleExport serves GET /api/v1/reports/export?mes=YYYY-MM. An empty month
// is a no-op answered with 204; nothing is downloaded.
func HandleExport(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	mes := r.URL.Query().Get("mes")
	year, month, ok := parseMonth(mes)
	if !ok {
		apiutil.WriteError(w, http.StatusBadRequest, "El mes no es válido.")
		return
	}
	if mes == "" {
		mes = fmt.Sprintf("%04d-%02d", year, int(month))
	}

	bookings, err := bookingAPI.List(r.Context(), "-fecha", reportWindow)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load bookings for export")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudieron cargar los datos del informe.")
		return
	}

	csv, err := booking.ExportCSV(booking.FilterMonth(bookings, year, month))
	if errors.Is(err, booking.ErrNothingToExport) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build CSV export")
		apiutil.WriteError(w, http.StatusInternalServerError, "No se pudo generar el archivo.")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", booking.ExportFilename(mes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}

// parseMonth parses a YYYY-MM value; empty means the current month.
func parseMonth(raw string) (int, time.Month, bool) {
	if raw == "" {
		now := nowFunc()
		return now.Year(), now.Month(), true
	}
	parsed, err := time.Parse(monthLayout, raw)
	if err != nil {
		return 0, 0, false
	}
	return parsed.Year(), parsed.Month(), true
}

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthOptions lists the last n months, current first, for the selector.
func MonthOptions(now time.Time, n int) []MonthOption {
	options := make([]MonthOption, 0, n)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		m := current.AddDate(0, -i, 0)
		options = append(options, MonthOption{
			Value: m.Format(monthLayout),
			Label: fmt.Sprintf("%s %d", spanishMonths[m.Month()-1], m.Year()),
		})
	}
	return options
}
