// internal/api/bookings/handlers.go

// Package bookings serves the bookings list and its forms. Filtering happens
// in memory over the accessor's window; see internal/booking for the engines.
package bookings

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/canchalibre/canchaops/internal/api/apiutil"
	"github.com/canchalibre/canchaops/internal/booking"
	"github.com/canchalibre/canchaops/internal/entity"
)

// listLimit caps how many bookings the list view pulls from the accessor,
// newest first.
const listLimit = 100

var bookingAPI entity.BookingAPI

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(api entity.BookingAPI) {
	bookingAPI = api
}

type listResponse struct {
	Reservas  []entity.Booking    `json:"reservas"`
	Total     int                 `json:"total"`
	Filtrados int                 `json:"filtrados"`
	Filtros   booking.FilterState `json:"filtros"`
}

// HandleList serves GET /api/v1/bookings. Query params estado, fecha, mes,
// and q narrow the list; fecha and mes are mutually exclusive, fecha winning.
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	all, err := bookingAPI.List(r.Context(), "-fecha", listLimit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load bookings")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudieron cargar las reservas.")
		return
	}

	q := r.URL.Query()
	filters := booking.DefaultFilters(time.Now())
	if estado := q.Get("estado"); estado != "" {
		filters.Estado = estado
	}
	if mes := q.Get("mes"); mes != "" {
		filters.SetMes(mes)
	}
	if fecha := q.Get("fecha"); fecha != "" {
		filters.SetFecha(fecha)
	}

	filtered := booking.Filter(all, filters, q.Get("q"))

	_ = apiutil.WriteJSON(w, http.StatusOK, listResponse{
		Reservas:  filtered,
		Total:     len(all),
		Filtrados: len(filtered),
		Filtros:   filters,
	})
}

// HandleCreate serves POST /api/v1/bookings.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	submit(w, r, "")
}

// HandleUpdate serves PUT /api/v1/bookings/{id}.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	submit(w, r, r.PathValue("id"))
}

func submit(w http.ResponseWriter, r *http.Request, id string) {
	logger := log.Ctx(r.Context())

	var in entity.BookingInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		logger.Warn().Err(err).Msg("Invalid booking payload")
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, fieldErrs, err := booking.SubmitBooking(r.Context(), bookingAPI, id, in)
	if len(fieldErrs) > 0 {
		apiutil.WriteFieldErrors(w, fieldErrs)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("booking_id", id).Msg("Failed to save booking")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudo guardar la reserva.")
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	_ = apiutil.WriteJSON(w, status, saved)
}

// HandleStatusChange serves PATCH /api/v1/bookings/{id}/estado, the quick
// action on list rows. Only estado changes; every other field is carried over.
func HandleStatusChange(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	id := r.PathValue("id")

	var payload struct {
		Estado string `json:"estado"`
	}
	if err := apiutil.DecodeJSON(r, &payload); err != nil {
		logger.Warn().Err(err).Msg("Invalid status payload")
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	estado, err := entity.ParseStatus(payload.Estado)
	if err != nil {
		apiutil.WriteFieldErrors(w, []apiutil.FieldError{
			{Field: "estado", Reason: "El estado no es válido."},
		})
		return
	}

	current, err := findBooking(r, id)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load bookings")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudieron cargar las reservas.")
		return
	}
	if current == nil {
		apiutil.WriteError(w, http.StatusNotFound, "Reserva no encontrada.")
		return
	}

	in := entity.BookingToInput(*current)
	in.Estado = estado
	updated, err := bookingAPI.Update(r.Context(), id, in)
	if err != nil {
		logger.Error().Err(err).Str("booking_id", id).Msg("Failed to change booking status")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudo guardar la reserva.")
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, updated)
}

func findBooking(r *http.Request, id string) (*entity.Booking, error) {
	all, err := bookingAPI.List(r.Context(), "-fecha", 0)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

// HandleTimeSlots serves GET /api/v1/bookings/slots, the fixed hour options
// offered by the form.
func HandleTimeSlots(w http.ResponseWriter, r *http.Request) {
	_ = apiutil.WriteJSON(w, http.StatusOK, map[string]any{"horarios": booking.TimeSlots})
}
