// internal/booking/form.go
package booking

import (
	"context"
	"math"
	"strings"

	"github.com/canchalibre/canchaops/internal/api/apiutil"
	"github.com/canchalibre/canchaops/internal/entity"
)

// TimeSlots is the fixed slot enumeration offered by the booking form.
// Zero-padded HH:MM; the hour-bucketing in HourSeries depends on that format.
var TimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
	"18:00", "19:00", "20:00", "21:00", "22:00",
}

// MaxJugadores caps cantidad_jugadores (two full soccer sides).
const MaxJugadores = 22

// ValidTimeSlot reports whether hora is one of the fixed slots.
func ValidTimeSlot(hora string) bool {
	for _, slot := range TimeSlots {
		if hora == slot {
			return true
		}
	}
	return false
}

// ValidateInput checks a booking form synchronously. A non-empty result
// keeps the form in editing state; the accessor must not be called.
func ValidateInput(in entity.BookingInput) []apiutil.FieldError {
	var errs []apiutil.FieldError

	if strings.TrimSpace(in.Fecha) == "" {
		errs = append(errs, apiutil.FieldError{Field: "fecha", Reason: "La fecha es requerida."})
	}
	if strings.TrimSpace(in.Hora) == "" {
		errs = append(errs, apiutil.FieldError{Field: "hora", Reason: "La hora es requerida."})
	} else if !ValidTimeSlot(in.Hora) {
		errs = append(errs, apiutil.FieldError{Field: "hora", Reason: "El horario no es válido."})
	}
	if in.Monto <= 0 || math.IsNaN(in.Monto) || math.IsInf(in.Monto, 0) {
		errs = append(errs, apiutil.FieldError{Field: "monto", Reason: "El monto debe ser un número positivo."})
	}
	if in.CantidadJugadores <= 0 {
		errs = append(errs, apiutil.FieldError{Field: "cantidad_jugadores", Reason: "La cantidad de jugadores debe ser un número positivo."})
	} else if in.CantidadJugadores > MaxJugadores {
		errs = append(errs, apiutil.FieldError{Field: "cantidad_jugadores", Reason: "La cantidad de jugadores no puede superar 22."})
	}
	if strings.TrimSpace(in.NombreContacto) == "" {
		errs = append(errs, apiutil.FieldError{Field: "nombre_contacto", Reason: "El nombre de contacto es requerido."})
	}
	if in.Estado != "" && !in.Estado.Valid() {
		errs = append(errs, apiutil.FieldError{Field: "estado", Reason: "El estado no es válido."})
	}

	return errs
}

// SubmitBooking runs the form lifecycle: validate, then create (empty id) or
// update through the accessor. Field errors mean the accessor was never
// invoked and the form stays open; an accessor error also leaves the form
// open with its values intact, nothing partially committed.
func SubmitBooking(ctx context.Context, api entity.BookingAPI, id string, in entity.BookingInput) (entity.Booking, []apiutil.FieldError, error) {
	if errs := ValidateInput(in); len(errs) > 0 {
		return entity.Booking{}, errs, nil
	}

	in.NombreContacto = strings.TrimSpace(in.NombreContacto)
	in.TelefonoContacto = entity.NormalizePhone(in.TelefonoContacto)
	if in.Estado == "" {
		in.Estado = entity.DefaultStatus
	}

	var (
		saved entity.Booking
		err   error
	)
	if id == "" {
		saved, err = api.Create(ctx, in)
	} else {
		saved, err = api.Update(ctx, id, in)
	}
	if err != nil {
		return entity.Booking{}, nil, err
	}
	return saved, nil, nil
}
