// internal/entity/entity.go
package entity

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Status is the closed set of booking states. Anything else is rejected at
// the boundary by ParseStatus.
type Status string

const (
	StatusPendiente  Status = "pendiente"
	StatusConfirmada Status = "confirmada"
	StatusCancelada  Status = "cancelada"
)

// DefaultStatus is assigned to bookings created without an explicit state.
const DefaultStatus = StatusPendiente

// Statuses lists every valid booking state in display order.
func Statuses() []Status {
	return []Status{StatusPendiente, StatusConfirmada, StatusCancelada}
}

func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPendiente:
		return StatusPendiente, nil
	case StatusConfirmada:
		return StatusConfirmada, nil
	case StatusCancelada:
		return StatusCancelada, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPendiente, StatusConfirmada, StatusCancelada:
		return true
	default:
		return false
	}
}

// Label returns the Spanish display name for the status.
func (s Status) Label() string {
	switch s {
	case StatusPendiente:
		return "Pendiente"
	case StatusConfirmada:
		return "Confirmada"
	case StatusCancelada:
		return "Cancelada"
	default:
		return ""
	}
}

// Player is a registered player record as served by the entity API.
type Player struct {
	ID          string    `json:"id"`
	DNI         string    `json:"dni"`
	Nombre      string    `json:"nombre"`
	Apellido    string    `json:"apellido"`
	Telefono    string    `json:"telefono,omitempty"`
	Direccion   string    `json:"direccion,omitempty"`
	Activo      Tristate  `json:"activo,omitempty"`
	CreatedDate time.Time `json:"created_date"`
}

// Active reports whether the player counts as active. A record without an
// explicit activo field is active.
func (p Player) Active() bool {
	return p.Activo != TristateFalse
}

func (p Player) HasPhone() bool {
	return strings.TrimSpace(p.Telefono) != ""
}

// Booking is a court reservation record. Fecha is a YYYY-MM-DD calendar date
// and Hora one of the fixed slots from booking.TimeSlots.
type Booking struct {
	ID                string    `json:"id"`
	Fecha             string    `json:"fecha"`
	Hora              string    `json:"hora"`
	CantidadJugadores int       `json:"cantidad_jugadores"`
	Monto             float64   `json:"monto"`
	NombreContacto    string    `json:"nombre_contacto"`
	TelefonoContacto  string    `json:"telefono_contacto,omitempty"`
	Estado            Status    `json:"estado"`
	Observaciones     string    `json:"observaciones,omitempty"`
	CreatedDate       time.Time `json:"created_date"`
}

// PlayerInput carries the mutable fields of a player through create/update.
type PlayerInput struct {
	DNI       string   `json:"dni"`
	Nombre    string   `json:"nombre"`
	Apellido  string   `json:"apellido"`
	Telefono  string   `json:"telefono,omitempty"`
	Direccion string   `json:"direccion,omitempty"`
	Activo    Tristate `json:"activo,omitempty"`
}

// BookingInput carries the mutable fields of a booking through create/update.
type BookingInput struct {
	Fecha             string  `json:"fecha"`
	Hora              string  `json:"hora"`
	CantidadJugadores int     `json:"cantidad_jugadores"`
	Monto             float64 `json:"monto"`
	NombreContacto    string  `json:"nombre_contacto"`
	TelefonoContacto  string  `json:"telefono_contacto,omitempty"`
	Estado            Status  `json:"estado,omitempty"`
	Observaciones     string  `json:"observaciones,omitempty"`
}

// BookingToInput rebuilds an input from an existing record, used by the quick
// status-change action which must not touch any other field.
func BookingToInput(b Booking) BookingInput {
	return BookingInput{
		Fecha:             b.Fecha,
		Hora:              b.Hora,
		CantidadJugadores: b.CantidadJugadores,
		Monto:             b.Monto,
		NombreContacto:    b.NombreContacto,
		TelefonoContacto:  b.TelefonoContacto,
		Estado:            b.Estado,
		Observaciones:     b.Observaciones,
	}
}

// PlayerToInput rebuilds an input from an existing record for the
// status-toggle action.
func PlayerToInput(p Player) PlayerInput {
	activo := TristateTrue
	if !p.Active() {
		activo = TristateFalse
	}
	return PlayerInput{
		DNI:       p.DNI,
		Nombre:    p.Nombre,
		Apellido:  p.Apellido,
		Telefono:  p.Telefono,
		Direccion: p.Direccion,
		Activo:    activo,
	}
}

// PlayerAPI is the entity-accessor contract for players. List returns records
// ordered by sort (field name, "-" prefix for descending) truncated to limit;
// limit <= 0 means unbounded. Create and Update either fully succeed or
// return an error with no partial mutation.
type PlayerAPI interface {
	List(ctx context.Context, sort string, limit int) ([]Player, error)
	Create(ctx context.Context, in PlayerInput) (Player, error)
	Update(ctx context.Context, id string, in PlayerInput) (Player, error)
}

// BookingAPI is the entity-accessor contract for bookings.
type BookingAPI interface {
	List(ctx context.Context, sort string, limit int) ([]Booking, error)
	Create(ctx context.Context, in BookingInput) (Booking, error)
	Update(ctx context.Context, id string, in BookingInput) (Booking, error)
}
