// internal/booking/filter.go

// Package booking holds the pure engines behind the booking views: filter
// predicates, monthly aggregation, CSV export, and form validation. Nothing
// here touches the network or mutates its inputs.
package booking

import (
	"strings"
	"time"

	"github.com/canchalibre/canchaops/internal/entity"
)

// FilterEstadoAll disables the status predicate.
const FilterEstadoAll = "all"

// FilterState is the active filter set for the bookings list. Fecha (exact
// date) and Mes (YYYY-MM) are mutually exclusive; use SetFecha/SetMes to keep
// that invariant. When both end up set anyway, Fecha wins.
type FilterState struct {
	Estado string `json:"estado"`
	Fecha  string `json:"fecha"`
	Mes    string `json:"mes"`
}

// DefaultFilters mirrors the initial page state: all statuses, current month.
func DefaultFilters(now time.Time) FilterState {
	return FilterState{
		Estado: FilterEstadoAll,
		Mes:    now.Format("2006-01"),
	}
}

// SetFecha sets the exact-date filter, clearing the month filter.
func (f *FilterState) SetFecha(fecha string) {
	f.Fecha = fecha
	if fecha != "" {
		f.Mes = ""
	}
}

// SetMes sets the month filter, clearing the exact-date filter.
func (f *FilterState) SetMes(mes string) {
	f.Mes = mes
	if mes != "" {
		f.Fecha = ""
	}
}

// Filter returns the ordered subsequence of bookings matching every active
// predicate in f plus the free-text search term. It is pure: same inputs,
// same output, input order preserved.
func Filter(bookings []entity.Booking, f FilterState, searchTerm string) []entity.Booking {
	filtered := make([]entity.Booking, 0, len(bookings))
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	for _, b := range bookings {
		if term != "" && !matchesSearch(b, term) {
			continue
		}
		if f.Estado != "" && f.Estado != FilterEstadoAll && string(b.Estado) != f.Estado {
			continue
		}
		if f.Fecha != "" {
			if b.Fecha != f.Fecha {
				continue
			}
		} else if f.Mes != "" {
			if !strings.HasPrefix(b.Fecha, f.Mes) {
				continue
			}
		}
		filtered = append(filtered, b)
	}
	return filtered
}

func matchesSearch(b entity.Booking, term string) bool {
	if strings.Contains(strings.ToLower(b.NombreContacto), term) {
		return true
	}
	return b.TelefonoContacto != "" && strings.Contains(strings.ToLower(b.TelefonoContacto), term)
}
