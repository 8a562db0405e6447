// internal/player/player.go

// Package player holds the pure player-side engines: activity stats with the
// active-by-default convention, list search, and form validation.
package player

import (
	"strings"
	"time"

	"github.com/canchalibre/canchaops/internal/entity"
)

// Stats summarizes player activity. Active counts every player without an
// explicit activo=false; only an explicit false is inactive.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"activos"`
	Inactive  int `json:"inactivos"`
	WithPhone int `json:"con_telefono"`
}

// ComputeStats folds the collection into activity counters. Empty input
// yields zeroes.
func ComputeStats(players []entity.Player) Stats {
	stats := Stats{Total: len(players)}
	for _, p := range players {
		if p.Active() {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if p.HasPhone() {
			stats.WithPhone++
		}
	}
	return stats
}

// NewThisMonth counts players whose created_date falls in the month of now.
func NewThisMonth(players []entity.Player, now time.Time) int {
	count := 0
	for _, p := range players {
		if p.CreatedDate.IsZero() {
			continue
		}
		if p.CreatedDate.Year() == now.Year() && p.CreatedDate.Month() == now.Month() {
			count++
		}
	}
	return count
}

// Search returns the players whose nombre, apellido, or dni contains the
// term, case-insensitive, preserving input order. An empty term is identity.
func Search(players []entity.Player, term string) []entity.Player {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return players
	}
	matched := make([]entity.Player, 0, len(players))
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Nombre), term) ||
			strings.Contains(strings.ToLower(p.Apellido), term) ||
			strings.Contains(strings.ToLower(p.DNI), term) {
			matched = append(matched, p)
		}
	}
	return matched
}
