package player

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/canchalibre/canchaops/internal/entity"
)

func TestComputeStats(t *testing.T) {
	players := []entity.Player{
		{Activo: entity.TristateTrue, Telefono: "+5491155550001"},
		{Activo: entity.TristateFalse},
		{}, // activo never set counts as active
		{Activo: entity.TristateTrue},
	}
	got := ComputeStats(players)
	want := Stats{Total: 4, Active: 3, Inactive: 1, WithPhone: 1}
	if got != want {
		t.Errorf("ComputeStats = %+v, want %+v", got, want)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	if got := ComputeStats(nil); got != (Stats{}) {
		t.Errorf("ComputeStats(nil) = %+v, want zeroes", got)
	}
}

func TestComputeStatsUnsetActivoFromJSON(t *testing.T) {
	// A record that arrives without the activo field at all is active.
	var p entity.Player
	if err := json.Unmarshal([]byte(`{"id":"p1","dni":"123","nombre":"Ana","apellido":"Juárez"}`), &p); err != nil {
		t.Fatal(err)
	}
	stats := ComputeStats([]entity.Player{p})
	if stats.Active != 1 || stats.Inactive != 0 {
		t.Errorf("stats = %+v, want active", stats)
	}
}

func TestNewThisMonth(t *testing.T) {
	now := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	players := []entity.Player{
		{CreatedDate: time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)},
		{CreatedDate: time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC)},
		{CreatedDate: time.Date(2025, time.September, 5, 8, 0, 0, 0, time.UTC)},
		{}, // zero created_date skipped
	}
	if got := NewThisMonth(players, now); got != 1 {
		t.Errorf("NewThisMonth = %d, want 1", got)
	}
}

func TestSearch(t *testing.T) {
	players := []entity.Player{
		{ID: "1", Nombre: "Ana", Apellido: "Juárez", DNI: "30111222"},
		{ID: "2", Nombre: "Carlos", Apellido: "Díaz", DNI: "28999888"},
	}

	cases := []struct {
		term string
		want []string
	}{
		{"", []string{"1", "2"}},
		{"  ", []string{"1", "2"}},
		{"ANA", []string{"1"}},
		{"díaz", []string{"2"}},
		{"30111", []string{"1"}},
		{"nadie", nil},
	}
	for _, tc := range cases {
		got := Search(players, tc.term)
		if len(got) != len(tc.want) {
			t.Errorf("Search(%q) returned %d results, want %d", tc.term, len(got), len(tc.want))
			continue
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Errorf("Search(%q)[%d] = %s, want %s", tc.term, i, got[i].ID, id)
			}
		}
	}
}
