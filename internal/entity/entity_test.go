package entity

import (
	"encoding/json"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{"pendiente", StatusPendiente, false},
		{"confirmada", StatusConfirmada, false},
		{"cancelada", StatusCancelada, false},
		{" Confirmada ", StatusConfirmada, false},
		{"CANCELADA", StatusCancelada, false},
		{"reprogramada", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q) = %q, want error", tc.raw, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, %v, want %q", tc.raw, got, err, tc.want)
		}
	}
}

func TestStatusValidAndLabel(t *testing.T) {
	for _, s := range Statuses() {
		if !s.Valid() {
			t.Errorf("%q not valid", s)
		}
		if s.Label() == "" {
			t.Errorf("%q has no label", s)
		}
	}
	if Status("reprogramada").Valid() {
		t.Error("unknown status reported valid")
	}
}

func TestTristateJSONRoundTrip(t *testing.T) {
	cases := []struct {
		value Tristate
		json  string
	}{
		{TristateTrue, "true"},
		{TristateFalse, "false"},
		{TristateUnset, "null"},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.value)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != tc.json {
			t.Errorf("Marshal(%v) = %s, want %s", tc.value, data, tc.json)
		}

		var back Tristate
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatal(err)
		}
		if back != tc.value {
			t.Errorf("round trip of %v gave %v", tc.value, back)
		}
	}
}

func TestTristateUnmarshalRejectsOther(t *testing.T) {
	var tr Tristate
	if err := json.Unmarshal([]byte(`"yes"`), &tr); err == nil {
		t.Error("expected error for non-boolean value")
	}
}

func TestPlayerActiveDefault(t *testing.T) {
	if !(Player{}).Active() {
		t.Error("player without activo must be active")
	}
	if !(Player{Activo: TristateTrue}).Active() {
		t.Error("explicitly active player reported inactive")
	}
	if (Player{Activo: TristateFalse}).Active() {
		t.Error("explicitly inactive player reported active")
	}
}

func TestPlayerAbsentActivoSurvivesDecode(t *testing.T) {
	var p Player
	if err := json.Unmarshal([]byte(`{"id":"p1"}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Activo != TristateUnset {
		t.Errorf("activo = %v, want unset", p.Activo)
	}

	if err := json.Unmarshal([]byte(`{"id":"p2","activo":false}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Activo != TristateFalse {
		t.Errorf("activo = %v, want explicit false", p.Activo)
	}
}

func TestBookingToInputPreservesFields(t *testing.T) {
	b := Booking{
		ID:                "b1",
		Fecha:             "2026-09-15",
		Hora:              "18:00",
		CantidadJugadores: 10,
		Monto:             15000,
		NombreContacto:    "Juan",
		TelefonoContacto:  "+5491155550001",
		Estado:            StatusConfirmada,
		Observaciones:     "llega tarde",
	}
	in := BookingToInput(b)
	if in.Fecha != b.Fecha || in.Hora != b.Hora || in.Monto != b.Monto ||
		in.CantidadJugadores != b.CantidadJugadores || in.NombreContacto != b.NombreContacto ||
		in.TelefonoContacto != b.TelefonoContacto || in.Estado != b.Estado ||
		in.Observaciones != b.Observaciones {
		t.Errorf("BookingToInput dropped fields: %+v", in)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"+5491155551234", "+5491155551234"},
		{"no es un teléfono", "no es un teléfono"},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.raw); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
