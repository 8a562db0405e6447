package apiutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if dst.Name != "x" {
		t.Errorf("name = %q", dst.Name)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bogus":1}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(req, &dst); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}{"name":"y"}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(req, &dst); err == nil {
		t.Error("trailing JSON accepted")
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteJSON(w, http.StatusCreated, map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusBadGateway, "No se pudieron cargar las reservas.")
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] == "" {
		t.Error("missing error message")
	}
}

func TestWriteFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteFieldErrors(w, []FieldError{{Field: "monto", Reason: "El monto debe ser un número positivo."}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
	var resp struct {
		Errors []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "monto" {
		t.Errorf("errors = %+v", resp.Errors)
	}
}
