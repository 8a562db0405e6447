package players

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canchalibre/canchaops/internal/entity"
)

type fakePlayerAPI struct {
	players []entity.Player
	listErr error
	saveErr error
	lastIn  entity.PlayerInput
}

func (f *fakePlayerAPI) List(ctx context.Context, sort string, limit int) ([]entity.Player, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.players, nil
}

func (f *fakePlayerAPI) Create(ctx context.Context, in entity.PlayerInput) (entity.Player, error) {
	if f.saveErr != nil {
		return entity.Player{}, f.saveErr
	}
	f.lastIn = in
	return entity.Player{ID: "new", DNI: in.DNI, Activo: in.Activo}, nil
}

func (f *fakePlayerAPI) Update(ctx context.Context, id string, in entity.PlayerInput) (entity.Player, error) {
	if f.saveErr != nil {
		return entity.Player{}, f.saveErr
	}
	f.lastIn = in
	return entity.Player{ID: id, DNI: in.DNI, Activo: in.Activo}, nil
}

func TestHandleList(t *testing.T) {
	InitHandlers(&fakePlayerAPI{players: []entity.Player{
		{ID: "1", DNI: "30111222", Nombre: "Ana", Apellido: "Juárez", Telefono: "+5491155550001"},
		{ID: "2", DNI: "28999888", Nombre: "Carlos", Apellido: "Díaz", Activo: entity.TristateFalse},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players?q=ana", nil)
	w := httptest.NewRecorder()
	HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Jugadores    []entity.Player `json:"jugadores"`
		Total        int             `json:"total"`
		Filtrados    int             `json:"filtrados"`
		Estadisticas struct {
			Total  int `json:"total"`
			Active int `json:"activos"`
		} `json:"estadisticas"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || resp.Filtrados != 1 {
		t.Errorf("total/filtrados = %d/%d, want 2/1", resp.Total, resp.Filtrados)
	}
	if len(resp.Jugadores) != 1 || resp.Jugadores[0].ID != "1" {
		t.Errorf("jugadores = %+v", resp.Jugadores)
	}
	// Stats cover the whole directory, not the filtered view.
	if resp.Estadisticas.Total != 2 || resp.Estadisticas.Active != 1 {
		t.Errorf("estadisticas = %+v", resp.Estadisticas)
	}
}

func TestHandleListLoadError(t *testing.T) {
	InitHandlers(&fakePlayerAPI{listErr: errors.New("entity api down")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players", nil)
	w := httptest.NewRecorder()
	HandleList(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestHandleCreate(t *testing.T) {
	api := &fakePlayerAPI{}
	InitHandlers(api)

	body := `{"dni":"30111222","nombre":"Ana","apellido":"Juárez"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(body))
	w := httptest.NewRecorder()
	HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if api.lastIn.Activo != entity.TristateTrue {
		t.Errorf("activo = %v, want defaulted to true", api.lastIn.Activo)
	}
}

func TestHandleCreateValidation(t *testing.T) {
	InitHandlers(&fakePlayerAPI{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players", strings.NewReader(`{"dni":"","nombre":"","apellido":""}`))
	w := httptest.NewRecorder()
	HandleCreate(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) != 3 {
		t.Errorf("errors = %+v, want dni/nombre/apellido", resp.Errors)
	}
}

func TestHandleUpdate(t *testing.T) {
	api := &fakePlayerAPI{}
	InitHandlers(api)

	body := `{"dni":"30111222","nombre":"Ana","apellido":"Juárez","activo":false}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/players/p1", strings.NewReader(body))
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	HandleUpdate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if api.lastIn.Activo != entity.TristateFalse {
		t.Errorf("activo = %v, want explicit false preserved", api.lastIn.Activo)
	}
}

func TestHandleToggle(t *testing.T) {
	api := &fakePlayerAPI{players: []entity.Player{
		{ID: "p1", DNI: "1", Nombre: "Ana", Apellido: "J"},
	}}
	InitHandlers(api)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/players/p1/estado", nil)
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	HandleToggle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	// Player had no explicit activo, so it counted as active and toggles off.
	if api.lastIn.Activo != entity.TristateFalse {
		t.Errorf("activo = %v, want false", api.lastIn.Activo)
	}
}

func TestHandleToggleNotFound(t *testing.T) {
	InitHandlers(&fakePlayerAPI{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/players/missing/estado", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	HandleToggle(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
