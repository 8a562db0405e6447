// internal/api/players/handlers.go

// Package players serves the player directory: list with search, the
// create/edit form, and the active-flag toggle.
package players

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/canchalibre/canchaops/internal/api/apiutil"
	"github.com/canchalibre/canchaops/internal/entity"
	"github.com/canchalibre/canchaops/internal/player"
)

var playerAPI entity.PlayerAPI

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(api entity.PlayerAPI) {
	playerAPI = api
}

type listResponse struct {
	Jugadores    []entity.Player `json:"jugadores"`
	Total        int             `json:"total"`
	Filtrados    int             `json:"filtrados"`
	Estadisticas player.Stats    `json:"estadisticas"`
}

// HandleList serves GET /api/v1/players. The q param searches nombre,
// apellido, and dni; the stats always cover the whole directory.
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	all, err := playerAPI.List(r.Context(), "-created_date", 0)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load players")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudieron cargar los jugadores.")
		return
	}

	filtered := player.Search(all, r.URL.Query().Get("q"))

	_ = apiutil.WriteJSON(w, http.StatusOK, listResponse{
		Jugadores:    filtered,
		Total:        len(all),
		Filtrados:    len(filtered),
		Estadisticas: player.ComputeStats(all),
	})
}

// HandleCreate serves POST /api/v1/players.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	submit(w, r, "")
}

// HandleUpdate serves PUT /api/v1/players/{id}.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	submit(w, r, r.PathValue("id"))
}

func submit(w http.ResponseWriter, r *http.Request, id string) {
	logger := log.Ctx(r.Context())

	var in entity.PlayerInput
	if err := apiutil.DecodeJSON(r, &in); err != nil {
		logger.Warn().Err(err).Msg("Invalid player payload")
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, fieldErrs, err := player.SubmitPlayer(r.Context(), playerAPI, id, in)
	if len(fieldErrs) > 0 {
		apiutil.WriteFieldErrors(w, fieldErrs)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("player_id", id).Msg("Failed to save player")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudo guardar el jugador.")
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	_ = apiutil.WriteJSON(w, status, saved)
}

// HandleToggle serves PATCH /api/v1/players/{id}/estado, flipping the activo
// flag and leaving every other field untouched.
func HandleToggle(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	id := r.PathValue("id")

	current, err := findPlayer(r, id)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load players")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudieron cargar los jugadores.")
		return
	}
	if current == nil {
		apiutil.WriteError(w, http.StatusNotFound, "Jugador no encontrado.")
		return
	}

	updated, err := playerAPI.Update(r.Context(), id, player.ToggleInput(*current))
	if err != nil {
		logger.Error().Err(err).Str("player_id", id).Msg("Failed to toggle player status")
		apiutil.WriteError(w, http.StatusBadGateway, "No se pudo guardar el jugador.")
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, updated)
}

func findPlayer(r *http.Request, id string) (*entity.Player, error) {
	all, err := playerAPI.List(r.Context(), "-created_date", 0)
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
