// internal/player/form.go
package player

import (
	"context"
	"strings"

	"github.com/canchalibre/canchaops/internal/api/apiutil"
	"github.com/canchalibre/canchaops/internal/entity"
)

// ValidateInput checks a player form synchronously. dni, nombre, and
// apellido must be non-blank after trimming; everything else is optional.
func ValidateInput(in entity.PlayerInput) []apiutil.FieldError {
	var errs []apiutil.FieldError

	if strings.TrimSpace(in.DNI) == "" {
		errs = append(errs, apiutil.FieldError{Field: "dni", Reason: "El DNI es requerido."})
	}
	if strings.TrimSpace(in.Nombre) == "" {
		errs = append(errs, apiutil.FieldError{Field: "nombre", Reason: "El nombre es requerido."})
	}
	if strings.TrimSpace(in.Apellido) == "" {
		errs = append(errs, apiutil.FieldError{Field: "apellido", Reason: "El apellido es requerido."})
	}

	return errs
}

// SubmitPlayer runs the form lifecycle: validate, normalize, then create
// (empty id) or update. Field errors mean the accessor was never invoked.
// Activo defaults to true when the form leaves it unset.
func SubmitPlayer(ctx context.Context, api entity.PlayerAPI, id string, in entity.PlayerInput) (entity.Player, []apiutil.FieldError, error) {
	if errs := ValidateInput(in); len(errs) > 0 {
		return entity.Player{}, errs, nil
	}

	in.DNI = strings.TrimSpace(in.DNI)
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.Telefono = entity.NormalizePhone(in.Telefono)
	if in.Activo == entity.TristateUnset {
		in.Activo = entity.TristateTrue
	}

	var (
		saved entity.Player
		err   error
	)
	if id == "" {
		saved, err = api.Create(ctx, in)
	} else {
		saved, err = api.Update(ctx, id, in)
	}
	if err != nil {
		return entity.Player{}, nil, err
	}
	return saved, nil, nil
}

// ToggleInput flips a player's activo flag without going through the form.
func ToggleInput(p entity.Player) entity.PlayerInput {
	in := entity.PlayerToInput(p)
	if p.Active() {
		in.Activo = entity.TristateFalse
	} else {
		in.Activo = entity.TristateTrue
	}
	return in
}
