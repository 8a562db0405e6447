// internal/entity/tristate.go
package entity

import (
	"bytes"
	"fmt"
)

// Tristate is a boolean that distinguishes "not set" from an explicit value.
// The entity API omits activo on older player records; those must count as
// active, so the absence has to survive decoding instead of collapsing to
// false.
type Tristate int

const (
	TristateUnset Tristate = iota
	TristateTrue
	TristateFalse
)

// Bool collapses the tristate at the boundary: unset means true.
func (t Tristate) Bool() bool {
	return t != TristateFalse
}

// FromBool returns the explicit tristate for b.
func FromBool(b bool) Tristate {
	if b {
		return TristateTrue
	}
	return TristateFalse
}

func (t Tristate) MarshalJSON() ([]byte, error) {
	switch t {
	case TristateTrue:
		return []byte("true"), nil
	case TristateFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (t *Tristate) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		*t = TristateTrue
	case bytes.Equal(data, []byte("false")):
		*t = TristateFalse
	case bytes.Equal(data, []byte("null")):
		*t = TristateUnset
	default:
		return fmt.Errorf("invalid tristate value %q", data)
	}
	return nil
}

func (t Tristate) String() string {
	switch t {
	case TristateTrue:
		return "true"
	case TristateFalse:
		return "false"
	default:
		return "unset"
	}
}
