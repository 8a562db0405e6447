// internal/booking/export.go
package booking

import (
	"errors"
	"strconv"
	"strings"

	"github.com/canchalibre/canchaops/internal/entity"
)

// ErrNothingToExport signals the informational no-op: an empty collection
// produces no file, not an empty one.
var ErrNothingToExport = errors.New("no bookings to export")

var exportHeader = []string{"Fecha", "Hora", "Contacto", "Teléfono", "Jugadores", "Monto", "Estado"}

// ExportFilename names the CSV download for the selected YYYY-MM month.
func ExportFilename(mes string) string {
	return "reservas_" + mes + ".csv"
}

// ExportCSV serializes the collection to delimited text: fixed header, one
// row per booking in input order, every cell quoted with internal quotes
// doubled, missing optional values as empty cells.
func ExportCSV(bookings []entity.Booking) (string, error) {
	if len(bookings) == 0 {
		return "", ErrNothingToExport
	}

	var sb strings.Builder
	writeRow(&sb, exportHeader)
	for _, b := range bookings {
		sb.WriteByte('\n')
		writeRow(&sb, []string{
			b.Fecha,
			b.Hora,
			b.NombreContacto,
			b.TelefonoContacto,
			exportInt(b.CantidadJugadores),
			exportAmount(b.Monto),
			string(b.Estado),
		})
	}
	return sb.String(), nil
}

func writeRow(sb *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		sb.WriteByte('"')
	}
}

func exportInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func exportAmount(m float64) string {
	if m == 0 {
		return ""
	}
	return strconv.FormatFloat(m, 'f', -1, 64)
}
