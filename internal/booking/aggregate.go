// internal/booking/aggregate.go
package booking

import (
	"math"
	"sort"
	"time"

	"github.com/canchalibre/canchaops/internal/entity"
)

const dateLayout = "2006-01-02"

// StatusCounts tracks bookings per known status. Records with an unknown or
// missing status are not counted anywhere.
type StatusCounts struct {
	Pendiente  int `json:"pendiente"`
	Confirmada int `json:"confirmada"`
	Cancelada  int `json:"cancelada"`
}

// DayPoint is one calendar day of the per-day series.
type DayPoint struct {
	Day      int     `json:"dia"`
	Revenue  float64 `json:"ingresos"`
	Bookings int     `json:"reservas"`
}

// HourPoint is one slot of the per-hour distribution, labeled "HH:00".
type HourPoint struct {
	Hora     string `json:"hora"`
	Bookings int    `json:"reservas"`
}

// Summary holds every aggregate the reports page derives from one month of
// bookings.
type Summary struct {
	Total             int          `json:"total_reservas"`
	Revenue           float64      `json:"ingresos"`
	ByStatus          StatusCounts `json:"por_estado"`
	Daily             []DayPoint   `json:"serie_diaria"`
	Hourly            []HourPoint  `json:"serie_horaria"`
	AveragePerBooking int          `json:"promedio_por_reserva"`
	ConfirmationRate  int          `json:"tasa_confirmacion"`
}

// Summarize aggregates bookings for the given month. Callers pass the
// collection already restricted to that month (see InMonth); bookings whose
// fecha falls outside the month are silently dropped from the day series.
// An empty collection yields zeroed counters and a full-length zero-filled
// day series.
func Summarize(bookings []entity.Booking, year int, month time.Month) Summary {
	counts := CountByStatus(bookings)
	revenue := SumRevenue(bookings)

	return Summary{
		Total:             len(bookings),
		Revenue:           revenue,
		ByStatus:          counts,
		Daily:             DaySeries(bookings, year, month),
		Hourly:            HourSeries(bookings),
		AveragePerBooking: roundedAverage(revenue, len(bookings)),
		ConfirmationRate:  roundedRate(counts.Confirmada, len(bookings)),
	}
}

// SumRevenue totals monto across the collection; a missing monto counts as 0.
func SumRevenue(bookings []entity.Booking) float64 {
	var sum float64
	for _, b := range bookings {
		sum += b.Monto
	}
	return sum
}

// CountByStatus counts bookings per known status. Unknown statuses are
// ignored, never an error.
func CountByStatus(bookings []entity.Booking) StatusCounts {
	var counts StatusCounts
	for _, b := range bookings {
		switch b.Estado {
		case entity.StatusPendiente:
			counts.Pendiente++
		case entity.StatusConfirmada:
			counts.Confirmada++
		case entity.StatusCancelada:
			counts.Cancelada++
		}
	}
	return counts
}

// DaySeries builds one entry per calendar day of the month, zero-seeded so
// charts always render the complete month, then folds in bookings by exact
// date match.
func DaySeries(bookings []entity.Booking, year int, month time.Month) []DayPoint {
	days := daysInMonth(year, month)
	series := make([]DayPoint, days)
	for i := range series {
		series[i].Day = i + 1
	}

	for _, b := range bookings {
		date, err := time.Parse(dateLayout, b.Fecha)
		if err != nil || date.Year() != year || date.Month() != month {
			continue
		}
		point := &series[date.Day()-1]
		point.Revenue += b.Monto
		point.Bookings++
	}
	return series
}

// HourSeries groups bookings by the hour component of hora and returns the
// buckets sorted by label. Hour strings are zero-padded two-digit, so the
// lexicographic order is chronological.
func HourSeries(bookings []entity.Booking) []HourPoint {
	counts := map[string]int{}
	for _, b := range bookings {
		if len(b.Hora) < 2 {
			continue
		}
		counts[b.Hora[:2]]++
	}

	series := make([]HourPoint, 0, len(counts))
	for hour, n := range counts {
		series = append(series, HourPoint{Hora: hour + ":00", Bookings: n})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Hora < series[j].Hora
	})
	return series
}

// InMonth reports whether fecha is a valid date inside the given month.
func InMonth(fecha string, year int, month time.Month) bool {
	date, err := time.Parse(dateLayout, fecha)
	if err != nil {
		return false
	}
	return date.Year() == year && date.Month() == month
}

// FilterMonth returns the bookings whose fecha falls inside the given month,
// preserving input order.
func FilterMonth(bookings []entity.Booking, year int, month time.Month) []entity.Booking {
	filtered := make([]entity.Booking, 0, len(bookings))
	for _, b := range bookings {
		if InMonth(b.Fecha, year, month) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func roundedAverage(sum float64, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(sum / float64(count)))
}

func roundedRate(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
