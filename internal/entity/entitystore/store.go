// internal/entity/entitystore/store.go

// Package entitystore is a SQLite-backed implementation of the entity
// accessor contract, used for standalone deployments and tests. Remote
// deployments use entity.Client instead; handlers only ever see the
// PlayerAPI/BookingAPI interfaces.
package entitystore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/canchalibre/canchaops/internal/entity"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned by Update when the record does not exist.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at filename, ensures
// foreign keys are enabled in the DSN, and applies embedded migrations.
func Open(filename string) (*Store, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", ensureForeignKeysEnabledDSN(filename))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Players returns the player accessor backed by this store.
func (s *Store) Players() entity.PlayerAPI {
	return playerStore{s.db}
}

// Bookings returns the booking accessor backed by this store.
func (s *Store) Bookings() entity.BookingAPI {
	return bookingStore{s.db}
}

func ensureForeignKeysEnabledDSN(dataSourceName string) string {
	if strings.Contains(dataSourceName, "_fk=") {
		return dataSourceName
	}
	if strings.Contains(dataSourceName, "?") {
		return dataSourceName + "&_fk=1"
	}
	return dataSourceName + "?_fk=1"
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs", source,
		"sqlite3", driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// orderClause maps a sort spec (field name, "-" prefix for descending) to an
// ORDER BY clause over whitelisted columns only.
func orderClause(sort string, allowed map[string]bool) (string, error) {
	if sort == "" {
		return "ORDER BY created_date", nil
	}
	direction := "ASC"
	field := sort
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		field = sort[1:]
	}
	if !allowed[field] {
		return "", fmt.Errorf("unsupported sort field %q", field)
	}
	return fmt.Sprintf("ORDER BY %s %s", field, direction), nil
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

var playerSortColumns = map[string]bool{
	"created_date": true,
	"dni":          true,
	"nombre":       true,
	"apellido":     true,
}

type playerStore struct{ db *sql.DB }

const playerColumns = "id, dni, nombre, apellido, telefono, direccion, activo, created_date"

func (s playerStore) List(ctx context.Context, sort string, limit int) ([]entity.Player, error) {
	order, err := orderClause(sort, playerSortColumns)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + playerColumns + " FROM players " + order + limitClause(limit)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []entity.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s playerStore) Create(ctx context.Context, in entity.PlayerInput) (entity.Player, error) {
	id := uuid.NewString()
	created := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (id, dni, nombre, apellido, telefono, direccion, activo, created_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, in.DNI, in.Nombre, in.Apellido, in.Telefono, in.Direccion,
		boolToInt(in.Activo.Bool()), created.Format(time.RFC3339),
	)
	if err != nil {
		return entity.Player{}, fmt.Errorf("create player: %w", err)
	}
	return s.get(ctx, id)
}

func (s playerStore) Update(ctx context.Context, id string, in entity.PlayerInput) (entity.Player, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE players SET dni = ?, nombre = ?, apellido = ?, telefono = ?, direccion = ?, activo = ? WHERE id = ?",
		in.DNI, in.Nombre, in.Apellido, in.Telefono, in.Direccion,
		boolToInt(in.Activo.Bool()), id,
	)
	if err != nil {
		return entity.Player{}, fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return entity.Player{}, fmt.Errorf("update player: %w", err)
	}
	if affected == 0 {
		return entity.Player{}, ErrNotFound
	}
	return s.get(ctx, id)
}

func (s playerStore) get(ctx context.Context, id string) (entity.Player, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = ?", id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Player{}, ErrNotFound
	}
	return p, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (entity.Player, error) {
	var (
		p       entity.Player
		activo  int
		created string
	)
	if err := row.Scan(&p.ID, &p.DNI, &p.Nombre, &p.Apellido, &p.Telefono, &p.Direccion, &activo, &created); err != nil {
		return entity.Player{}, err
	}
	p.Activo = entity.FromBool(activo != 0)
	p.CreatedDate = parseCreated(created)
	return p, nil
}

var bookingSortColumns = map[string]bool{
	"created_date": true,
	"fecha":        true,
	"hora":         true,
	"monto":        true,
}

type bookingStore struct{ db *sql.DB }

const bookingColumns = "id, fecha, hora, cantidad_jugadores, monto, nombre_contacto, telefono_contacto, estado, observaciones, created_date"

func (s bookingStore) List(ctx context.Context, sort string, limit int) ([]entity.Booking, error) {
	order, err := orderClause(sort, bookingSortColumns)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + bookingColumns + " FROM bookings " + order + limitClause(limit)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (s bookingStore) Create(ctx context.Context, in entity.BookingInput) (entity.Booking, error) {
	id := uuid.NewString()
	created := time.Now().UTC()
	estado := in.Estado
	if estado == "" {
		estado = entity.DefaultStatus
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO bookings (id, fecha, hora, cantidad_jugadores, monto, nombre_contacto, telefono_contacto, estado, observaciones, created_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, in.Fecha, in.Hora, in.CantidadJugadores, in.Monto, in.NombreContacto,
		in.TelefonoContacto, string(estado), in.Observaciones, created.Format(time.RFC3339),
	)
	if err != nil {
		return entity.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return s.get(ctx, id)
}

func (s bookingStore) Update(ctx context.Context, id string, in entity.BookingInput) (entity.Booking, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE bookings SET fecha = ?, hora = ?, cantidad_jugadores = ?, monto = ?, nombre_contacto = ?, telefono_contacto = ?, estado = ?, observaciones = ? WHERE id = ?",
		in.Fecha, in.Hora, in.CantidadJugadores, in.Monto, in.NombreContacto,
		in.TelefonoContacto, string(in.Estado), in.Observaciones, id,
	)
	if err != nil {
		return entity.Booking{}, fmt.Errorf("update booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return entity.Booking{}, fmt.Errorf("update booking: %w", err)
	}
	if affected == 0 {
		return entity.Booking{}, ErrNotFound
	}
	return s.get(ctx, id)
}

func (s bookingStore) get(ctx context.Context, id string) (entity.Booking, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Booking{}, ErrNotFound
	}
	return b, err
}

func scanBooking(row rowScanner) (entity.Booking, error) {
	var (
		b       entity.Booking
		estado  string
		created string
	)
	if err := row.Scan(&b.ID, &b.Fecha, &b.Hora, &b.CantidadJugadores, &b.Monto,
		&b.NombreContacto, &b.TelefonoContacto, &estado, &b.Observaciones, &created); err != nil {
		return entity.Booking{}, err
	}
	b.Estado = entity.Status(estado)
	b.CreatedDate = parseCreated(created)
	return b, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseCreated(raw string) time.Time {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
