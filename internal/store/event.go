package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event is a persisted flip event.
type Event struct {
	ID        string
	Hand      string
	Direction string
	Velocity  float64
	Message   string
	CreatedAt time.Time
}

// EventRepository provides access to the flip event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts a new event. An ID is assigned if missing.
func (r *EventRepository) Create(e *Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO events (id, hand, direction, velocity, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Hand, e.Direction, e.Velocity, e.Message, e.CreatedAt,
	)
	return err
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	e := &Event{}

	err := r.db.QueryRow(
		`SELECT id, hand, direction, velocity, message, created_at
		 FROM events WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Hand, &e.Direction, &e.Velocity, &e.Message, &e.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return e, nil
}

// List retrieves the most recent events, newest first. A limit of 0 or
// less returns everything.
func (r *EventRepository) List(limit int) ([]*Event, error) {
	query := `SELECT id, hand, direction, velocity, message, created_at
	          FROM events ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.Hand, &e.Direction, &e.Velocity, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Count returns the number of stored events.
func (r *EventRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// Trim deletes all but the newest keep events. It bounds the size of
// the event log the same way the on-screen log keeps its tail.
func (r *EventRepository) Trim(keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.Exec(
		`DELETE FROM events WHERE id NOT IN (
			SELECT id FROM events ORDER BY created_at DESC, id DESC LIMIT ?
		)`,
		keep,
	)
	return err
}

// DeleteAll clears the event log.
func (r *EventRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM events`)
	return err
}
