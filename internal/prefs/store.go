// Package prefs persists viewer preferences and the dataset load log.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/techtree/internal/db"
)

// ErrNotFound is returned when a preference does not exist.
var ErrNotFound = errors.New("preference not found")

// Preference is what a viewer remembers between visits: the locale that was
// loaded last, the selected faction and whether advanced stats are shown.
type Preference struct {
	ID                string    `json:"id"`
	Locale            string    `json:"locale"`
	Civ               string    `json:"civ"`
	ShowAdvancedStats bool      `json:"show_advanced_stats"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Load is one entry of the dataset load log.
type Load struct {
	ID       int64         `json:"id"`
	Locale   string        `json:"locale"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// Store provides access to preferences and the load log.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a preference. If p.ID is empty a UUID is generated. The
// stored record is returned.
func (s *Store) Create(ctx context.Context, p Preference) (*Preference, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (id, locale, civ, show_advanced_stats)
		VALUES (?, ?, ?, ?)`,
		p.ID, p.Locale, p.Civ, boolInt(p.ShowAdvancedStats),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting preference: %w", err)
	}
	return s.Get(ctx, p.ID)
}

// Get retrieves a preference by id.
func (s *Store) Get(ctx context.Context, id string) (*Preference, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, locale, civ, show_advanced_stats, created_at, updated_at
		FROM preferences WHERE id = ?`, id)

	p, err := scanPreference(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying preference: %w", err)
	}
	return p, nil
}

// Update overwrites the locale, faction and stats toggle of a preference.
func (s *Store) Update(ctx context.Context, p Preference) (*Preference, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE preferences
		SET locale = ?, civ = ?, show_advanced_stats = ?, updated_at = datetime('now')
		WHERE id = ?`,
		p.Locale, p.Civ, boolInt(p.ShowAdvancedStats), p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating preference: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	return s.Get(ctx, p.ID)
}

// Delete removes a preference.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM preferences WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting preference: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// RecordLoad appends a dataset load attempt to the log.
func (s *Store) RecordLoad(ctx context.Context, locale string, elapsed time.Duration, loadErr error) error {
	msg := ""
	if loadErr != nil {
		msg = loadErr.Error()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dataset_loads (locale, duration_ms, error) VALUES (?, ?, ?)`,
		locale, elapsed.Milliseconds(), msg,
	)
	if err != nil {
		return fmt.Errorf("recording dataset load: %w", err)
	}
	return nil
}

// RecentLoads returns the newest load log entries, newest first. A limit of
// zero or less returns 50.
func (s *Store) RecentLoads(ctx context.Context, limit int) ([]Load, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, locale, duration_ms, error, loaded_at
		FROM dataset_loads ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying dataset loads: %w", err)
	}
	defer rows.Close()

	var loads []Load
	for rows.Next() {
		var (
			l  Load
			ms int64
			ts string
		)
		if err := rows.Scan(&l.ID, &l.Locale, &ms, &l.Error, &ts); err != nil {
			return nil, err
		}
		l.Duration = time.Duration(ms) * time.Millisecond
		l.LoadedAt = parseTime(ts)
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPreference(sc scanner) (*Preference, error) {
	var (
		p         Preference
		advanced  int
		createdTS string
		updatedTS string
	)
	if err := sc.Scan(&p.ID, &p.Locale, &p.Civ, &advanced, &createdTS, &updatedTS); err != nil {
		return nil, err
	}
	p.ShowAdvancedStats = advanced != 0
	p.CreatedAt = parseTime(createdTS)
	p.UpdatedAt = parseTime(updatedTS)
	return &p, nil
}

func parseTime(ts string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
