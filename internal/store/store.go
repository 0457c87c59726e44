// Package store archives converted hands in a sqlite database.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/lox/ohhconv/internal/ohh"
	"github.com/lox/ohhconv/internal/tables"
)

//go:embed migrations/*.sql
var migrations embed.FS

const timeLayout = time.RFC3339

// ErrNotFound is returned when a hand is not in the archive.
var ErrNotFound = errors.New("hand not found")

// Store is a sqlite-backed hand archive.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveHand inserts or replaces a hand, keyed by game number.
func (s *Store) SaveHand(ctx context.Context, hand *ohh.Hand) error {
	return saveHand(ctx, s.db, hand)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveHand(ctx context.Context, db execer, hand *ohh.Hand) error {
	payload, err := json.Marshal(hand)
	if err != nil {
		return fmt.Errorf("failed to marshal hand %s: %w", hand.GameNumber, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO hands (game_number, table_name, table_handle, start_time, game_type, bet_type, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_number) DO UPDATE SET
			table_name = excluded.table_name,
			table_handle = excluded.table_handle,
			start_time = excluded.start_time,
			game_type = excluded.game_type,
			bet_type = excluded.bet_type,
			payload = excluded.payload
	`, hand.GameNumber, hand.TableName, hand.TableHandle,
		hand.StartTime.UTC().Format(timeLayout),
		string(hand.GameType), string(hand.BetLimit.BetType), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save hand %s: %w", hand.GameNumber, err)
	}
	return nil
}

// SaveTable updates a table summary. The hand count covers every archived
// hand of the table and the latest hand never moves back in time.
func (s *Store) SaveTable(ctx context.Context, t *tables.Table) error {
	return saveTable(ctx, s.db, t)
}

func saveTable(ctx context.Context, db execer, t *tables.Table) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO poker_tables (name, handle, hand_count, latest_time, latest_hand_id)
		VALUES (?, ?, (SELECT COUNT(*) FROM hands WHERE table_name = ?), ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			handle = excluded.handle,
			hand_count = excluded.hand_count,
			latest_hand_id = CASE WHEN excluded.latest_time >= poker_tables.latest_time
				THEN excluded.latest_hand_id ELSE poker_tables.latest_hand_id END,
			latest_time = MAX(excluded.latest_time, poker_tables.latest_time)
	`, t.Name, t.Handle, t.Name, t.LatestTime.UTC().Format(timeLayout), t.LatestHandID)
	if err != nil {
		return fmt.Errorf("failed to save table %s: %w", t.Name, err)
	}
	return nil
}

// SaveRegistry archives every table and its hands in one transaction.
func (s *Store) SaveRegistry(ctx context.Context, registry *tables.Registry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range registry.Tables() {
		if len(t.Hands) == 0 {
			continue
		}
		for _, hand := range t.Hands {
			if err := saveHand(ctx, tx, hand); err != nil {
				return err
			}
		}
		if err := saveTable(ctx, tx, t); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Hand loads an archived hand by game number.
func (s *Store) Hand(ctx context.Context, gameNumber string) (*ohh.Hand, error) {
	var payload, start string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, start_time FROM hands WHERE game_number = ?`, gameNumber).Scan(&payload, &start)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hand %s: %w", gameNumber, err)
	}

	var hand ohh.Hand
	if err := json.Unmarshal([]byte(payload), &hand); err != nil {
		return nil, fmt.Errorf("failed to decode hand %s: %w", gameNumber, err)
	}
	if hand.StartTime, err = time.Parse(timeLayout, start); err != nil {
		return nil, fmt.Errorf("failed to parse start time of hand %s: %w", gameNumber, err)
	}
	return &hand, nil
}

// CountHands returns the number of archived hands, optionally for one table.
func (s *Store) CountHands(ctx context.Context, table string) (int, error) {
	query := `SELECT COUNT(*) FROM hands`
	var args []any
	if table != "" {
		query += ` WHERE table_name = ?`
		args = append(args, table)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count hands: %w", err)
	}
	return count, nil
}

// TableSummary is an archived table row.
type TableSummary struct {
	Name         string
	Handle       string
	HandCount    int
	LatestTime   time.Time
	LatestHandID string
}

// Tables lists archived tables by name.
func (s *Store) Tables(ctx context.Context) ([]TableSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, handle, hand_count, latest_time, latest_hand_id FROM poker_tables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var out []TableSummary
	for rows.Next() {
		var ts TableSummary
		var latest string
		if err := rows.Scan(&ts.Name, &ts.Handle, &ts.HandCount, &latest, &ts.LatestHandID); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		if ts.LatestTime, err = time.Parse(timeLayout, latest); err != nil {
			return nil, fmt.Errorf("failed to parse latest time of %s: %w", ts.Name, err)
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}
