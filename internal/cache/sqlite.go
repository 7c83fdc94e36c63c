// Package cache persists normalized observations in a local SQLite database
// so reports can be regenerated without re-reading raw end-state files.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"scout-analyzer/internal/match"
)

const schema = `
CREATE TABLE IF NOT EXISTS observations (
	match_id      TEXT NOT NULL,
	team_id       TEXT NOT NULL,
	team_name     TEXT NOT NULL,
	player_name   TEXT NOT NULL,
	role          TEXT NOT NULL,
	champion      TEXT NOT NULL,
	win           INTEGER NOT NULL,
	game_duration INTEGER NOT NULL,
	first_dragon  INTEGER,
	first_tower   INTEGER,
	side          TEXT NOT NULL DEFAULT '',
	game_start    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (match_id, team_id, role)
);
CREATE INDEX IF NOT EXISTS idx_observations_team ON observations(team_id);
`

// Store is a SQLite-backed observation cache.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database and ensures the schema exists.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert stores observations, replacing any existing row for the same
// (match, team, role) key.
func (s *Store) Upsert(ctx context.Context, observations []match.Observation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO observations
		(match_id, team_id, team_name, player_name, role, champion, win,
		 game_duration, first_dragon, first_tower, side, game_start)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range observations {
		if _, err := stmt.ExecContext(ctx,
			o.MatchID, o.TeamID, o.TeamName, o.Player, string(o.Role), o.Champion,
			boolToInt(o.Win), o.GameDuration, nullableBool(o.FirstDragon),
			nullableBool(o.FirstTower), o.Side, o.GameStart,
		); err != nil {
			return fmt.Errorf("failed to insert observation %s/%s: %w", o.MatchID, o.Role, err)
		}
	}
	return tx.Commit()
}

// ObservationsByTeam loads a team's observations in a stable order. The team
// ID must match exactly; the team name matches case-insensitively, like
// match.FilterTeam.
func (s *Store) ObservationsByTeam(ctx context.Context, team string) ([]match.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, team_id, team_name, player_name, role, champion, win,
		       game_duration, first_dragon, first_tower, side, game_start
		FROM observations
		WHERE team_id = ? OR team_name = ? COLLATE NOCASE
		ORDER BY match_id, role
	`, team, team)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObservations(rows)
}

// Observations loads the entire cache in a stable order.
func (s *Store) Observations(ctx context.Context) ([]match.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, team_id, team_name, player_name, role, champion, win,
		       game_duration, first_dragon, first_tower, side, game_start
		FROM observations
		ORDER BY match_id, team_id, role
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObservations(rows)
}

// Teams lists the distinct team identifiers with cached observations.
func (s *Store) Teams(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT team_id FROM observations ORDER BY team_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func scanObservations(rows *sql.Rows) ([]match.Observation, error) {
	var observations []match.Observation
	for rows.Next() {
		var (
			o          match.Observation
			role       string
			win        int
			fd, ft     sql.NullInt64
		)
		if err := rows.Scan(&o.MatchID, &o.TeamID, &o.TeamName, &o.Player, &role,
			&o.Champion, &win, &o.GameDuration, &fd, &ft, &o.Side, &o.GameStart); err != nil {
			return nil, err
		}
		o.Role = match.Lane(role)
		o.Win = win != 0
		o.FirstDragon = fromNullable(fd)
		o.FirstTower = fromNullable(ft)
		observations = append(observations, o)
	}
	return observations, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullableBool(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return boolToInt(*v)
}

func fromNullable(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Int64 != 0
	return &b
}
