package db

import (
	"context"
	"fmt"

	"scout-analyzer/internal/analysis"
	"scout-analyzer/internal/match"
)

// ReplaceTeamAggregates replaces a team's published lane stats and tendency
// row in one transaction.
func (db *DB) ReplaceTeamAggregates(ctx context.Context, teamID string, agg analysis.TeamAggregates) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM team_lane_stats WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("failed to clear lane stats: %w", err)
	}

	for _, lane := range match.Lanes {
		for _, stat := range agg.LaneStats[lane] {
			if _, err := tx.Exec(ctx, `
				INSERT INTO team_lane_stats (team_id, lane, champion, games, wins)
				VALUES ($1, $2, $3, $4, $5)
			`, teamID, string(lane), stat.Champion, stat.Games, stat.Wins); err != nil {
				return fmt.Errorf("failed to insert lane stat: %w", err)
			}
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO team_tendencies
		(team_id, matches, wins, first_dragon_secured, first_dragon_samples,
		 first_tower_secured, first_tower_samples, early_wins, early_games,
		 late_wins, late_games)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (team_id) DO UPDATE SET
			matches = EXCLUDED.matches,
			wins = EXCLUDED.wins,
			first_dragon_secured = EXCLUDED.first_dragon_secured,
			first_dragon_samples = EXCLUDED.first_dragon_samples,
			first_tower_secured = EXCLUDED.first_tower_secured,
			first_tower_samples = EXCLUDED.first_tower_samples,
			early_wins = EXCLUDED.early_wins,
			early_games = EXCLUDED.early_games,
			late_wins = EXCLUDED.late_wins,
			late_games = EXCLUDED.late_games
	`, teamID, agg.Matches, agg.Wins,
		agg.FirstDragon.Secured, agg.FirstDragon.Samples,
		agg.FirstTower.Secured, agg.FirstTower.Samples,
		agg.Phases.EarlyWins, agg.Phases.EarlyGames,
		agg.Phases.LateWins, agg.Phases.LateGames); err != nil {
		return fmt.Errorf("failed to upsert tendencies: %w", err)
	}

	return tx.Commit(ctx)
}

// LaneStatRow is one published (team, lane, champion) aggregate.
type LaneStatRow struct {
	TeamID   string
	Lane     string
	Champion string
	Games    int
	Wins     int
	WinRate  float64
}

// GetTeamLaneStats returns a team's published lane stats, most played first.
func (db *DB) GetTeamLaneStats(ctx context.Context, teamID string) ([]LaneStatRow, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT team_id, lane, champion, games, wins
		FROM team_lane_stats
		WHERE team_id = $1
		ORDER BY games DESC, champion ASC
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []LaneStatRow
	for rows.Next() {
		var s LaneStatRow
		if err := rows.Scan(&s.TeamID, &s.Lane, &s.Champion, &s.Games, &s.Wins); err != nil {
			return nil, err
		}
		if s.Games > 0 {
			s.WinRate = float64(s.Wins) / float64(s.Games) * 100
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
