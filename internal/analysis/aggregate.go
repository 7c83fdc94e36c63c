// Package analysis is the scouting engine: statistical aggregations and
// rule-based classifiers that turn match observations into prioritized
// tactical judgments. Every function is pure with respect to its inputs and
// produces deterministic, stably ordered output.
package analysis

import (
	"sort"

	"scout-analyzer/internal/config"
	"scout-analyzer/internal/match"
)

// LaneStat is the aggregate for one (lane, champion) pair.
type LaneStat struct {
	Champion string
	Games    int
	Wins     int
}

// WinRate reports the champion's win rate. ok is false when no games were
// played; the rate is never computed as a division by zero.
func (s LaneStat) WinRate() (float64, bool) {
	if s.Games == 0 {
		return 0, false
	}
	return float64(s.Wins) / float64(s.Games), true
}

// Rate is a successes-over-samples fraction where matches missing the
// underlying field are excluded from the denominator.
type Rate struct {
	Secured int
	Samples int
}

// Value reports the rate; ok is false when no match carried the field.
func (r Rate) Value() (float64, bool) {
	if r.Samples == 0 {
		return 0, false
	}
	return float64(r.Secured) / float64(r.Samples), true
}

// PhaseTendency is the win rate bucketed by game duration.
type PhaseTendency struct {
	EarlyWins  int
	EarlyGames int
	LateWins   int
	LateGames  int
}

// EarlyWinRate reports the win rate in games ending before the cutoff.
func (p PhaseTendency) EarlyWinRate() (float64, bool) {
	if p.EarlyGames == 0 {
		return 0, false
	}
	return float64(p.EarlyWins) / float64(p.EarlyGames), true
}

// LateWinRate reports the win rate in games reaching the cutoff.
func (p PhaseTendency) LateWinRate() (float64, bool) {
	if p.LateGames == 0 {
		return 0, false
	}
	return float64(p.LateWins) / float64(p.LateGames), true
}

// TeamAggregates holds the grouped statistics for one team's match history.
type TeamAggregates struct {
	Matches int
	Wins    int

	// LaneStats maps each lane to its champions, ordered by games played
	// descending, win rate descending, champion name ascending.
	LaneStats map[match.Lane][]LaneStat

	FirstDragon Rate
	FirstTower  Rate
	Phases      PhaseTendency
}

// OverallWinRate reports the team's win rate across all matches.
func (a TeamAggregates) OverallWinRate() (float64, bool) {
	if a.Matches == 0 {
		return 0, false
	}
	return float64(a.Wins) / float64(a.Matches), true
}

// Aggregate computes grouped statistics from one team's observations.
// Match-level fields (win, duration, objectives) are counted once per match;
// lane stats are counted once per observation. Zero observations yield empty
// aggregates, not an error.
func Aggregate(observations []match.Observation, cfg config.Config) TeamAggregates {
	agg := TeamAggregates{
		LaneStats: make(map[match.Lane][]LaneStat),
	}

	laneChampions := make(map[match.Lane]map[string]*LaneStat)
	for _, lane := range match.Lanes {
		laneChampions[lane] = make(map[string]*LaneStat)
	}

	seenMatches := make(map[string]bool)
	for _, o := range observations {
		champions, ok := laneChampions[o.Role]
		if !ok {
			// Non-canonical roles are rejected upstream; an observation from
			// an unvalidated source (a hand-edited cache row) is skipped
			// rather than given its own lane bucket.
			continue
		}
		stat, ok := champions[o.Champion]
		if !ok {
			stat = &LaneStat{Champion: o.Champion}
			champions[o.Champion] = stat
		}
		stat.Games++
		if o.Win {
			stat.Wins++
		}

		if seenMatches[o.MatchID] {
			continue
		}
		seenMatches[o.MatchID] = true

		agg.Matches++
		if o.Win {
			agg.Wins++
		}
		if o.FirstDragon != nil {
			agg.FirstDragon.Samples++
			if *o.FirstDragon {
				agg.FirstDragon.Secured++
			}
		}
		if o.FirstTower != nil {
			agg.FirstTower.Samples++
			if *o.FirstTower {
				agg.FirstTower.Secured++
			}
		}
		if o.GameDuration < cfg.EarlyGameCutoffSeconds {
			agg.Phases.EarlyGames++
			if o.Win {
				agg.Phases.EarlyWins++
			}
		} else {
			agg.Phases.LateGames++
			if o.Win {
				agg.Phases.LateWins++
			}
		}
	}

	for _, lane := range match.Lanes {
		stats := make([]LaneStat, 0, len(laneChampions[lane]))
		for _, stat := range laneChampions[lane] {
			stats = append(stats, *stat)
		}
		sortLaneStats(stats)
		if len(stats) > 0 {
			agg.LaneStats[lane] = stats
		}
	}

	return agg
}

// sortLaneStats orders by games played descending, win rate descending, then
// champion name ascending so identical inputs always yield identical order.
func sortLaneStats(stats []LaneStat) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Games != stats[j].Games {
			return stats[i].Games > stats[j].Games
		}
		wrI, _ := stats[i].WinRate()
		wrJ, _ := stats[j].WinRate()
		if wrI != wrJ {
			return wrI > wrJ
		}
		return stats[i].Champion < stats[j].Champion
	})
}
