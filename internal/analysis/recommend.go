package analysis

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInsufficientData signals that no alert, archetype match, or aggregate
// exists to recommend from. The engine never emits a misleading list instead.
var ErrInsufficientData = errors.New("insufficient data for recommendations")

// Thresholds for the team-tendency calls. Tuned against scrim review
// sessions; the classifier thresholds in config cover the lane alerts.
const (
	weakDragonRate   = 0.40
	weakTowerRate    = 0.50
	lateFalloffDelta = 0.15
	scalingDelta     = 0.10
)

// Recommendation is one prioritized tactical directive.
type Recommendation struct {
	Tier    Tier
	Summary string
	Metric  string
	Samples int
}

// BuildRecommendations merges lane alerts, the archetype result, and team
// tendencies into an ordered list: tier descending, supporting sample size
// descending, summary ascending for stability. With no alerts, no archetype
// match, and no recorded matches it returns ErrInsufficientData.
func BuildRecommendations(agg TeamAggregates, alerts []Alert, archetype ArchetypeResult) ([]Recommendation, error) {
	if len(alerts) == 0 && !archetype.Matched && agg.Matches == 0 {
		return nil, ErrInsufficientData
	}

	var recs []Recommendation

	for _, alert := range alerts {
		recs = append(recs, Recommendation{
			Tier:    alert.Tier,
			Summary: fmt.Sprintf("%s LANE: %s (%s)", alert.Lane, alert.Action, alert.Champion),
			Metric:  fmt.Sprintf("%d games, %.2f%% win rate on %s.", alert.Games, alert.WinRate*100, alert.Champion),
			Samples: alert.Games,
		})
	}

	if archetype.Matched {
		recs = append(recs, Recommendation{
			Tier:    TierHigh,
			Summary: fmt.Sprintf("BREAK THE %s GAMEPLAN: %s", archetype.Name, archetype.Break),
			Metric:  fmt.Sprintf("Pattern held across %d full compositions.", archetype.Samples),
			Samples: archetype.Samples,
		})
	}

	recs = append(recs, tendencyCalls(agg)...)

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Tier != recs[j].Tier {
			return recs[i].Tier.rank() > recs[j].Tier.rank()
		}
		if recs[i].Samples != recs[j].Samples {
			return recs[i].Samples > recs[j].Samples
		}
		return recs[i].Summary < recs[j].Summary
	})

	return recs, nil
}

// tendencyCalls derives the objective and game-phase directives from the
// team aggregates. Rates with empty denominators are skipped, never treated
// as zero.
func tendencyCalls(agg TeamAggregates) []Recommendation {
	if agg.Matches == 0 {
		return nil
	}

	var recs []Recommendation

	dragonRate, hasDragon := agg.FirstDragon.Value()
	earlyWR, hasEarly := agg.Phases.EarlyWinRate()
	lateWR, hasLate := agg.Phases.LateWinRate()

	switch {
	case hasDragon && dragonRate < weakDragonRate:
		recs = append(recs, Recommendation{
			Tier:    TierHigh,
			Summary: "FORCE DRAGON FIGHTS. DENY SOUL AT ALL COSTS.",
			Metric:  fmt.Sprintf("Opponent dragon control is weak (%.2f%% capture rate).", dragonRate*100),
			Samples: agg.FirstDragon.Samples,
		})
	case hasEarly && hasLate && earlyWR > lateWR+lateFalloffDelta:
		recs = append(recs, Recommendation{
			Tier:    TierHigh,
			Summary: "STALL FOR LATE. PUNISH THEIR MID-GAME DESPERATION.",
			Metric:  fmt.Sprintf("Late-game drop detected (%.2f%% early vs %.2f%% late win rate).", earlyWR*100, lateWR*100),
			Samples: agg.Matches,
		})
	default:
		overall, _ := agg.OverallWinRate()
		recs = append(recs, Recommendation{
			Tier:    TierHigh,
			Summary: "PRESS THE ADVANTAGE. DON'T LET THEM BREATHE.",
			Metric:  fmt.Sprintf("Maintain pressure (%.2f%% overall win rate).", overall*100),
			Samples: agg.Matches,
		})
	}

	towerRate, hasTower := agg.FirstTower.Value()
	switch {
	case hasTower && towerRate < weakTowerRate:
		recs = append(recs, Recommendation{
			Tier:    TierMedium,
			Summary: "CRASH WAVES. PUNISH WEAK ROTATIONS FOR PLATES.",
			Metric:  fmt.Sprintf("Subpar first tower control (%.2f%% rate).", towerRate*100),
			Samples: agg.FirstTower.Samples,
		})
	case hasEarly && hasLate && lateWR > earlyWR+scalingDelta:
		recs = append(recs, Recommendation{
			Tier:    TierMedium,
			Summary: "INVADE EARLY. BREAK THEIR SCALING BEFORE IT STARTS.",
			Metric:  fmt.Sprintf("Scaling threat detected (%.2f%% late vs %.2f%% early win rate).", lateWR*100, earlyWR*100),
			Samples: agg.Matches,
		})
	default:
		recs = append(recs, Recommendation{
			Tier:    TierMedium,
			Summary: "CONTROL VISION. PUNISH FACE-CHECKS IN RIVER.",
			Metric:  "Standard objective pacing detected.",
			Samples: agg.Matches,
		})
	}

	recs = append(recs, Recommendation{
		Tier:    TierLow,
		Summary: "BAIT BARON. FORCE THEM INTO A BAD FACE-CHECK.",
		Metric:  "Situational tactical opening.",
		Samples: agg.Matches,
	})

	return recs
}
