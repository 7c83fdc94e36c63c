package analysis

import (
	"scout-analyzer/internal/config"
	"scout-analyzer/internal/match"
)

// Tier is an alert priority tier.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// rank orders tiers for sorting; higher is more urgent.
func (t Tier) rank() int {
	switch t {
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	}
	return 0
}

// Alert flags a lane comfort pick.
type Alert struct {
	Lane     match.Lane
	Champion string
	Games    int
	WinRate  float64
	Tier     Tier
	Action   string
}

// actionForTier returns the recommended action text. The text is a pure
// function of the tier so identical inputs produce identical alerts.
func actionForTier(t Tier) string {
	switch t {
	case TierHigh:
		return "DENY COMFORT PICK"
	case TierMedium:
		return "PREP COUNTER AND CONTEST IN DRAFT"
	default:
		return "MONITOR PICK. LIKELY FLEX OR FILL"
	}
}

// ClassifyComfortPicks emits one alert per lane for the top-ranked champion
// by the aggregator's ordering. The tier rule is monotonic in (games played,
// win rate):
//
//	HIGH:   games >= SignificantSample AND win rate >= HighConfidenceWinRate
//	MEDIUM: exactly one of the two
//	LOW:    neither, but the champion was played more than once
//
// Lanes with no recorded champion produce no alert, and a champion whose win
// rate is undefined is skipped rather than emitting a NaN alert.
func ClassifyComfortPicks(laneStats map[match.Lane][]LaneStat, cfg config.Config) []Alert {
	var alerts []Alert
	for _, lane := range match.Lanes {
		stats := laneStats[lane]
		if len(stats) == 0 {
			continue
		}

		top := stats[0]
		winRate, ok := top.WinRate()
		if !ok {
			continue
		}

		bigSample := top.Games >= cfg.SignificantSample
		highWinRate := winRate >= cfg.HighConfidenceWinRate

		var tier Tier
		switch {
		case bigSample && highWinRate:
			tier = TierHigh
		case bigSample || highWinRate:
			tier = TierMedium
		case top.Games > 1:
			tier = TierLow
		default:
			continue
		}

		alerts = append(alerts, Alert{
			Lane:     lane,
			Champion: top.Champion,
			Games:    top.Games,
			WinRate:  winRate,
			Tier:     tier,
			Action:   actionForTier(tier),
		})
	}
	return alerts
}
