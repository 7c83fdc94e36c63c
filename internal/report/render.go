// Package report formats analysis output into the coach-facing text report.
// It owns all human-readable formatting; the analysis engine only supplies
// structured results.
package report

import (
	"fmt"
	"io"
	"strings"

	"scout-analyzer/internal/analysis"
)

const divider = "=================================================="

// Render writes the full scouting report. Output depends only on the inputs:
// identical analysis results produce byte-identical reports.
func Render(w io.Writer, team string, agg analysis.TeamAggregates, alerts []analysis.Alert, archetype analysis.ArchetypeResult, recs []analysis.Recommendation) {
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "SCOUTING REPORT: %s\n", team)
	fmt.Fprintf(w, "Matches analyzed: %d\n", agg.Matches)
	fmt.Fprintln(w, divider)

	renderLaneChecks(w, alerts)
	renderObjectiveControl(w, agg)
	renderCompRead(w, archetype)
	renderRecommendations(w, recs)
}

func renderLaneChecks(w io.Writer, alerts []analysis.Alert) {
	fmt.Fprintln(w, "\n--- [ LANE CHECKS ] ---")
	if len(alerts) == 0 {
		fmt.Fprintln(w, "  No lane tendencies in this sample.")
		return
	}
	for _, a := range alerts {
		marker := ">>>"
		if a.Tier == analysis.TierHigh {
			marker = "!!!"
		}
		fmt.Fprintf(w, "  %s %s LANE ALERT: %s PRIORITY %s\n", marker, a.Lane, a.Tier, reverse(marker))
		fmt.Fprintf(w, "  Target: %s (%d games, %s WR)\n", a.Champion, a.Games, percent(a.WinRate, true))
		fmt.Fprintf(w, "  Action: %s\n\n", a.Action)
	}
}

func renderObjectiveControl(w io.Writer, agg analysis.TeamAggregates) {
	fmt.Fprintln(w, "--- [ OBJECTIVE CONTROL ] ---")

	dragon, hasDragon := agg.FirstDragon.Value()
	tower, hasTower := agg.FirstTower.Value()
	early, hasEarly := agg.Phases.EarlyWinRate()
	late, hasLate := agg.Phases.LateWinRate()

	fmt.Fprintf(w, "  First Dragon: %s\n", percent(dragon, hasDragon))
	fmt.Fprintf(w, "  First Tower:  %s\n", percent(tower, hasTower))
	fmt.Fprintf(w, "  Win Phase:    %s\n", winPhase(early, hasEarly, late, hasLate))
	fmt.Fprintf(w, "  Early WR:     %s\n", percent(early, hasEarly))
	fmt.Fprintf(w, "  Late WR:      %s\n", percent(late, hasLate))
}

func renderCompRead(w io.Writer, archetype analysis.ArchetypeResult) {
	fmt.Fprintln(w, "\n--- [ COMP READ ] ---")
	fmt.Fprintf(w, "  Archetype: %s\n", archetype.Name)
	fmt.Fprintf(w, "  - Plan:    %s\n", archetype.Plan)
	fmt.Fprintf(w, "  - Break:   %s\n", archetype.Break)
	if len(archetype.Representative) > 0 {
		fmt.Fprintf(w, "  - Core:    %s\n", strings.Join(archetype.Representative, ", "))
	}
}

func renderRecommendations(w io.Writer, recs []analysis.Recommendation) {
	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintln(w, "--- [ HOW TO BEAT THEM ] ---")
	fmt.Fprintln(w, divider)
	for _, r := range recs {
		fmt.Fprintf(w, "\n[%s PRIORITY] %s\n", r.Tier, r.Summary)
		fmt.Fprintf(w, "  Stat: %s\n", r.Metric)
	}
}

// percent formats a rate, or N/A when the rate is undefined. Undefined rates
// never reach the formatter as NaN.
func percent(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

func winPhase(early float64, hasEarly bool, late float64, hasLate bool) string {
	switch {
	case !hasEarly && !hasLate:
		return "N/A"
	case hasEarly && (!hasLate || early > late):
		return "EARLY GAME"
	default:
		return "LATE GAME"
	}
}

func reverse(marker string) string {
	if marker == ">>>" {
		return "<<<"
	}
	return marker
}
