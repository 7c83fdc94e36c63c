package report

import (
	"bytes"
	"strings"
	"testing"

	"scout-analyzer/internal/analysis"
	"scout-analyzer/internal/config"
	"scout-analyzer/internal/match"
)

func renderToString(team string, agg analysis.TeamAggregates, alerts []analysis.Alert, archetype analysis.ArchetypeResult, recs []analysis.Recommendation) string {
	var buf bytes.Buffer
	Render(&buf, team, agg, alerts, archetype, recs)
	return buf.String()
}

func TestRender_Sections(t *testing.T) {
	agg := analysis.TeamAggregates{Matches: 4}
	archetype := analysis.Unclassified(0)

	out := renderToString("Team One", agg, nil, archetype, nil)

	for _, want := range []string{
		"SCOUTING REPORT: Team One",
		"Matches analyzed: 4",
		"--- [ LANE CHECKS ] ---",
		"No lane tendencies in this sample.",
		"--- [ OBJECTIVE CONTROL ] ---",
		"--- [ COMP READ ] ---",
		"Archetype: MIXED/UNCLASSIFIED",
		"--- [ HOW TO BEAT THEM ] ---",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestRender_UndefinedRates(t *testing.T) {
	out := renderToString("Team One", analysis.TeamAggregates{Matches: 2}, nil, analysis.Unclassified(0), nil)

	for _, want := range []string{
		"First Dragon: N/A",
		"First Tower:  N/A",
		"Win Phase:    N/A",
		"Early WR:     N/A",
		"Late WR:      N/A",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "NaN") {
		t.Error("Undefined rates must never render as NaN")
	}
}

func TestRender_AlertMarkers(t *testing.T) {
	alerts := []analysis.Alert{
		{Lane: match.LaneMid, Champion: "Ahri", Games: 4, WinRate: 0.75, Tier: analysis.TierHigh, Action: "DENY COMFORT PICK"},
		{Lane: match.LaneADC, Champion: "Jinx", Games: 2, WinRate: 1.0, Tier: analysis.TierMedium, Action: "PREP COUNTER AND CONTEST IN DRAFT"},
	}

	out := renderToString("Team One", analysis.TeamAggregates{Matches: 4}, alerts, analysis.Unclassified(4), nil)

	if !strings.Contains(out, "!!! MID LANE ALERT: HIGH PRIORITY !!!") {
		t.Errorf("HIGH alert missing emphasis markers:\n%s", out)
	}
	if !strings.Contains(out, ">>> ADC LANE ALERT: MEDIUM PRIORITY <<<") {
		t.Errorf("MEDIUM alert missing markers:\n%s", out)
	}
	if !strings.Contains(out, "Target: Ahri (4 games, 75.00% WR)") {
		t.Errorf("Alert detail line missing:\n%s", out)
	}
}

func TestRender_WinPhase(t *testing.T) {
	agg := analysis.TeamAggregates{Matches: 4}
	agg.Phases.EarlyGames = 2
	agg.Phases.EarlyWins = 2
	agg.Phases.LateGames = 2
	agg.Phases.LateWins = 0

	out := renderToString("Team One", agg, nil, analysis.Unclassified(4), nil)
	if !strings.Contains(out, "Win Phase:    EARLY GAME") {
		t.Errorf("Expected early-game read:\n%s", out)
	}
	if !strings.Contains(out, "Early WR:     100.00%") {
		t.Errorf("Expected early win rate:\n%s", out)
	}
}

func TestRender_RepresentativeComp(t *testing.T) {
	archetype := analysis.ArchetypeResult{
		Name:           "EARLY SKIRMISH",
		Plan:           "WIN EARLY.",
		Break:          "STALLS PAST 30 MINUTES.",
		Matched:        true,
		Representative: []string{"Lee Sin", "Renekton", "Ahri", "Lucian", "Rakan"},
	}

	out := renderToString("Team One", analysis.TeamAggregates{Matches: 3}, nil, archetype, nil)
	if !strings.Contains(out, "Core:    Lee Sin, Renekton, Ahri, Lucian, Rakan") {
		t.Errorf("Representative comp missing:\n%s", out)
	}
}

// Runs the whole analysis twice on the same observations and requires the
// rendered reports to be byte-identical.
func TestRender_DeterministicPipeline(t *testing.T) {
	cfg := config.Default()
	rules, err := analysis.LoadRules()
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}

	yes, no := true, false
	var observations []match.Observation
	comps := [][5]string{
		{"Renekton", "Lee Sin", "Ahri", "Lucian", "Rakan"},
		{"Jax", "Elise", "Qiyana", "Kalista", "Pyke"},
		{"Renekton", "Nidalee", "Ahri", "Lucian", "Alistar"},
	}
	for i, comp := range comps {
		matchID := "m" + string(rune('1'+i))
		for j, lane := range match.Lanes {
			observations = append(observations, match.Observation{
				MatchID:      matchID,
				TeamID:       "T1",
				TeamName:     "Team One",
				Role:         lane,
				Champion:     comp[j],
				Win:          i != 1,
				GameDuration: 1500 + i*100,
				FirstDragon:  &yes,
				FirstTower:   &no,
				GameStart:    int64(1700000000 + i),
			})
		}
	}

	run := func() string {
		agg := analysis.Aggregate(observations, cfg)
		alerts := analysis.ClassifyComfortPicks(agg.LaneStats, cfg)
		samples := analysis.BuildCompositions(observations)
		archetype := analysis.ClassifyArchetype(samples, rules, cfg)
		recs, err := analysis.BuildRecommendations(agg, alerts, archetype)
		if err != nil {
			t.Fatalf("BuildRecommendations failed: %v", err)
		}
		return renderToString("Team One", agg, alerts, archetype, recs)
	}

	first := run()
	second := run()
	if first != second {
		t.Errorf("Identical inputs produced different reports:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
	if !strings.Contains(first, "Archetype: EARLY SKIRMISH") {
		t.Errorf("Expected an early-skirmish read:\n%s", first)
	}
}
