package match

import (
	"fmt"
	"strings"
)

// Lane is one of the five positional roles in a match.
type Lane string

const (
	LaneTop     Lane = "TOP"
	LaneJungle  Lane = "JUNGLE"
	LaneMid     Lane = "MID"
	LaneADC     Lane = "ADC"
	LaneSupport Lane = "SUPPORT"
)

// Lanes is the canonical iteration order for all lane-keyed output.
var Lanes = []Lane{LaneTop, LaneJungle, LaneMid, LaneADC, LaneSupport}

var canonicalLanes = func() map[Lane]bool {
	set := make(map[Lane]bool, len(Lanes))
	for _, lane := range Lanes {
		set[lane] = true
	}
	return set
}()

// laneAliases maps provider-specific position names onto canonical lanes.
// Riot match data uses MIDDLE/BOTTOM/UTILITY for the same positions.
var laneAliases = map[string]Lane{
	"TOP":     LaneTop,
	"JUNGLE":  LaneJungle,
	"MID":     LaneMid,
	"MIDDLE":  LaneMid,
	"ADC":     LaneADC,
	"BOTTOM":  LaneADC,
	"BOT":     LaneADC,
	"SUPPORT": LaneSupport,
	"UTILITY": LaneSupport,
}

// ParseLane normalizes a raw role string to a canonical lane.
func ParseLane(raw string) (Lane, error) {
	lane, ok := laneAliases[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return "", &SchemaError{Field: "role", Value: raw, Reason: "unknown lane"}
	}
	return lane, nil
}

// Observation is one player's performance in one game. Immutable once
// validated; the set of all observations for a team is the unit of analysis.
type Observation struct {
	MatchID      string
	TeamID       string
	TeamName     string
	Player       string
	Role         Lane
	Champion     string
	Win          bool
	GameDuration int // seconds

	// Objective flags are optional: nil means the field was absent from the
	// source and the match is excluded from that rate's denominator.
	FirstDragon *bool
	FirstTower  *bool

	Side      string // BLUE or RED, optional
	GameStart int64  // unix seconds, 0 when unknown
}

// SchemaError marks a record that violates the observation schema. Such
// records are skipped with a logged reason; the run continues.
type SchemaError struct {
	Field  string
	Value  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation in field %q (value %q): %s", e.Field, e.Value, e.Reason)
}

// Validate checks the observation invariants.
func (o *Observation) Validate() error {
	if o.MatchID == "" {
		return &SchemaError{Field: "match_id", Reason: "empty match identifier"}
	}
	if o.TeamID == "" {
		return &SchemaError{Field: "team_id", Reason: "empty team identifier"}
	}
	// Aliases like MIDDLE or UTILITY must be normalized by ParseLane before
	// an observation is built; only canonical lanes are valid here.
	if !canonicalLanes[o.Role] {
		return &SchemaError{Field: "role", Value: string(o.Role), Reason: "not a canonical lane"}
	}
	if o.Champion == "" {
		return &SchemaError{Field: "champion", Reason: "empty champion identifier"}
	}
	if o.GameDuration < 0 {
		return &SchemaError{Field: "game_duration", Value: fmt.Sprintf("%d", o.GameDuration), Reason: "negative duration"}
	}
	return nil
}
