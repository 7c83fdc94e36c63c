package match

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrNoData signals that the source contained no valid observations.
// Callers surface this as a "cannot generate report" condition.
var ErrNoData = errors.New("no valid match observations")

// Columns of the normalized GRID-compatible CSV.
const (
	colMatchID      = "match_id"
	colTeamID       = "team_id"
	colTeamName     = "team_name"
	colPlayerName   = "player_name"
	colRole         = "role"
	colChampion     = "champion"
	colWin          = "win"
	colGameDuration = "game_duration"
	colFirstDragon  = "first_dragon"
	colFirstTower   = "first_tower"
	colSide         = "side"
	colGameStart    = "game_start"
)

var requiredColumns = []string{
	colMatchID, colTeamID, colRole, colChampion, colWin, colGameDuration,
}

// LoadCSV reads normalized match rows from a CSV file, validating each record
// against the observation schema. Records violating the schema are skipped
// with a logged reason; the remaining valid records are returned. An empty
// valid set yields ErrNoData.
func LoadCSV(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open match data: %w", err)
	}
	defer f.Close()

	obs, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return obs, nil
}

// ReadCSV parses observations from CSV content with a header row.
func ReadCSV(r io.Reader) ([]Observation, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var (
		observations []Observation
		skipped      int
		line         = 1
	)
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.WithError(err).WithField("line", line).Warn("skipping malformed CSV row")
			skipped++
			continue
		}

		obs, err := parseRow(cols, record)
		if err != nil {
			logrus.WithError(err).WithField("line", line).Warn("skipping invalid observation")
			skipped++
			continue
		}
		observations = append(observations, obs)
	}

	if skipped > 0 {
		logrus.WithFields(logrus.Fields{"skipped": skipped, "loaded": len(observations)}).
			Info("finished loading match data")
	}
	if len(observations) == 0 {
		return nil, ErrNoData
	}
	return observations, nil
}

func parseRow(cols map[string]int, record []string) (Observation, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	lane, err := ParseLane(field(colRole))
	if err != nil {
		return Observation{}, err
	}

	win, err := parseBool(colWin, field(colWin))
	if err != nil {
		return Observation{}, err
	}
	if win == nil {
		return Observation{}, &SchemaError{Field: colWin, Reason: "win flag is required"}
	}

	duration, err := strconv.Atoi(field(colGameDuration))
	if err != nil {
		return Observation{}, &SchemaError{Field: colGameDuration, Value: field(colGameDuration), Reason: "not an integer"}
	}

	firstDragon, err := parseBool(colFirstDragon, field(colFirstDragon))
	if err != nil {
		return Observation{}, err
	}
	firstTower, err := parseBool(colFirstTower, field(colFirstTower))
	if err != nil {
		return Observation{}, err
	}

	var gameStart int64
	if raw := field(colGameStart); raw != "" {
		gameStart, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Observation{}, &SchemaError{Field: colGameStart, Value: raw, Reason: "not a unix timestamp"}
		}
	}

	obs := Observation{
		MatchID:      field(colMatchID),
		TeamID:       field(colTeamID),
		TeamName:     field(colTeamName),
		Player:       field(colPlayerName),
		Role:         lane,
		Champion:     field(colChampion),
		Win:          *win,
		GameDuration: duration,
		FirstDragon:  firstDragon,
		FirstTower:   firstTower,
		Side:         strings.ToUpper(field(colSide)),
		GameStart:    gameStart,
	}
	if err := obs.Validate(); err != nil {
		return Observation{}, err
	}
	return obs, nil
}

// parseBool accepts 1/0 and true/false; empty means the field is absent.
func parseBool(field, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "1", "true":
		v := true
		return &v, nil
	case "0", "false":
		v := false
		return &v, nil
	}
	return nil, &SchemaError{Field: field, Value: raw, Reason: "not a boolean"}
}

// FilterTeam returns the observations belonging to one team, matching on team
// ID first and falling back to the team name. Compositions from different
// teams must never be analyzed together.
func FilterTeam(observations []Observation, team string) []Observation {
	var out []Observation
	for _, o := range observations {
		if o.TeamID == team || strings.EqualFold(o.TeamName, team) {
			out = append(out, o)
		}
	}
	return out
}
