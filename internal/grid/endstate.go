package grid

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"scout-analyzer/internal/match"
)

// EndState mirrors the GRID end-state file for one series.
type EndState struct {
	SeriesState struct {
		StartedAt string `json:"startedAt"`
		Players   []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"players"`
		Games []struct {
			StartedAt string `json:"startedAt"`
			Clock     struct {
				CurrentSeconds int `json:"currentSeconds"`
			} `json:"clock"`
			Teams []struct {
				ID         string `json:"id"`
				Name       string `json:"name"`
				Won        bool   `json:"won"`
				Objectives []struct {
					Type           string `json:"type"`
					CompletedFirst bool   `json:"completedFirst"`
				} `json:"objectives"`
				Players []struct {
					ID        string `json:"id"`
					Character struct {
						Name string `json:"name"`
					} `json:"character"`
				} `json:"players"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"seriesState"`
}

// teamSides in GRID game order: blue side first.
var teamSides = []string{"BLUE", "RED"}

// ParseEndState converts a raw end-state file into one observation per
// player per game. Roles are inferred from roster order (GRID lists players
// top to support) when not explicit in the file.
func ParseEndState(seriesID string, data []byte) ([]match.Observation, error) {
	var state EndState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse end state for series %s: %w", seriesID, err)
	}

	playerNames := make(map[string]string, len(state.SeriesState.Players))
	for _, p := range state.SeriesState.Players {
		if p.ID != "" && p.Name != "" {
			playerNames[p.ID] = p.Name
		}
	}

	var observations []match.Observation
	for gameIdx, game := range state.SeriesState.Games {
		matchID := fmt.Sprintf("%s_G%d", seriesID, gameIdx+1)
		gameStart := parseTimestamp(game.StartedAt)
		if gameStart == 0 {
			gameStart = parseTimestamp(state.SeriesState.StartedAt)
		}

		for teamIdx, team := range game.Teams {
			firstDragon := false
			firstTower := false
			for _, obj := range team.Objectives {
				if obj.Type == "slayDragon" && obj.CompletedFirst {
					firstDragon = true
				}
				if obj.Type == "destroyTurret" && obj.CompletedFirst {
					firstTower = true
				}
			}
			// Some exports use variant turret objective names.
			if !firstTower {
				for _, obj := range team.Objectives {
					if strings.Contains(obj.Type, "Turret") && obj.CompletedFirst {
						firstTower = true
						break
					}
				}
			}

			side := ""
			if teamIdx < len(teamSides) {
				side = teamSides[teamIdx]
			}

			for playerIdx, player := range team.Players {
				if playerIdx >= len(match.Lanes) {
					continue
				}
				name := playerNames[player.ID]
				if name == "" {
					name = fmt.Sprintf("Player_%s", player.ID)
				}

				fd, ft := firstDragon, firstTower
				obs := match.Observation{
					MatchID:      matchID,
					TeamID:       team.ID,
					TeamName:     team.Name,
					Player:       name,
					Role:         match.Lanes[playerIdx],
					Champion:     player.Character.Name,
					Win:          team.Won,
					GameDuration: game.Clock.CurrentSeconds,
					FirstDragon:  &fd,
					FirstTower:   &ft,
					Side:         side,
					GameStart:    gameStart,
				}
				if err := obs.Validate(); err != nil {
					// Invalid rows are dropped at the ingestion boundary.
					continue
				}
				observations = append(observations, obs)
			}
		}
	}
	return observations, nil
}

func parseTimestamp(raw string) int64 {
	if raw == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return 0
	}
	return t.Unix()
}
