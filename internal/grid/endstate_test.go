package grid

import (
	"testing"

	"scout-analyzer/internal/match"
)

const endStateFixture = `{
  "seriesState": {
    "startedAt": "2024-03-01T15:00:00Z",
    "players": [
      {"id": "p1", "name": "TopOne"},
      {"id": "p2", "name": "JglOne"},
      {"id": "p3", "name": "MidOne"},
      {"id": "p4", "name": "AdcOne"},
      {"id": "p5", "name": "SupOne"}
    ],
    "games": [
      {
        "startedAt": "2024-03-01T15:10:00Z",
        "clock": {"currentSeconds": 1745},
        "teams": [
          {
            "id": "100", "name": "Team One", "won": true,
            "objectives": [
              {"type": "slayDragon", "completedFirst": true},
              {"type": "destroyTurret", "completedFirst": false}
            ],
            "players": [
              {"id": "p1", "character": {"name": "Renekton"}},
              {"id": "p2", "character": {"name": "Lee Sin"}},
              {"id": "p3", "character": {"name": "Ahri"}},
              {"id": "p4", "character": {"name": "Lucian"}},
              {"id": "p5", "character": {"name": "Rakan"}}
            ]
          },
          {
            "id": "200", "name": "Team Two", "won": false,
            "objectives": [
              {"type": "slayDragon", "completedFirst": false},
              {"type": "destroyOuterTurret", "completedFirst": true}
            ],
            "players": [
              {"id": "q1", "character": {"name": "Jax"}},
              {"id": "q2", "character": {"name": "Elise"}},
              {"id": "q3", "character": {"name": "Azir"}},
              {"id": "q4", "character": {"name": "Jinx"}},
              {"id": "q5", "character": {"name": "Lulu"}}
            ]
          }
        ]
      },
      {
        "clock": {"currentSeconds": 2100},
        "teams": [
          {
            "id": "100", "name": "Team One", "won": false,
            "objectives": [],
            "players": [
              {"id": "p1", "character": {"name": "Jax"}},
              {"id": "p2", "character": {"name": "Vi"}},
              {"id": "p3", "character": {"name": "Azir"}},
              {"id": "p4", "character": {"name": "Jinx"}},
              {"id": "p5", "character": {"name": "Lulu"}}
            ]
          },
          {
            "id": "200", "name": "Team Two", "won": true,
            "objectives": [],
            "players": [
              {"id": "q1", "character": {"name": "Renekton"}},
              {"id": "q2", "character": {"name": "Lee Sin"}},
              {"id": "q3", "character": {"name": "Ahri"}},
              {"id": "q4", "character": {"name": "Lucian"}},
              {"id": "q5", "character": {"name": "Rakan"}}
            ]
          }
        ]
      }
    ]
  }
}`

func TestParseEndState(t *testing.T) {
	observations, err := ParseEndState("s123", []byte(endStateFixture))
	if err != nil {
		t.Fatalf("ParseEndState failed: %v", err)
	}
	if len(observations) != 20 {
		t.Fatalf("Expected 20 observations (2 games x 2 teams x 5 players), got %d", len(observations))
	}

	first := observations[0]
	if first.MatchID != "s123_G1" {
		t.Errorf("Expected match ID s123_G1, got %s", first.MatchID)
	}
	if first.TeamID != "100" || first.TeamName != "Team One" {
		t.Errorf("Wrong team on first observation: %s / %s", first.TeamID, first.TeamName)
	}
	if first.Player != "TopOne" {
		t.Errorf("Expected roster name TopOne, got %s", first.Player)
	}
	if !first.Win {
		t.Error("Team One won game 1")
	}
	if first.GameDuration != 1745 {
		t.Errorf("Expected duration 1745, got %d", first.GameDuration)
	}
}

func TestParseEndState_RolesFollowRosterOrder(t *testing.T) {
	observations, err := ParseEndState("s123", []byte(endStateFixture))
	if err != nil {
		t.Fatalf("ParseEndState failed: %v", err)
	}

	wantChampions := map[match.Lane]string{
		match.LaneTop:     "Renekton",
		match.LaneJungle:  "Lee Sin",
		match.LaneMid:     "Ahri",
		match.LaneADC:     "Lucian",
		match.LaneSupport: "Rakan",
	}
	for i, lane := range match.Lanes {
		o := observations[i]
		if o.Role != lane {
			t.Errorf("Roster slot %d: expected %s, got %s", i, lane, o.Role)
		}
		if o.Champion != wantChampions[lane] {
			t.Errorf("%s: expected %s, got %s", lane, wantChampions[lane], o.Champion)
		}
	}
}

func TestParseEndState_ObjectivesAndSides(t *testing.T) {
	observations, err := ParseEndState("s123", []byte(endStateFixture))
	if err != nil {
		t.Fatalf("ParseEndState failed: %v", err)
	}

	// Game 1, Team One: secured dragon, lost first turret, blue side.
	one := observations[0]
	if one.FirstDragon == nil || !*one.FirstDragon {
		t.Error("Team One secured first dragon in game 1")
	}
	if one.FirstTower == nil || *one.FirstTower {
		t.Error("Team One did not take first turret in game 1")
	}
	if one.Side != "BLUE" {
		t.Errorf("Expected BLUE side, got %s", one.Side)
	}

	// Game 1, Team Two: variant turret objective name still counts.
	two := observations[5]
	if two.FirstTower == nil || !*two.FirstTower {
		t.Error("destroyOuterTurret completedFirst must count as first tower")
	}
	if two.Side != "RED" {
		t.Errorf("Expected RED side, got %s", two.Side)
	}
}

func TestParseEndState_Timestamps(t *testing.T) {
	observations, err := ParseEndState("s123", []byte(endStateFixture))
	if err != nil {
		t.Fatalf("ParseEndState failed: %v", err)
	}

	// Game 1 has its own start; game 2 falls back to the series start.
	if observations[0].GameStart != 1709305800 {
		t.Errorf("Expected game 1 start 1709305800, got %d", observations[0].GameStart)
	}
	if observations[10].GameStart != 1709305200 {
		t.Errorf("Expected game 2 to use series start 1709305200, got %d", observations[10].GameStart)
	}
	if observations[10].MatchID != "s123_G2" {
		t.Errorf("Expected match ID s123_G2, got %s", observations[10].MatchID)
	}
}

func TestParseEndState_UnknownPlayerGetsPlaceholder(t *testing.T) {
	observations, err := ParseEndState("s123", []byte(endStateFixture))
	if err != nil {
		t.Fatalf("ParseEndState failed: %v", err)
	}

	// Team Two players are not in the series roster.
	if observations[5].Player != "Player_q1" {
		t.Errorf("Expected placeholder name Player_q1, got %s", observations[5].Player)
	}
}

func TestParseEndState_BadJSON(t *testing.T) {
	if _, err := ParseEndState("s123", []byte("{not json")); err == nil {
		t.Error("Expected a parse error")
	}
}
