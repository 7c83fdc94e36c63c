package match

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV writes normalized observations with the GRID-compatible column
// set, creating the parent directory if needed.
func WriteCSV(path string, observations []Observation) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		colMatchID, colTeamID, colTeamName, colPlayerName, colRole, colChampion,
		colWin, colGameDuration, colFirstDragon, colFirstTower, colSide, colGameStart,
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, o := range observations {
		row := []string{
			o.MatchID,
			o.TeamID,
			o.TeamName,
			o.Player,
			string(o.Role),
			o.Champion,
			formatBool(&o.Win),
			strconv.Itoa(o.GameDuration),
			formatBool(o.FirstDragon),
			formatBool(o.FirstTower),
			o.Side,
			formatStart(o.GameStart),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "1"
	}
	return "0"
}

func formatStart(ts int64) string {
	if ts == 0 {
		return ""
	}
	return strconv.FormatInt(ts, 10)
}
