package portfolio

import (
	"encoding/json"
	"os"
	"time"
)

// State tracks allocated position fractions per symbol.
type State struct {
	Positions map[string]float64 `json:"positions"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// LoadState reads the portfolio state from a JSON file. Returns an empty
// state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Positions: map[string]float64{}}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Positions == nil {
		state.Positions = map[string]float64{}
	}
	return &state, nil
}

// SaveState writes the portfolio state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
