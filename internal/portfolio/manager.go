// Package portfolio enforces the portfolio-level position cap across
// instruments. Per-instrument sizing is the engine's concern; this layer
// only grants what the remaining headroom allows.
package portfolio

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// Manager tracks allocated fractions with concurrency safety.
type Manager struct {
	mu           sync.Mutex
	state        *State
	filePath     string
	maxPortfolio float64
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string, maxPortfolio float64) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	m := &Manager{state: state, filePath: filePath, maxPortfolio: maxPortfolio}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// GetState returns a copy of the current portfolio state.
func (m *Manager) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := State{Positions: make(map[string]float64, len(m.state.Positions)), UpdatedAt: m.state.UpdatedAt}
	for k, v := range m.state.Positions {
		out.Positions[k] = v
	}
	return out
}

// Allocated returns the total fraction currently committed.
func (m *Manager) Allocated() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocatedLocked()
}

func (m *Manager) allocatedLocked() float64 {
	total := 0.0
	for _, f := range m.state.Positions {
		total += f
	}
	return total
}

// Apply grants a recommended fraction for a symbol subject to portfolio
// headroom, records the new allocation and returns what was granted. Sell
// and Hold release the symbol's allocation.
func (m *Manager) Apply(symbol string, dir model.Direction, recommended float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dir != model.Buy {
		delete(m.state.Positions, symbol)
		m.saveLogged()
		return 0
	}

	headroom := m.maxPortfolio - m.allocatedLocked() + m.state.Positions[symbol]
	if headroom < 0 {
		headroom = 0
	}
	granted := recommended
	if granted > headroom {
		granted = headroom
	}
	if granted > 0 {
		m.state.Positions[symbol] = granted
	} else {
		delete(m.state.Positions, symbol)
	}
	m.saveLogged()
	return granted
}

func (m *Manager) saveLogged() {
	if err := m.save(); err != nil {
		log.Error().Err(err).Msg("failed to save portfolio state")
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
