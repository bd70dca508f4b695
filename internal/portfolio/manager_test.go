package portfolio

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/Taitony19930316/Medalion/internal/model"
)

func newTestManager(t *testing.T, maxPortfolio float64) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "state.json"), maxPortfolio)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestApply_GrantsWithinHeadroom(t *testing.T) {
	m := newTestManager(t, 0.5)

	if got := m.Apply("600000", model.Buy, 0.3); got != 0.3 {
		t.Errorf("first grant = %v, want 0.3", got)
	}
	// Only 0.2 of headroom remains.
	if got := m.Apply("000858", model.Buy, 0.4); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("capped grant = %v, want 0.2", got)
	}
	if total := m.Allocated(); math.Abs(total-0.5) > 1e-9 {
		t.Errorf("allocated = %v, want 0.5", total)
	}
}

func TestApply_SellReleasesAllocation(t *testing.T) {
	m := newTestManager(t, 0.5)
	m.Apply("600000", model.Buy, 0.3)
	m.Apply("000858", model.Buy, 0.4)

	if got := m.Apply("600000", model.Sell, 0.3); got != 0 {
		t.Errorf("sell grant = %v, want 0", got)
	}
	// The freed headroom lets the second symbol size up on re-application.
	if got := m.Apply("000858", model.Buy, 0.4); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("regrant = %v, want full 0.4", got)
	}
}

func TestApply_ReapplySameSymbolDoesNotDoubleCount(t *testing.T) {
	m := newTestManager(t, 0.5)
	m.Apply("600000", model.Buy, 0.3)
	if got := m.Apply("600000", model.Buy, 0.4); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("resize = %v, want 0.4 (own allocation counts as headroom)", got)
	}
	if total := m.Allocated(); math.Abs(total-0.4) > 1e-9 {
		t.Errorf("allocated = %v, want 0.4", total)
	}
}

func TestStatePersistsAcrossManagers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	m1, err := NewManager(path, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	m1.Apply("600000", model.Buy, 0.25)

	m2, err := NewManager(path, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	state := m2.GetState()
	if f := state.Positions["600000"]; math.Abs(f-0.25) > 1e-9 {
		t.Errorf("reloaded position = %v, want 0.25", f)
	}
}

func TestGetState_ReturnsCopy(t *testing.T) {
	m := newTestManager(t, 0.5)
	m.Apply("600000", model.Buy, 0.2)
	state := m.GetState()
	state.Positions["600000"] = 99
	if f := m.GetState().Positions["600000"]; f != 0.2 {
		t.Errorf("internal state mutated through the copy, got %v", f)
	}
}
