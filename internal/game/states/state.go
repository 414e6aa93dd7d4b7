// Package states implements UI state management.
package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/logger"
	"github.com/Faultbox/midgard-ui/internal/ui"
)

// State is one screen of the client (login flow, in game). A state only
// seeds the panels it starts with; everything else happens through the
// registry.
type State interface {
	// Name identifies the state in logs.
	Name() string

	// Enter is called when entering this state, on an empty registry.
	Enter(r *ui.Registry) error

	// Exit is called when leaving this state, before the registry is cleared.
	Exit(r *ui.Registry) error

	// Update is called every tick after the command queue was drained.
	Update(dt float64) error
}

// Manager manages state transitions.
type Manager struct {
	reg     *ui.Registry
	current State
	next    State
	log     *zap.Logger
}

// NewManager creates a state manager driving reg.
func NewManager(reg *ui.Registry) *Manager {
	return &Manager{reg: reg, log: logger.Named("states")}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Pending reports whether a state change is scheduled.
func (m *Manager) Pending() bool {
	return m.next != nil
}

// Change schedules a state change for the next Update. Calling it twice
// before Update keeps the last state.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates the current state.
func (m *Manager) Update(dt float64) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(m.reg); err != nil {
				return err
			}
		}
		// Every panel of the previous state goes, along with focus, drag
		// and icon references.
		m.reg.Clear()

		m.log.Info("state changed", zap.String("from", name(m.current)), zap.String("to", m.next.Name()))
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(m.reg); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

func name(s State) string {
	if s == nil {
		return "none"
	}
	return s.Name()
}
