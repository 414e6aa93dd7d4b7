package ui

// SlotTable maps each PanelType to at most one owned panel. Iteration
// follows declaration order, which is also draw order.
type SlotTable struct {
	slots [NumTypes]Panel
}

// Set installs p in slot t. A previous occupant is destroyed first.
func (s *SlotTable) Set(t PanelType, p Panel) {
	if !t.Valid() {
		return
	}
	old := s.slots[t]
	s.slots[t] = p
	if old != nil && old != p {
		destroy(old)
	}
}

// Get returns the panel in slot t, or nil when the slot is empty.
func (s *SlotTable) Get(t PanelType) Panel {
	if !t.Valid() {
		return nil
	}
	return s.slots[t]
}

// Erase destroys and empties slot t. It reports whether a panel was removed.
func (s *SlotTable) Erase(t PanelType) bool {
	if !t.Valid() || s.slots[t] == nil {
		return false
	}
	old := s.slots[t]
	s.slots[t] = nil
	destroy(old)
	return true
}

// ForEach visits every occupied slot back to front.
func (s *SlotTable) ForEach(fn func(PanelType, Panel)) {
	for t := None + 1; t < NumTypes; t++ {
		if p := s.slots[t]; p != nil {
			fn(t, p)
		}
	}
}

// ForEachActive visits occupied slots holding an active panel, back to front.
func (s *SlotTable) ForEachActive(fn func(PanelType, Panel)) {
	s.ForEach(func(t PanelType, p Panel) {
		if p.IsActive() {
			fn(t, p)
		}
	})
}

// Reverse visits active panels front to back until fn returns false.
func (s *SlotTable) Reverse(fn func(PanelType, Panel) bool) {
	for t := NumTypes - 1; t > None; t-- {
		p := s.slots[t]
		if p == nil || !p.IsActive() {
			continue
		}
		if !fn(t, p) {
			return
		}
	}
}

// Len returns the number of occupied slots.
func (s *SlotTable) Len() int {
	n := 0
	for _, p := range s.slots {
		if p != nil {
			n++
		}
	}
	return n
}

func destroy(p Panel) {
	if c, ok := p.(Closer); ok {
		c.Close()
	}
}
