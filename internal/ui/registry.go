package ui

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/logger"
)

// Registry owns every panel and is the only mutation surface for UI state.
// All methods except Post must be called from the UI tick goroutine.
type Registry struct {
	slots  SlotTable
	router FocusRouter
	queue  Queue
	log    *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{log: logger.Named("ui")}
}

// Emplace installs p in its slot, destroying any previous panel of the same
// type, activates it and gives it focus when its type asks for focus.
func (r *Registry) Emplace(p Panel) Panel {
	t := p.Type()
	if !t.Valid() {
		r.log.Warn("panel with invalid type ignored", zap.Stringer("type", t))
		return nil
	}

	if r.slots.Get(t) != nil {
		r.router.ClearIf(t)
	}
	r.slots.Set(t, p)
	p.MakeActive()

	if t.Traits().Focused {
		r.router.RequestFocus(t)
	}

	r.log.Debug("panel created", zap.Stringer("type", t))
	return p
}

// Toggle flips an existing panel of a toggled type. When the slot is empty
// or the type is not toggled, the panel built by create is emplaced.
func (r *Registry) Toggle(t PanelType, create func() Panel) Panel {
	if existing := r.slots.Get(t); existing != nil && t.Traits().Toggled {
		existing.ToggleActive()
		if existing.IsActive() {
			if t.Traits().Focused {
				r.router.RequestFocus(t)
			}
		} else {
			r.router.ClearIf(t)
		}
		return existing
	}
	if create == nil {
		return nil
	}
	return r.Emplace(create())
}

// Get returns the panel of type t, or nil.
func (r *Registry) Get(t PanelType) Panel {
	return r.slots.Get(t)
}

// Remove destroys the panel of type t. Focus, drag and icon references to
// it are cleared in the same call.
func (r *Registry) Remove(t PanelType) {
	r.router.ClearIf(t)
	if r.slots.Erase(t) {
		r.log.Debug("panel removed", zap.Stringer("type", t))
	}
}

// GetFront returns the topmost active panel among types, or nil.
func (r *Registry) GetFront(types ...PanelType) Panel {
	var front Panel
	r.slots.Reverse(func(t PanelType, p Panel) bool {
		for _, want := range types {
			if t == want {
				front = p
				return false
			}
		}
		return true
	})
	return front
}

// GetFrontAt returns the topmost active panel whose range contains pos.
// While a modal panel is active only modal panels are considered.
func (r *Registry) GetFrontAt(pos Point) Panel {
	modal := r.hasModal()
	var front Panel
	r.slots.Reverse(func(t PanelType, p Panel) bool {
		if modal && !t.IsModal() {
			return true
		}
		if p.IsInRange(pos) {
			front = p
			return false
		}
		return true
	})
	return front
}

// Modal returns the topmost active modal panel, or nil.
func (r *Registry) Modal() Panel {
	var front Panel
	r.slots.Reverse(func(t PanelType, p Panel) bool {
		if t.IsModal() {
			front = p
			return false
		}
		return true
	})
	return front
}

func (r *Registry) hasModal() bool {
	return r.Modal() != nil
}

// Focus requests keyboard focus for t.
func (r *Registry) Focus(t PanelType) {
	r.router.RequestFocus(t)
}

// Focused returns the focused type. When the focused panel is gone or
// inactive, focus moves to the topmost active panel with the Focused trait,
// or is cleared when there is none.
func (r *Registry) Focused() PanelType {
	t := r.router.Focused()
	if t != None {
		if p := r.slots.Get(t); p != nil && p.IsActive() {
			return t
		}
		r.router.ClearFocus()
	}
	r.slots.Reverse(func(pt PanelType, _ Panel) bool {
		if !pt.Traits().Focused {
			return true
		}
		r.router.RequestFocus(pt)
		return false
	})
	return r.router.Focused()
}

// DragIcon hands a dragged icon to the router.
func (r *Registry) DragIcon(icon *Icon) {
	r.router.DragIcon(icon)
}

// Router exposes the focus router for inspection. Focus is resolved first so
// the router never reports a panel that has gone away.
func (r *Registry) Router() *FocusRouter {
	r.Focused()
	return &r.router
}

// Post queues a command for the next Drain. Safe for concurrent use.
func (r *Registry) Post(cmd Command) {
	r.queue.Post(cmd)
}

// Drain applies every command posted before the call, in order. Commands
// posted while draining run on the next Drain.
func (r *Registry) Drain() int {
	cmds := r.queue.Take()
	for _, cmd := range cmds {
		cmd.Apply(r)
	}
	return len(cmds)
}

// Update advances every active panel and prunes focus on panels that
// deactivated themselves.
func (r *Registry) Update() {
	r.slots.ForEachActive(func(_ PanelType, p Panel) {
		p.Update()
	})
	r.Focused()
	if t, _ := r.router.Dragged(); t != None {
		if p := r.slots.Get(t); p == nil || !p.IsActive() {
			r.router.EndDrag()
		}
	}
	if icon := r.router.Icon(); icon != nil && icon.Source != None {
		if p := r.slots.Get(icon.Source); p == nil || !p.IsActive() {
			r.router.DropIcon()
		}
	}
}

// Draw renders active panels back to front, then the dragged icon.
func (r *Registry) Draw(c Canvas, alpha float32) {
	r.slots.ForEachActive(func(_ PanelType, p Panel) {
		p.Draw(c, alpha)
	})
	if icon := r.router.Icon(); icon != nil {
		icon.Draw(c, icon.Position(), alpha)
	}
}

// Clear destroys every panel and resets the router.
func (r *Registry) Clear() {
	r.router.Reset()
	r.slots.ForEach(func(t PanelType, _ Panel) {
		r.slots.Erase(t)
	})
}

// Len returns the number of live panels.
func (r *Registry) Len() int {
	return r.slots.Len()
}

// As returns the panel of type t converted to T.
func As[T Panel](r *Registry, t PanelType) (T, bool) {
	p, ok := r.Get(t).(T)
	return p, ok
}
