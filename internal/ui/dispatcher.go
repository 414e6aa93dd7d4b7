package ui

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ui/internal/logger"
)

// Dispatcher routes raw input to panels held by a Registry.
//
// Pointer events go, in order of priority, to the panel being dragged, to
// the icon being dragged, then to the topmost panel under the pointer.
// Keys go to the topmost modal panel if there is one, otherwise to the
// focused panel.
type Dispatcher struct {
	reg    *Registry
	cursor Point
	log    *zap.Logger
}

// NewDispatcher creates a dispatcher for reg.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg, log: logger.Named("input")}
}

// Cursor returns the last pointer position seen.
func (d *Dispatcher) Cursor() Point { return d.cursor }

// SendCursor routes a pointer event and returns the resulting cursor hint.
func (d *Dispatcher) SendCursor(clicked bool, pos Point) CursorState {
	d.cursor = pos
	router := &d.reg.router
	d.adoptDrag()

	if t, _ := router.Dragged(); t != None {
		if p := d.reg.slots.Get(t); p != nil && p.IsActive() {
			state := p.SendCursor(clicked, pos)
			if dp, ok := p.(Draggable); !ok || !dp.IsDragging() {
				router.EndDrag()
				d.log.Debug("drag ended", zap.Stringer("type", t))
			}
			return state
		}
		router.EndDrag()
	}

	if icon := router.Icon(); icon != nil {
		if clicked {
			icon.MoveTo(pos)
			return CursorGrabbing
		}
		if target := d.reg.GetFrontAt(pos); target != nil {
			target.SendIcon(icon, pos)
		} else if icon.OnStage != nil {
			d.reg.Post(icon.OnStage)
		}
		router.DropIcon()
		return CursorIdle
	}

	front := d.reg.GetFrontAt(pos)
	d.reg.slots.ForEachActive(func(_ PanelType, p Panel) {
		if p != front {
			p.RemoveCursor(clicked, pos)
		}
	})
	if front == nil {
		return CursorIdle
	}

	if clicked && front.Type().Traits().Focused {
		router.RequestFocus(front.Type())
	}
	state := front.SendCursor(clicked, pos)
	if dp, ok := front.(Draggable); ok && dp.IsDragging() {
		router.StartDrag(front.Type(), dp.GrabOffset())
		d.log.Debug("drag started", zap.Stringer("type", front.Type()))
	}
	if icon := router.Icon(); icon != nil {
		icon.MoveTo(pos)
	}
	return state
}

// SendKey routes a key event and reports whether a panel received it.
func (d *Dispatcher) SendKey(code KeyCode, pressed bool) bool {
	if p := d.target(); p != nil {
		p.SendKey(code, pressed)
		return true
	}
	return false
}

// SendText routes typed text like SendKey.
func (d *Dispatcher) SendText(text string) bool {
	if p := d.target(); p != nil {
		p.SendText(text)
		return true
	}
	return false
}

// SendScroll forwards a wheel event to the topmost panel under the pointer.
func (d *Dispatcher) SendScroll(offset float64) bool {
	if p := d.reg.GetFrontAt(d.cursor); p != nil {
		p.SendScroll(offset)
		return true
	}
	return false
}

// DoubleClick forwards to the topmost panel under pos.
func (d *Dispatcher) DoubleClick(pos Point) bool {
	if p := d.reg.GetFrontAt(pos); p != nil {
		p.DoubleClick(pos)
		return true
	}
	return false
}

// RightClick forwards to the topmost panel under pos.
func (d *Dispatcher) RightClick(pos Point) bool {
	if p := d.reg.GetFrontAt(pos); p != nil {
		p.RightClick(pos)
		return true
	}
	return false
}

// adoptDrag picks up a drag that a panel started on its own, for example
// through StartDrag called by game code.
func (d *Dispatcher) adoptDrag() {
	router := &d.reg.router
	if t, _ := router.Dragged(); t != None {
		return
	}
	d.reg.slots.Reverse(func(t PanelType, p Panel) bool {
		if dp, ok := p.(Draggable); ok && dp.IsDragging() {
			router.StartDrag(t, dp.GrabOffset())
			return false
		}
		return true
	})
}

func (d *Dispatcher) target() Panel {
	if modal := d.reg.Modal(); modal != nil {
		return modal
	}
	if t := d.reg.Focused(); t != None {
		return d.reg.slots.Get(t)
	}
	return nil
}
