// Package input turns raw window events into controller actions.
package input

import (
	"chessbot/src/game"
	"chessbot/src/view"
	"fmt"
)

type EventKind int

const (
	PointerDown EventKind = iota
	PointerUp
	PointerMove
	Wheel
	Resize
	Close
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	case PointerMove:
		return "pointer-move"
	case Wheel:
		return "wheel"
	case Resize:
		return "resize"
	case Close:
		return "close"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event carries pixel coordinates for pointer and wheel events, the new size
// for Resize and the scroll direction in DY for Wheel.
type Event struct {
	Kind EventKind
	X, Y int
	W, H int
	DY   int
}

// LayoutSource is asked for fresh geometry on every event.
type LayoutSource interface {
	Layout() view.Layout
}

type Dispatcher struct {
	src      LayoutSource
	dragging bool
}

func NewDispatcher(src LayoutSource) *Dispatcher {
	return &Dispatcher{src: src}
}

func (d *Dispatcher) Dragging() bool { return d.dragging }

// Dispatch maps one event to at most one action.
func (d *Dispatcher) Dispatch(ev Event) (game.Action, bool) {
	switch ev.Kind {
	case Resize:
		return game.Resize{W: ev.W, H: ev.H}, true
	case Close:
		d.dragging = false
		return game.Quit{}, true
	case PointerUp:
		d.dragging = false
		return nil, false
	case PointerMove:
		if !d.dragging {
			return nil, false
		}
		return game.DragSlider{X: ev.X}, true
	case PointerDown:
		return d.pointerDown(ev.X, ev.Y)
	case Wheel:
		l := d.src.Layout()
		if ev.DY == 0 || !l.InSlider(ev.X, ev.Y) {
			return nil, false
		}
		step := 1
		if ev.DY < 0 {
			step = -1
		}
		return game.SetDifficulty{Value: l.Slider.Value + step}, true
	}
	return nil, false
}

func (d *Dispatcher) pointerDown(x, y int) (game.Action, bool) {
	l := d.src.Layout()
	if sq, ok := l.SquareAt(x, y); ok {
		return game.SelectSquare{Square: sq}, true
	}
	if id, ok := l.ButtonAt(x, y); ok {
		return game.ClickButton{Button: id}, true
	}
	if l.InSlider(x, y) {
		d.dragging = true
		return game.DragSlider{X: x}, true
	}
	return nil, false
}
