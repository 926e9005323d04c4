// Package layers reconstructs the keyboard's active layer from matrix events
// and the keymap, mirroring the firmware's momentary/toggle/default layer
// handling on the host side.
package layers

import (
	"github.com/viawatch/viawatch/pkg/keycode"
	"github.com/viawatch/viawatch/pkg/keymap"
	"github.com/viawatch/viawatch/pkg/matrix"
)

// HoldKind names why a layer sits on the hold stack.
type HoldKind string

const (
	HoldMomentary HoldKind = "MO"
	HoldOneShot   HoldKind = "OSL"
)

// Change reports a transition of the active layer.
type Change struct {
	Layer        uint8
	DefaultLayer uint8
	Stack        map[uint8]string
}

type cell struct {
	row, col int
}

// Tracker applies matrix events against a keymap to follow layer state.
// Keycodes are looked up on the layer that was active when the key went
// down, so releases resolve correctly after the layer has changed.
type Tracker struct {
	table   *keymap.Table
	current uint8
	def     uint8
	stack   map[uint8]HoldKind
	pressed map[cell]uint16
}

// NewTracker starts at the given default layer.
func NewTracker(table *keymap.Table, defaultLayer uint8) *Tracker {
	return &Tracker{
		table:   table,
		current: defaultLayer,
		def:     defaultLayer,
		stack:   make(map[uint8]HoldKind),
		pressed: make(map[cell]uint16),
	}
}

// Current returns the active layer.
func (t *Tracker) Current() uint8 { return t.current }

// DefaultLayer returns the resting layer used when no holds are active.
func (t *Tracker) DefaultLayer() uint8 { return t.def }

// Handle consumes one matrix event. It returns the resulting Change and true
// when the active layer moved.
func (t *Tracker) Handle(ev matrix.Event) (Change, bool) {
	var code uint16
	key := cell{ev.Row, ev.Col}
	if ev.Pressed {
		code = t.table.At(int(t.current), ev.Row, ev.Col)
		t.pressed[key] = code
	} else {
		code = t.pressed[key]
		delete(t.pressed, key)
	}

	prev := t.current
	action, layer := keycode.ClassifyLayerKey(code)

	switch action {
	case keycode.LayerMomentary:
		if ev.Pressed {
			t.stack[layer] = HoldMomentary
			t.current = t.stackMax()
		} else {
			delete(t.stack, layer)
			t.current = t.stackMaxOrDefault()
		}

	case keycode.LayerToggle, keycode.LayerTapToggle:
		if ev.Pressed {
			if t.current == layer {
				t.current = 0
			} else {
				t.current = layer
			}
		}

	case keycode.LayerSetDefault:
		if ev.Pressed {
			t.def = layer
			if len(t.stack) == 0 {
				t.current = layer
			}
		}

	case keycode.LayerOneShot:
		// No host-side release tracking for one-shots; the override is
		// applied immediately and cleared by the next layer key.
		if ev.Pressed {
			t.stack[layer] = HoldOneShot
			t.current = layer
		}
	}

	if t.current == prev {
		return Change{}, false
	}
	return t.change(), true
}

func (t *Tracker) change() Change {
	stack := make(map[uint8]string, len(t.stack))
	for layer, kind := range t.stack {
		stack[layer] = string(kind)
	}
	return Change{Layer: t.current, DefaultLayer: t.def, Stack: stack}
}

// Highest held layer wins when several are down at once. The hold stack
// alone decides; a toggled-in layer above every hold does not pin the
// resolution.
func (t *Tracker) stackMax() uint8 {
	max := uint8(0)
	for layer := range t.stack {
		if layer > max {
			max = layer
		}
	}
	return max
}

func (t *Tracker) stackMaxOrDefault() uint8 {
	if len(t.stack) == 0 {
		return t.def
	}
	return t.stackMax()
}
