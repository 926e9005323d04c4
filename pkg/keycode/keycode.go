// Package keycode decodes 16-bit QMK keycodes into structured descriptors.
// The 16-bit space is partitioned into disjoint numeric ranges; Decode is
// total over it, with Unknown as an explicit variant rather than a silent
// fallback.
package keycode

import (
	"fmt"
	"strings"
)

// Kind identifies which numeric range a keycode falls in.
type Kind uint8

const (
	KindBasic Kind = iota
	KindModified
	KindModTap
	KindLayerTap
	KindLayer
	KindMacro
	KindRGB
	KindVendor
	KindUnknown
)

// Mods is the modifier bitfield carried by Modified and Mod-Tap keycodes
// (bits 8-12 of the raw code).
type Mods uint8

const (
	ModCtrl  Mods = 0x01
	ModShift Mods = 0x02
	ModAlt   Mods = 0x04
	ModGUI   Mods = 0x08
	ModRight Mods = 0x10
)

func (m Mods) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "LCTL")
	}
	if m&ModShift != 0 {
		parts = append(parts, "LSFT")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "LALT")
	}
	if m&ModGUI != 0 {
		parts = append(parts, "LGUI")
	}
	if m&ModRight != 0 {
		parts = append(parts, "RCTL")
	}
	return strings.Join(parts, "+")
}

// LayerAction is the layer-control semantics of a keycode, for the layer
// resolution state machine.
type LayerAction uint8

const (
	LayerNone LayerAction = iota
	LayerMomentary
	LayerToggle
	LayerSetDefault
	LayerOneShot
	LayerTapToggle
	LayerAbsolute
)

func (a LayerAction) String() string {
	switch a {
	case LayerMomentary:
		return "MO"
	case LayerToggle:
		return "TG"
	case LayerSetDefault:
		return "DF"
	case LayerOneShot:
		return "OSL"
	case LayerTapToggle:
		return "TT"
	case LayerAbsolute:
		return "TO"
	}
	return ""
}

// Descriptor is the structured decoding of one keycode. Name is always a
// human-readable rendering; the remaining fields are populated per Kind.
type Descriptor struct {
	Raw    uint16
	Kind   Kind
	Name   string
	Mods   Mods        // Modified, ModTap
	Base   uint16      // Modified, ModTap, LayerTap: low-byte base keycode
	Layer  uint8       // LayerTap, Layer
	Action LayerAction // Layer
	Macro  uint8       // Macro
}

// Decode maps a keycode to its descriptor. Ranges are checked in ascending
// specificity; exactly one arm matches any value.
func Decode(code uint16) Descriptor {
	if name, ok := basicNames[code]; ok {
		return Descriptor{Raw: code, Kind: KindBasic, Name: name}
	}

	switch {
	case code >= 0x0100 && code <= 0x1FFF:
		mods := Mods(code>>8) & 0x1F
		base := code & 0xFF
		return Descriptor{
			Raw:  code,
			Kind: KindModified,
			Name: fmt.Sprintf("%s(%s)", mods, baseName(base)),
			Mods: mods,
			Base: base,
		}

	case code >= 0x2000 && code <= 0x3FFF:
		mods := Mods(code>>8) & 0x1F
		base := code & 0xFF
		return Descriptor{
			Raw:  code,
			Kind: KindModTap,
			Name: fmt.Sprintf("MT(%s,%s)", mods, baseName(base)),
			Mods: mods,
			Base: base,
		}

	case code >= 0x4000 && code <= 0x4FFF:
		layer := uint8(code>>8) & 0x0F
		base := code & 0xFF
		return Descriptor{
			Raw:   code,
			Kind:  KindLayerTap,
			Name:  fmt.Sprintf("LT(%d,%s)", layer, baseName(base)),
			Layer: layer,
			Base:  base,
		}
	}

	if action, layer := ClassifyLayerKey(code); action != LayerNone {
		return Descriptor{
			Raw:    code,
			Kind:   KindLayer,
			Name:   fmt.Sprintf("%s(%d)", action, layer),
			Layer:  layer,
			Action: action,
		}
	}

	switch {
	case code >= 0x7700 && code <= 0x777F:
		id := uint8(code & 0x7F)
		return Descriptor{
			Raw:   code,
			Kind:  KindMacro,
			Name:  fmt.Sprintf("M%d", id),
			Macro: id,
		}

	case code >= 0x7800 && code <= 0x78FF:
		offset := uint8(code - 0x7800)
		name, ok := rgbNames[offset]
		if !ok {
			name = fmt.Sprintf("RGB(0x%02X)", offset)
		}
		return Descriptor{Raw: code, Kind: KindRGB, Name: name}
	}

	if name, ok := vendorNames[code]; ok {
		return Descriptor{Raw: code, Kind: KindVendor, Name: name}
	}

	return Descriptor{Raw: code, Kind: KindUnknown, Name: fmt.Sprintf("0x%04X", code)}
}

// ClassifyLayerKey reports the layer-control semantics of a keycode, or
// LayerNone for everything that is not a layer-control key. The layer number
// is the low 5 bits.
func ClassifyLayerKey(code uint16) (LayerAction, uint8) {
	layer := uint8(code & 0x1F)
	switch {
	case code >= 0x5200 && code <= 0x521F:
		return LayerAbsolute, layer
	case code >= 0x5220 && code <= 0x523F:
		return LayerMomentary, layer
	case code >= 0x5240 && code <= 0x525F:
		return LayerSetDefault, layer
	case code >= 0x5260 && code <= 0x527F:
		return LayerToggle, layer
	case code >= 0x5280 && code <= 0x529F:
		return LayerOneShot, layer
	case code >= 0x52C0 && code <= 0x52DF:
		return LayerTapToggle, layer
	}
	return LayerNone, 0
}

func baseName(base uint16) string {
	if name, ok := basicNames[base]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", base)
}
