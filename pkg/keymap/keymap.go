// Package keymap holds the decoded per-layer key table read from a keyboard.
package keymap

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/viawatch/viawatch/pkg/keycode"
	"github.com/viawatch/viawatch/pkg/via"
)

// Transparent is the keycode that defers to the next lower layer.
const Transparent = 0x0001

// Table is the [layer][row][col] -> keycode mapping. Immutable once loaded.
type Table struct {
	Layers int
	Rows   int
	Cols   int

	codes []uint16
}

// FromWire parses the flat big-endian keymap buffer. The buffer must be
// exactly layers*rows*cols*2 bytes; a keymap assembled from an aborted
// chunked read is never valid.
func FromWire(data []byte, layers, rows, cols int) (*Table, error) {
	if layers <= 0 || rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid keymap dimensions %dx%dx%d", layers, rows, cols)
	}
	want := layers * rows * cols * 2
	if len(data) != want {
		return nil, fmt.Errorf("keymap buffer is %d bytes, want %d for %dx%dx%d",
			len(data), want, layers, rows, cols)
	}

	codes := make([]uint16, 0, layers*rows*cols)
	for i := 0; i < len(data); i += 2 {
		codes = append(codes, binary.BigEndian.Uint16(data[i:i+2]))
	}
	return &Table{Layers: layers, Rows: rows, Cols: cols, codes: codes}, nil
}

// Load reads the whole keymap through the chunked buffer command.
func Load(ctx context.Context, c *via.Client, layers, rows, cols int) (*Table, error) {
	data, err := c.ReadKeymapBuffer(ctx, layers*rows*cols*2)
	if err != nil {
		return nil, err
	}
	return FromWire(data, layers, rows, cols)
}

// LoadSlow reads the keymap one key at a time through the single-keycode
// command. Much slower; useful to cross-check the buffer path.
func LoadSlow(ctx context.Context, c *via.Client, layers, rows, cols int) (*Table, error) {
	codes := make([]uint16, 0, layers*rows*cols)
	for layer := 0; layer < layers; layer++ {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				code, err := c.Keycode(ctx, uint8(layer), uint8(row), uint8(col))
				if err != nil {
					return nil, fmt.Errorf("read key %d,%d,%d: %w", layer, row, col, err)
				}
				codes = append(codes, code)
			}
		}
	}
	return &Table{Layers: layers, Rows: rows, Cols: cols, codes: codes}, nil
}

// At returns the keycode at (layer, row, col); out-of-range positions read
// as KC_NO.
func (t *Table) At(layer, row, col int) uint16 {
	if layer < 0 || layer >= t.Layers || row < 0 || row >= t.Rows || col < 0 || col >= t.Cols {
		return 0
	}
	return t.codes[(layer*t.Rows+row)*t.Cols+col]
}

// EffectiveAt resolves transparent keys by walking down through lower layers,
// the way the firmware would. Returns KC_TRNS only if every layer below is
// transparent too.
func (t *Table) EffectiveAt(layer, row, col int) uint16 {
	for l := layer; l >= 0; l-- {
		if code := t.At(l, row, col); code != Transparent {
			return code
		}
	}
	return Transparent
}

// Describe decodes one layer into descriptors, indexed [row][col].
func (t *Table) Describe(layer int) [][]keycode.Descriptor {
	out := make([][]keycode.Descriptor, t.Rows)
	for row := 0; row < t.Rows; row++ {
		out[row] = make([]keycode.Descriptor, t.Cols)
		for col := 0; col < t.Cols; col++ {
			out[row][col] = keycode.Decode(t.At(layer, row, col))
		}
	}
	return out
}
