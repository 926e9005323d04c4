package keymap

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/viawatch/viawatch/internal/hid"
	"github.com/viawatch/viawatch/pkg/via"
)

// wire flattens keycodes into the big-endian on-device layout.
func wire(codes ...uint16) []byte {
	out := make([]byte, len(codes)*2)
	for i, c := range codes {
		binary.BigEndian.PutUint16(out[i*2:], c)
	}
	return out
}

func TestFromWire(t *testing.T) {
	// 2 layers, 1 row, 2 cols.
	tbl, err := FromWire(wire(0x0004, 0x0005, 0x001E, 0x0001), 2, 1, 2)
	if err != nil {
		t.Fatalf("FromWire: %v", err)
	}

	tests := []struct {
		layer, row, col int
		want            uint16
	}{
		{0, 0, 0, 0x0004},
		{0, 0, 1, 0x0005},
		{1, 0, 0, 0x001E},
		{1, 0, 1, 0x0001},
		{2, 0, 0, 0}, // out of range reads KC_NO
		{0, 1, 0, 0},
		{0, 0, 2, 0},
	}
	for _, tt := range tests {
		if got := tbl.At(tt.layer, tt.row, tt.col); got != tt.want {
			t.Errorf("At(%d,%d,%d) = 0x%04X, want 0x%04X",
				tt.layer, tt.row, tt.col, got, tt.want)
		}
	}
}

func TestFromWireRejectsWrongLength(t *testing.T) {
	if _, err := FromWire(make([]byte, 7), 2, 1, 2); err == nil {
		t.Fatal("7 bytes for a 8-byte keymap accepted")
	}
	if _, err := FromWire(make([]byte, 10), 2, 1, 2); err == nil {
		t.Fatal("10 bytes for a 8-byte keymap accepted")
	}
	if _, err := FromWire(nil, 0, 1, 2); err == nil {
		t.Fatal("zero layers accepted")
	}
}

func TestEffectiveAtResolvesTransparent(t *testing.T) {
	// Layer 0 KC_A; layer 1 transparent; layer 2 KC_B.
	tbl, err := FromWire(wire(0x0004, Transparent, 0x0005), 3, 1, 1)
	if err != nil {
		t.Fatalf("FromWire: %v", err)
	}

	if got := tbl.EffectiveAt(1, 0, 0); got != 0x0004 {
		t.Errorf("EffectiveAt(1) = 0x%04X, want KC_A", got)
	}
	if got := tbl.EffectiveAt(2, 0, 0); got != 0x0005 {
		t.Errorf("EffectiveAt(2) = 0x%04X, want KC_B", got)
	}
	if got := tbl.EffectiveAt(0, 0, 0); got != 0x0004 {
		t.Errorf("EffectiveAt(0) = 0x%04X, want KC_A", got)
	}
}

func TestLoadReadsBufferInChunks(t *testing.T) {
	// 2 layers x 4 rows x 4 cols = 64 bytes, three chunked requests.
	const layers, rows, cols = 2, 4, 4
	data := wire(func() []uint16 {
		codes := make([]uint16, layers*rows*cols)
		for i := range codes {
			codes[i] = uint16(i)
		}
		return codes
	}()...)

	dev := hid.NewMockDevice()
	dev.Handler = func(w []byte) [][]byte {
		offset := int(w[1])<<8 | int(w[2])
		size := int(w[3])
		resp := make([]byte, hid.ReportSize)
		resp[0] = w[0]
		copy(resp[1:4], w[1:4])
		copy(resp[4:], data[offset:offset+size])
		return [][]byte{resp}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := via.NewClient(ctx, dev)
	client.DrainTimeout = time.Millisecond

	tbl, err := Load(ctx, client, layers, rows, cols)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 0; i < layers*rows*cols; i++ {
		layer := i / (rows * cols)
		row := i / cols % rows
		col := i % cols
		if got := tbl.At(layer, row, col); got != uint16(i) {
			t.Fatalf("At(%d,%d,%d) = %d, want %d", layer, row, col, got, i)
		}
	}
	if n := len(dev.Writes()); n != 3 {
		t.Fatalf("got %d buffer requests, want 3", n)
	}
}
