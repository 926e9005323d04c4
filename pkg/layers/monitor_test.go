package layers

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/viawatch/viawatch/internal/hid"
	"github.com/viawatch/viawatch/pkg/keymap"
	"github.com/viawatch/viawatch/pkg/via"
)

// matrixScript serves switch-matrix queries from a fixed snapshot sequence,
// holding the last snapshot once exhausted.
type matrixScript struct {
	mu    sync.Mutex
	steps [][]byte
	pos   int
}

func (s *matrixScript) handle(w []byte) [][]byte {
	if w[0] != 0x02 || w[1] != 0x03 {
		resp := make([]byte, hid.ReportSize)
		resp[0] = 0xFF
		return [][]byte{resp}
	}

	s.mu.Lock()
	snapshot := s.steps[s.pos]
	if s.pos < len(s.steps)-1 {
		s.pos++
	}
	s.mu.Unlock()

	resp := make([]byte, hid.ReportSize)
	resp[0] = w[0]
	resp[1] = w[1]
	resp[2] = w[2]
	copy(resp[3:], snapshot)
	return [][]byte{resp}
}

func TestMonitorEndToEnd(t *testing.T) {
	// One row, 8 columns. Column 0 is MO(2) on layer 0.
	data := make([]byte, 0, 3*8*2)
	for layer := 0; layer < 3; layer++ {
		for col := 0; col < 8; col++ {
			var code uint16
			if layer == 0 && col == 0 {
				code = 0x5222
			}
			data = binary.BigEndian.AppendUint16(data, code)
		}
	}
	tbl, err := keymap.FromWire(data, 3, 1, 8)
	if err != nil {
		t.Fatalf("FromWire: %v", err)
	}

	script := &matrixScript{steps: [][]byte{
		{0x00}, // idle
		{0x01}, // MO(2) down
		{0x00}, // MO(2) up
	}}
	dev := hid.NewMockDevice()
	dev.Handler = script.handle

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := via.NewClient(ctx, dev)
	client.DrainTimeout = time.Millisecond

	monitor := NewMonitor(client, NewTracker(tbl, 0), 1, 8)
	monitor.Interval = 2 * time.Millisecond

	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	var got []uint8
	deadline := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case change := <-monitor.Changes():
			got = append(got, change.Layer)
		case <-deadline:
			t.Fatalf("timed out, changes so far: %v", got)
		}
	}
	if got[0] != 2 || got[1] != 0 {
		t.Fatalf("layer changes = %v, want [2 0]", got)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}

func TestMonitorGivesUpAfterRepeatedFailures(t *testing.T) {
	dev := hid.NewMockDevice() // never responds
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := via.NewClient(ctx, dev)
	client.Timeout = 2 * time.Millisecond
	client.DrainTimeout = time.Millisecond

	tbl, err := keymap.FromWire(make([]byte, 16), 1, 1, 8)
	if err != nil {
		t.Fatalf("FromWire: %v", err)
	}
	monitor := NewMonitor(client, NewTracker(tbl, 0), 1, 8)
	monitor.Interval = time.Millisecond

	if err := monitor.Run(ctx); !errors.Is(err, via.ErrDeviceLost) {
		t.Fatalf("Run returned %v, want ErrDeviceLost", err)
	}

	// The changes channel is closed on exit.
	if _, ok := <-monitor.Changes(); ok {
		t.Fatal("changes channel still open")
	}
}
