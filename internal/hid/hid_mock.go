package hid

import (
	"context"
	"sync"
)

// MockDevice is a scripted in-memory Device for tests. A Handler, when set,
// maps each written report to zero or more input reports; Emit injects
// unsolicited reports (e.g. stale responses from an abandoned read).
type MockDevice struct {
	mu      sync.Mutex
	writes  [][]byte
	reports chan []byte

	Handler func(report []byte) [][]byte
}

func NewMockDevice() *MockDevice {
	return &MockDevice{
		reports: make(chan []byte, 64),
	}
}

func (m *MockDevice) Close() error { return nil }

func (m *MockDevice) WriteReport(_ context.Context, report []byte) error {
	m.mu.Lock()
	w := make([]byte, len(report))
	copy(w, report)
	m.writes = append(m.writes, w)
	handler := m.Handler
	m.mu.Unlock()

	if handler != nil {
		for _, resp := range handler(w) {
			m.reports <- resp
		}
	}
	return nil
}

func (m *MockDevice) PollReports(ctx context.Context) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case r := <-m.reports:
				select {
				case out <- r:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Emit queues an input report as if the device had sent it unprompted.
func (m *MockDevice) Emit(report []byte) {
	m.reports <- report
}

// Writes returns a copy of every report written so far.
func (m *MockDevice) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}
