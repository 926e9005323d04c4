package layers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/viawatch/viawatch/pkg/matrix"
	"github.com/viawatch/viawatch/pkg/via"
)

const (
	defaultInterval     = 20 * time.Millisecond
	defaultFailureLimit = 5
	changeBuffer        = 16
)

// Monitor polls the switch matrix on a fixed interval and feeds the diffed
// events through a Tracker, publishing layer changes on a channel.
type Monitor struct {
	client  *via.Client
	tracker *Tracker
	rows    int
	cols    int

	// Interval is the polling period. Defaults to 20ms.
	Interval time.Duration
	// FailureLimit is how many consecutive poll failures are tolerated
	// before the monitor gives up on the device.
	FailureLimit int

	changes chan Change
}

// NewMonitor wires a client and tracker for a rows x cols matrix.
func NewMonitor(client *via.Client, tracker *Tracker, rows, cols int) *Monitor {
	return &Monitor{
		client:       client,
		tracker:      tracker,
		rows:         rows,
		cols:         cols,
		Interval:     defaultInterval,
		FailureLimit: defaultFailureLimit,
		changes:      make(chan Change, changeBuffer),
	}
}

// Changes delivers layer transitions. The channel is closed when Run returns.
func (m *Monitor) Changes() <-chan Change { return m.changes }

// Tracker exposes the underlying tracker for direct state queries.
func (m *Monitor) Tracker() *Tracker { return m.tracker }

// Run polls until the context is cancelled or the device is lost. Changes
// are dropped rather than blocking the poll loop if the consumer lags.
func (m *Monitor) Run(ctx context.Context) error {
	defer close(m.changes)

	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	var prev matrix.Grid
	failures := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		raw, err := m.client.SwitchMatrixState(ctx, m.rows, m.cols)
		if err != nil {
			if errors.Is(err, via.ErrDeviceLost) {
				return err
			}
			failures++
			slog.Debug("matrix poll failed",
				slog.Int("failures", failures),
				slog.Any("error", err))
			if failures >= m.FailureLimit {
				return fmt.Errorf("%w: %d consecutive matrix polls failed", via.ErrDeviceLost, failures)
			}
			continue
		}
		failures = 0

		grid := matrix.Decode(raw, m.rows, m.cols)
		for _, ev := range grid.Diff(prev) {
			change, moved := m.tracker.Handle(ev)
			if !moved {
				continue
			}
			select {
			case m.changes <- change:
			default:
				slog.Warn("layer change dropped, consumer lagging",
					slog.Int("layer", int(change.Layer)))
			}
		}
		prev = grid
	}
}
