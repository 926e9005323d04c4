package via

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Session is the capability snapshot negotiated with a keyboard. The values
// are immutable for the lifetime of a connection; re-probe after reconnect.
type Session struct {
	ProtocolVersion uint16
	FirmwareVersion uint32
	Uptime          time.Duration
	LayoutOptions   uint32
	LayerCount      uint8
	MacroCount      uint8
	MacroBufferSize uint16
}

// Probe queries everything the firmware will answer. Commands the firmware
// does not implement leave their field zero; only transport-level failures
// abort the probe.
func (c *Client) Probe(ctx context.Context) (*Session, error) {
	s := &Session{}

	steps := []struct {
		name string
		run  func() error
	}{
		{"protocol version", func() (err error) { s.ProtocolVersion, err = c.ProtocolVersion(ctx); return }},
		{"firmware version", func() (err error) { s.FirmwareVersion, err = c.FirmwareVersion(ctx); return }},
		{"uptime", func() (err error) { s.Uptime, err = c.Uptime(ctx); return }},
		{"layout options", func() (err error) { s.LayoutOptions, err = c.LayoutOptions(ctx); return }},
		{"layer count", func() (err error) { s.LayerCount, err = c.LayerCount(ctx); return }},
		{"macro count", func() (err error) { s.MacroCount, err = c.MacroCount(ctx); return }},
		{"macro buffer size", func() (err error) { s.MacroBufferSize, err = c.MacroBufferSize(ctx); return }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			if errors.Is(err, ErrUnhandled) || errors.Is(err, ErrMalformed) {
				slog.Debug("probe step unsupported", slog.String("step", step.name), slog.Any("error", err))
				continue
			}
			return nil, fmt.Errorf("probe %s: %w", step.name, err)
		}
	}
	return s, nil
}
