// Package via implements the VIA configuration protocol spoken by QMK
// keyboards over their raw HID interface: fixed 32-byte command/response
// packets, exchanged strictly request/response.
package via

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/viawatch/viawatch/internal/hid"
)

const (
	// PacketSize is the wire length of every command and response.
	PacketSize = hid.ReportSize

	// maxChunk is the largest buffer-read payload that fits in one response:
	// a 32-byte packet minus the 4-byte header (command, offset, size).
	maxChunk = 28

	// responseUnhandled is echoed in byte 0 when the firmware does not
	// implement the command.
	responseUnhandled = 0xFF
)

// VIA raw HID interfaces report this usage page/usage pair.
const (
	UsagePage = 0xFF60
	Usage     = 0x61
)

var (
	ErrUnhandled   = errors.New("command unhandled by firmware")
	ErrTimeout     = errors.New("timed out waiting for response")
	ErrMalformed   = errors.New("malformed response")
	ErrPartialRead = errors.New("partial buffer read")
	ErrDeviceLost  = errors.New("device lost")
)

// Client is a half-duplex VIA session over one raw HID device. The protocol
// has no request/response tagging, so access is serialized: every Send holds
// the client for the whole round trip.
type Client struct {
	Timeout      time.Duration // per round trip (default 1s)
	DrainTimeout time.Duration // per stale-report read before a request (default 10ms)
	FailureLimit int           // consecutive transport failures before ErrDeviceLost (default 5)

	mu       sync.Mutex
	dev      hid.Device
	reports  <-chan []byte
	failures int
}

// NewClient starts reading input reports from dev. The context bounds the
// report pump; cancel it to release the reader goroutine.
func NewClient(ctx context.Context, dev hid.Device) *Client {
	return &Client{
		dev:     dev,
		reports: dev.PollReports(ctx),
	}
}

func (c *Client) Close() error {
	return c.dev.Close()
}

// Send issues one command and waits for its response packet. The response is
// always PacketSize bytes. Classification: a response echoing the command id
// is returned as data; the 0xFF sentinel yields ErrUnhandled; an id mismatch
// yields ErrMalformed; a timeout or write failure counts toward the
// consecutive-failure limit and past it wraps ErrDeviceLost.
func (c *Client) Send(ctx context.Context, command byte, params ...byte) ([]byte, error) {
	if len(params) > PacketSize-1 {
		return nil, fmt.Errorf("command 0x%02X: %d params exceed packet size", command, len(params))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The firmware does not guarantee request/response alignment if a prior
	// read was abandoned, so resynchronize by discarding anything unread.
	c.drain()

	packet := make([]byte, PacketSize)
	packet[0] = command
	copy(packet[1:], params)

	slog.Debug("sending command", slog.String("packet", EncodeReportToString(packet[:8])))
	if err := c.dev.WriteReport(ctx, packet); err != nil {
		return nil, c.fail(fmt.Errorf("write report: %w", err))
	}

	timer := time.NewTimer(c.timeout())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()

	case resp, ok := <-c.reports:
		if !ok {
			return nil, fmt.Errorf("%w: report stream closed", ErrDeviceLost)
		}
		c.failures = 0

		slog.Debug("received response", slog.String("packet", EncodeReportToString(resp)))
		if len(resp) == 0 || resp[0] == responseUnhandled {
			return nil, fmt.Errorf("%w: command 0x%02X", ErrUnhandled, command)
		}
		if resp[0] != command {
			return nil, fmt.Errorf("%w: sent 0x%02X, response echoes 0x%02X", ErrMalformed, command, resp[0])
		}
		if len(resp) < PacketSize {
			padded := make([]byte, PacketSize)
			copy(padded, resp)
			resp = padded
		}
		return resp, nil

	case <-timer.C:
		return nil, c.fail(fmt.Errorf("%w: command 0x%02X", ErrTimeout, command))
	}
}

func (c *Client) drain() {
	for {
		timer := time.NewTimer(c.drainTimeout())
		select {
		case r, ok := <-c.reports:
			timer.Stop()
			if !ok {
				return
			}
			slog.Debug("drained stale report", slog.String("packet", EncodeReportToString(r)))
		case <-timer.C:
			return
		}
	}
}

func (c *Client) fail(err error) error {
	c.failures++
	if c.failures >= c.failureLimit() {
		return fmt.Errorf("%w: %d consecutive failures, last: %w", ErrDeviceLost, c.failures, err)
	}
	return err
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return time.Second
}

func (c *Client) drainTimeout() time.Duration {
	if c.DrainTimeout > 0 {
		return c.DrainTimeout
	}
	return 10 * time.Millisecond
}

func (c *Client) failureLimit() int {
	if c.FailureLimit > 0 {
		return c.FailureLimit
	}
	return 5
}

// EncodeReportToString renders report bytes as dash-separated hex for logs.
func EncodeReportToString(b []byte) string {
	hexDigits := hex.EncodeToString(b)
	var builder strings.Builder
	for i, r := range hexDigits {
		if i > 0 && i%2 == 0 {
			builder.WriteString("-")
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
