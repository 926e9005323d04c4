package via

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"
)

// Uptime queries how long the firmware has been running.
func (c *Client) Uptime(ctx context.Context) (time.Duration, error) {
	resp, err := c.Send(ctx, cmdGetKeyboardValue, valueUptime)
	if err != nil {
		return 0, err
	}
	ms := binary.BigEndian.Uint32(resp[2:6])
	return time.Duration(ms) * time.Millisecond, nil
}

// FirmwareVersion queries the VIA firmware version word. Zero means the
// keyboard never had one set.
func (c *Client) FirmwareVersion(ctx context.Context) (uint32, error) {
	resp, err := c.Send(ctx, cmdGetKeyboardValue, valueFirmwareVersion)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(resp[2:6]), nil
}

// LayoutOptions queries the layout option bitfield.
func (c *Client) LayoutOptions(ctx context.Context) (uint32, error) {
	resp, err := c.Send(ctx, cmdGetKeyboardValue, valueLayoutOptions)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(resp[2:6]), nil
}

// SwitchMatrixState reads the bitpacked pressed/released state of the whole
// switch matrix. Matrices wider than one packet are read in batches of whole
// rows, advancing a row offset per query. The result is rows*ceil(cols/8)
// bytes, row-major, one bit per switch.
func (c *Client) SwitchMatrixState(ctx context.Context, rows, cols int) ([]byte, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid matrix dimensions %dx%d", rows, cols)
	}
	bytesPerRow := (cols + 7) / 8
	if bytesPerRow > maxChunk {
		return nil, fmt.Errorf("matrix row of %d columns does not fit one packet", cols)
	}

	state := make([]byte, 0, rows*bytesPerRow)
	for offset := 0; offset < rows; {
		rowsPerQuery := min(rows-offset, maxChunk/bytesPerRow)
		querySize := rowsPerQuery * bytesPerRow

		resp, err := c.Send(ctx, cmdGetKeyboardValue, valueSwitchMatrixState, byte(offset))
		if err != nil {
			return nil, err
		}
		// Response: command, value id, offset, then the row data.
		state = append(state, resp[3:3+querySize]...)
		offset += rowsPerQuery
	}
	return state, nil
}

// SetLayoutOptions writes the layout option bitfield.
func (c *Client) SetLayoutOptions(ctx context.Context, options uint32) error {
	var v [4]byte
	binary.BigEndian.PutUint32(v[:], options)
	_, err := c.Send(ctx, cmdSetKeyboardValue, valueLayoutOptions, v[0], v[1], v[2], v[3])
	return err
}

// SetDeviceIndication drives the VIA device-indication hook, which firmware
// typically maps to an all-LED flash.
func (c *Client) SetDeviceIndication(ctx context.Context, value byte) error {
	_, err := c.Send(ctx, cmdSetKeyboardValue, valueDeviceIndication, value)
	return err
}

// Blink identifies the keyboard by toggling device indication on and off.
// The indication value cycles 0..5, mirroring VIA's own 200ms cadence.
func (c *Client) Blink(ctx context.Context, times int) error {
	for i := 0; i < times*2; i++ {
		if err := c.SetDeviceIndication(ctx, byte(i%6)); err != nil {
			return err
		}
		timer := time.NewTimer(200 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
