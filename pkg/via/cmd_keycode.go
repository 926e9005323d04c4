package via

import (
	"context"
	"encoding/binary"
)

// Keycode reads a single key's code at (layer, row, col). This is the slow
// per-key path; ReadKeymapBuffer is the bulk one.
func (c *Client) Keycode(ctx context.Context, layer, row, col uint8) (uint16, error) {
	resp, err := c.Send(ctx, cmdGetKeycode, layer, row, col)
	if err != nil {
		return 0, err
	}
	// Response: command, layer, row, col, then the code big-endian.
	return binary.BigEndian.Uint16(resp[4:6]), nil
}
