package via

import (
	"context"
	"encoding/binary"
)

// LayerCount queries how many keymap layers the firmware holds.
func (c *Client) LayerCount(ctx context.Context) (uint8, error) {
	resp, err := c.Send(ctx, cmdGetLayerCount)
	if err != nil {
		return 0, err
	}
	return resp[1], nil
}

// MacroCount queries how many macro slots the firmware exposes.
func (c *Client) MacroCount(ctx context.Context) (uint8, error) {
	resp, err := c.Send(ctx, cmdGetMacroCount)
	if err != nil {
		return 0, err
	}
	return resp[1], nil
}

// MacroBufferSize queries the size of the on-device macro buffer in bytes.
func (c *Client) MacroBufferSize(ctx context.Context) (uint16, error) {
	resp, err := c.Send(ctx, cmdGetMacroBufferSize)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(resp[1:3]), nil
}
