package via

import (
	"context"
	"encoding/binary"
)

// ProtocolVersion queries the VIA protocol version the firmware speaks.
func (c *Client) ProtocolVersion(ctx context.Context) (uint16, error) {
	resp, err := c.Send(ctx, cmdGetProtocolVersion)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(resp[1:3]), nil
}
