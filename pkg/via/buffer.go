package via

import (
	"context"
	"fmt"
)

// readBuffer assembles an on-device table by issuing chunked get-buffer
// requests: a 16-bit big-endian byte offset and a chunk size of at most
// maxChunk per request. A failed chunk aborts the whole read; no partial
// buffer is ever returned.
func (c *Client) readBuffer(ctx context.Context, command byte, total int) ([]byte, error) {
	buf := make([]byte, 0, total)
	for offset := 0; offset < total; {
		chunk := min(maxChunk, total-offset)

		resp, err := c.Send(ctx, command, byte(offset>>8), byte(offset), byte(chunk))
		if err != nil {
			return nil, fmt.Errorf("%w: command 0x%02X at offset %d of %d: %w",
				ErrPartialRead, command, offset, total, err)
		}
		// Response: command, offset hi, offset lo, size, then the payload.
		buf = append(buf, resp[4:4+chunk]...)
		offset += chunk
	}
	return buf, nil
}

// ReadKeymapBuffer reads total bytes of the flat keymap table. The caller
// computes total as layers*rows*cols*2.
func (c *Client) ReadKeymapBuffer(ctx context.Context, total int) ([]byte, error) {
	return c.readBuffer(ctx, cmdGetKeymapBuffer, total)
}

// ReadMacroBuffer reads total bytes of the macro buffer.
func (c *Client) ReadMacroBuffer(ctx context.Context, total int) ([]byte, error) {
	return c.readBuffer(ctx, cmdGetMacroBuffer, total)
}
