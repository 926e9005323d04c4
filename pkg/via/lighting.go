package via

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Some firmware builds expose lighting under the legacy rgblight channel,
// others under rgb-matrix. Setters try rgblight first and fall back; the save
// command must go to whichever channel accepted the value.
var lightingChannels = []byte{channelRGBLight, channelRGBMatrix}

func (c *Client) setLighting(ctx context.Context, save bool, valueID byte, values ...byte) error {
	var lastErr error
	for _, channel := range lightingChannels {
		params := append([]byte{channel, valueID}, values...)
		_, err := c.Send(ctx, cmdCustomSetValue, params...)
		if err != nil {
			if errors.Is(err, ErrUnhandled) || errors.Is(err, ErrMalformed) {
				slog.Debug("lighting channel rejected value, trying next",
					slog.Int("channel", int(channel)), slog.Any("error", err))
				lastErr = err
				continue
			}
			return err
		}

		if save {
			if _, err := c.Send(ctx, cmdCustomSave, channel); err != nil {
				return fmt.Errorf("save lighting channel 0x%02X: %w", channel, err)
			}
		}
		return nil
	}
	return fmt.Errorf("no lighting channel accepted value 0x%02X: %w", valueID, lastErr)
}

// SetRGBBrightness sets lighting brightness (0-255), persisting to EEPROM
// when save is true.
func (c *Client) SetRGBBrightness(ctx context.Context, brightness byte, save bool) error {
	return c.setLighting(ctx, save, lightingBrightness, brightness)
}

// SetRGBColor sets the lighting color as HSV hue and saturation (0-255 each),
// persisting to EEPROM when save is true.
func (c *Client) SetRGBColor(ctx context.Context, hue, saturation byte, save bool) error {
	return c.setLighting(ctx, save, lightingColor, hue, saturation)
}

// SetRGBEffect selects a lighting effect by index.
func (c *Client) SetRGBEffect(ctx context.Context, effect byte, save bool) error {
	return c.setLighting(ctx, save, lightingEffect, effect)
}

// SetRGBEffectSpeed sets the lighting effect speed (0-255).
func (c *Client) SetRGBEffectSpeed(ctx context.Context, speed byte, save bool) error {
	return c.setLighting(ctx, save, lightingEffectSpeed, speed)
}

// RGBBrightness reads the current brightness from the rgb-matrix channel.
func (c *Client) RGBBrightness(ctx context.Context) (byte, error) {
	resp, err := c.Send(ctx, cmdCustomGetValue, channelRGBMatrix, lightingBrightness)
	if err != nil {
		return 0, err
	}
	// Response: command, channel, value id, brightness.
	return resp[3], nil
}

// RGBColor reads the current color as HSV hue and saturation.
func (c *Client) RGBColor(ctx context.Context) (hue, saturation byte, err error) {
	resp, err := c.Send(ctx, cmdCustomGetValue, channelRGBMatrix, lightingColor)
	if err != nil {
		return 0, 0, err
	}
	return resp[3], resp[4], nil
}
