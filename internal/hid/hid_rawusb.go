package hid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/karalabe/usb"
)

type rawManager struct{}

func newRawManager() (Manager, error) {
	if !usb.Supported() {
		return nil, fmt.Errorf("raw usb access not supported on this platform")
	}
	return &rawManager{}, nil
}

func (m *rawManager) List() ([]Info, error) {
	infos, err := usb.EnumerateHid(0, 0)
	if err != nil {
		return nil, fmt.Errorf("usb enumerate: %w", err)
	}
	out := make([]Info, 0, len(infos))
	for _, i := range infos {
		out = append(out, Info{
			Path:         i.Path,
			VendorID:     i.VendorID,
			ProductID:    i.ProductID,
			Product:      i.Product,
			Manufacturer: i.Manufacturer,
			UsagePage:    i.UsagePage,
			Usage:        i.Usage,
		})
	}
	return out, nil
}

func (m *rawManager) Open(info Info) (Device, error) {
	infos, err := usb.EnumerateHid(info.VendorID, info.ProductID)
	if err != nil {
		return nil, fmt.Errorf("usb enumerate: %w", err)
	}
	for _, i := range infos {
		if i.Path != info.Path {
			continue
		}
		dev, err := i.Open()
		if err != nil {
			return nil, fmt.Errorf("open device: %w", err)
		}
		return &rawDevice{dev: dev}, nil
	}
	return nil, fmt.Errorf("device %s not found", info.Path)
}

func (m *rawManager) OpenVIDPID(vendorID, productID uint16) (Device, error) {
	infos, err := usb.EnumerateHid(vendorID, productID)
	if err != nil {
		return nil, fmt.Errorf("usb enumerate: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("no device %04X:%04X", vendorID, productID)
	}
	dev, err := infos[0].Open()
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	return &rawDevice{dev: dev}, nil
}

type rawDevice struct {
	dev usb.Device
}

func (d *rawDevice) WriteReport(_ context.Context, report []byte) error {
	// hidapi wants the report number as the first byte; VIA interfaces are
	// unnumbered, so prepend 0x00.
	buf := make([]byte, len(report)+1)
	copy(buf[1:], report)
	if _, err := d.dev.Write(buf); err != nil {
		return fmt.Errorf("usb write: %w", err)
	}
	return nil
}

func (d *rawDevice) PollReports(ctx context.Context) <-chan []byte {
	out := make(chan []byte)

	go func() {
		defer close(out)
		for {
			if ctx.Err() != nil {
				return
			}
			buf := make([]byte, ReportSize)
			n, err := d.dev.Read(buf)
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("usb read failed", slog.Any("error", err))
				}
				return
			}
			select {
			case out <- buf[:n]:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (d *rawDevice) Close() error { return d.dev.Close() }
