package hid

import (
	"context"
	"log/slog"

	usbhid "rafaelmartins.com/p/usbhid"
)

type usbhidManager struct{}

func newUSBHIDManager() (Manager, error) { return &usbhidManager{}, nil }

func (m *usbhidManager) List() ([]Info, error) {
	devs, err := usbhid.Enumerate(nil)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
		})
	}
	return out, nil
}

func (m *usbhidManager) Open(info Info) (Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.Path() == info.Path
	}, true, false)
	if err != nil {
		return nil, err
	}
	return &usbhidDevice{d: d}, nil
}

func (m *usbhidManager) OpenVIDPID(vendorID, productID uint16) (Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.VendorId() == vendorID && dev.ProductId() == productID
	}, true, false)
	if err != nil {
		return nil, err
	}
	return &usbhidDevice{d: d}, nil
}

type usbhidDevice struct {
	d *usbhid.Device
}

func (d *usbhidDevice) WriteReport(_ context.Context, report []byte) error {
	// VIA raw interfaces use unnumbered reports; report ID is always 0.
	return d.d.SetOutputReport(0, report)
}

func (d *usbhidDevice) PollReports(ctx context.Context) <-chan []byte {
	out := make(chan []byte)

	go func() {
		defer close(out)
		for {
			if ctx.Err() != nil {
				return
			}
			_, buf, err := d.d.GetInputReport()
			if err != nil {
				if ctx.Err() == nil {
					slog.Warn("input report read failed", slog.Any("error", err))
				}
				return
			}
			if len(buf) > ReportSize {
				buf = buf[:ReportSize]
			}
			select {
			case out <- buf:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (d *usbhidDevice) Close() error { return d.d.Close() }
