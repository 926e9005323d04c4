package hid

import "context"

// ReportSize is the fixed length of every raw HID report exchanged with a VIA
// keyboard, in both directions.
const ReportSize = 32

// Device represents an opened raw HID interface capable of report I/O.
type Device interface {
	// WriteReport sends one output report. The report must be ReportSize bytes.
	WriteReport(ctx context.Context, report []byte) error

	// PollReports starts reading input reports into the returned channel.
	// The channel is closed when the context is cancelled or the device goes
	// away. Call it once per device.
	PollReports(ctx context.Context) <-chan []byte

	Close() error
}

// Info represents a HID device descriptor.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Product      string
	Manufacturer string

	// UsagePage and Usage are populated by backends that expose them
	// (the raw enumeration backend); zero otherwise.
	UsagePage uint16
	Usage     uint16
}

// Manager enumerates and opens HID devices.
type Manager interface {
	List() ([]Info, error)
	Open(info Info) (Device, error)
	OpenVIDPID(vendorID, productID uint16) (Device, error)
}

// NewManager returns the default report-based HID manager.
func NewManager() (Manager, error) {
	return newUSBHIDManager()
}

// NewRawManager returns the libusb/hidapi-backed manager. Unlike the default
// one it reports usage page and usage per interface, which is what VIA device
// discovery filters on.
func NewRawManager() (Manager, error) {
	return newRawManager()
}
