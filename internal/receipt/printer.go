package receipt

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"smartfinance/internal/config"
)

// Printer sends raw bytes to a receipt printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
}

// NetworkPrinter talks to a printer listening on a raw TCP port, usually 9100.
type NetworkPrinter struct {
	addr    string
	timeout time.Duration
}

func NewNetworkPrinter(addr string, timeout time.Duration) *NetworkPrinter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NetworkPrinter{addr: addr, timeout: timeout}
}

func (p *NetworkPrinter) Print(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return fmt.Errorf("connecting to printer %s: %w", p.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("setting printer deadline: %w", err)
		}
	}
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("writing to printer %s: %w", p.addr, err)
	}
	return nil
}

// DevicePrinter writes to a local device file such as /dev/usb/lp0.
type DevicePrinter struct {
	path string
}

func NewDevicePrinter(path string) *DevicePrinter {
	return &DevicePrinter{path: path}
}

func (p *DevicePrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("opening printer device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing to printer device %s: %w", p.path, err)
	}
	return nil
}

// NewPrinter picks the configured printer. It returns nil when none is set.
func NewPrinter(cfg config.PrinterConfig) Printer {
	switch {
	case cfg.Address != "":
		return NewNetworkPrinter(cfg.Address, cfg.Timeout)
	case cfg.Device != "":
		return NewDevicePrinter(cfg.Device)
	default:
		return nil
	}
}

// ESC/POS control sequences.
var (
	escInit      = []byte{0x1b, 0x40}
	escCodePage  = []byte{0x1b, 0x74, 0x03} // PC860 Portuguese
	escFeedLines = []byte{0x1b, 0x64, 0x04}
	escCut       = []byte{0x1d, 0x56, 0x00}
)

var pc860 = encoding.ReplaceUnsupported(charmap.CodePage860.NewEncoder())

// EncodeESCPOS wraps a rendered receipt with printer init, code page
// selection, paper feed and cut.
func EncodeESCPOS(text string) ([]byte, error) {
	body, err := pc860.Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding receipt for printer: %w", err)
	}

	out := make([]byte, 0, len(body)+len(escInit)+len(escCodePage)+len(escFeedLines)+len(escCut))
	out = append(out, escInit...)
	out = append(out, escCodePage...)
	out = append(out, body...)
	out = append(out, escFeedLines...)
	out = append(out, escCut...)
	return out, nil
}
