package printer

import (
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends finished ESC/POS jobs to the counter printer.
type Printer interface {
	Print(job []byte) error
	Close() error
	IsConnected() bool
}

const (
	dialTimeout  = 5 * time.Second
	probeTimeout = 2 * time.Second
	writeTimeout = 10 * time.Second
)

// devicePrinter writes each job to a character device such as /dev/usb/lp0.
// The device is opened per job, so there is nothing to hold between receipts.
type devicePrinter struct {
	path string
}

// NewUSBPrinter prints through a USB line-printer device file.
func NewUSBPrinter(path string) Printer {
	return &devicePrinter{path: path}
}

func (p *devicePrinter) Print(job []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	return send(f, job, p.path)
}

func (p *devicePrinter) Close() error { return nil }

func (p *devicePrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// socketPrinter sends each job over a fresh TCP connection, the raw 9100
// protocol most Ethernet receipt printers speak.
type socketPrinter struct {
	addr string
}

// NewNetworkPrinter prints to host:port over TCP.
func NewNetworkPrinter(addr string) Printer {
	return &socketPrinter{addr: addr}
}

func (p *socketPrinter) Print(job []byte) error {
	conn, err := net.DialTimeout("tcp", p.addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.addr, err)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return send(conn, job, p.addr)
}

func (p *socketPrinter) Close() error { return nil }

func (p *socketPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.addr, probeTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func send(w io.WriteCloser, job []byte, target string) error {
	_, err := w.Write(job)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("printer: write %s: %w", target, err)
	}
	return nil
}

// nullPrinter accepts and drops every job. Receipts are still built and
// returned to the caller.
type nullPrinter struct{}

// NewNullPrinter is used when the shop has no printer attached.
func NewNullPrinter() Printer { return nullPrinter{} }

func (nullPrinter) Print([]byte) error { return nil }
func (nullPrinter) Close() error       { return nil }
func (nullPrinter) IsConnected() bool  { return false }

// serialPrinter lets one job reach the device at a time so receipts printed
// from concurrent requests do not interleave.
type serialPrinter struct {
	mu sync.Mutex
	p  Printer
}

// Serialized wraps p so that concurrent Print calls run one after another.
func Serialized(p Printer) Printer {
	if _, ok := p.(*serialPrinter); ok {
		return p
	}
	return &serialPrinter{p: p}
}

func (s *serialPrinter) Print(job []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Print(job)
}

func (s *serialPrinter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Close()
}

func (s *serialPrinter) IsConnected() bool {
	return s.p.IsConnected()
}

// NewPrinterFromConfig picks the backend for PRINTER_TYPE: "usb" needs
// usbPath, "network" needs addr, and "none" or empty disables printing.
func NewPrinterFromConfig(kind, usbPath, addr string) (Printer, error) {
	switch kind {
	case "", "none":
		return NewNullPrinter(), nil
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: usb printer needs a device path")
		}
		return Serialized(NewUSBPrinter(usbPath)), nil
	case "network":
		if addr == "" {
			return nil, fmt.Errorf("printer: network printer needs an address")
		}
		return Serialized(NewNetworkPrinter(addr)), nil
	}
	return nil, fmt.Errorf("printer: unknown type %q, want usb, network or none", kind)
}
