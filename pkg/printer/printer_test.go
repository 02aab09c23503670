package printer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldFillsWidth(t *testing.T) {
	d := &Document{width: 20}
	d.Field("Paid:", "Rs.50.00").Field("Phone:", "")

	assert.Equal(t, "Paid:       Rs.50.00\n", d.buf.String())
}

func TestGarmentTruncatesLongNames(t *testing.T) {
	d := &Document{width: 20}
	d.Garment(1, "Embroidered silk anarkali", "Rs.9.00", "Rs.9.00")

	line := d.buf.String()
	assert.Len(t, line, 21)
	assert.True(t, bytes.HasSuffix([]byte(line), []byte(" Rs.9.00\n")))
}

func TestGarmentShowsUnitPriceForMultiples(t *testing.T) {
	d := &Document{width: 24}
	d.Garment(2, "Blouse", "Rs.700.00", "Rs.350.00")

	assert.Equal(t, "2x Blouse      Rs.700.00\n  @ Rs.350.00 each\n", d.buf.String())
}

func TestDocumentLayout(t *testing.T) {
	out := NewDocument(0).
		Heading("Boutique", "", "98450 12345").
		Title("").
		Rule().
		Footer("Visit again").
		Finish()

	assert.True(t, bytes.HasPrefix(out, []byte{ESC, '@'}))
	assert.True(t, bytes.Contains(out, []byte("Boutique\n")))
	assert.True(t, bytes.Contains(out, []byte("98450 12345\n")))
	assert.True(t, bytes.Contains(out, []byte(strings.Repeat("-", 32)+"\n")))
	assert.True(t, bytes.Contains(out, []byte("Visit again\n")))
	assert.True(t, bytes.HasSuffix(out, []byte{LF, LF, LF, GS, 'V', 0x01}))
}

func TestUSBPrinterWritesJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewUSBPrinter(path)
	require.True(t, p.IsConnected())
	require.NoError(t, p.Print([]byte("receipt")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "receipt", string(got))

	missing := NewUSBPrinter(filepath.Join(t.TempDir(), "absent"))
	assert.False(t, missing.IsConnected())
	assert.Error(t, missing.Print([]byte("x")))
}

func TestPrintableReplacesNonASCII(t *testing.T) {
	assert.Equal(t, "Rs 10", printable("Rs 10"))
	assert.Equal(t, "? 10", printable("₹ 10"))
}

func TestNewPrinterFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		usbPath string
		addr    string
		wantErr bool
	}{
		{"none", "none", "", "", false},
		{"empty", "", "", "", false},
		{"usb", "usb", "/dev/usb/lp0", "", false},
		{"usb without path", "usb", "", "", true},
		{"network without address", "network", "", "", true},
		{"unknown", "serial", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrinterFromConfig(tt.kind, tt.usbPath, tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

type countingPrinter struct {
	mu     sync.Mutex
	active int
	max    int
}

func (c *countingPrinter) Print([]byte) error {
	c.mu.Lock()
	c.active++
	if c.active > c.max {
		c.max = c.active
	}
	c.mu.Unlock()

	c.mu.Lock()
	c.active--
	c.mu.Unlock()
	return nil
}

func (c *countingPrinter) Close() error      { return errors.New("closed") }
func (c *countingPrinter) IsConnected() bool { return true }

func TestSerializedRunsOneJobAtATime(t *testing.T) {
	inner := &countingPrinter{}
	p := Serialized(inner)
	assert.Same(t, p, Serialized(p))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Print([]byte("x"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inner.max)
	assert.True(t, p.IsConnected())
	assert.EqualError(t, p.Close(), "closed")
}
