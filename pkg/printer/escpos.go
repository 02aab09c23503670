package printer

import (
	"bytes"
	"strconv"
	"strings"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

const (
	alignLeft   = 0
	alignCenter = 1

	sizeNormal = 0x00
	sizeDouble = 0x11

	// trailing feeds so the last line clears the cutter
	cutFeed = 3
)

// Document lays out a receipt for a thermal printer of a fixed character
// width: 32 columns on 58mm paper, 48 on 80mm.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document and resets the printer to its defaults.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	d := &Document{width: width}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) align(a byte) {
	d.buf.Write([]byte{ESC, 'a', a})
}

func (d *Document) bold(on bool) {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
}

func (d *Document) size(s byte) {
	d.buf.Write([]byte{GS, '!', s})
}

func (d *Document) line(s string) {
	d.buf.WriteString(printable(s))
	d.buf.WriteByte(LF)
}

// Heading prints the shop name large and centred, followed by any non-empty
// detail lines such as address and phone.
func (d *Document) Heading(name string, details ...string) *Document {
	d.align(alignCenter)
	d.bold(true)
	d.size(sizeDouble)
	d.line(name)
	d.size(sizeNormal)
	d.bold(false)
	for _, s := range details {
		if s != "" {
			d.line(s)
		}
	}
	d.align(alignLeft)
	return d
}

// Title prints a centred bold caption after a blank line.
func (d *Document) Title(s string) *Document {
	if s == "" {
		return d
	}
	d.buf.WriteByte(LF)
	d.align(alignCenter)
	d.bold(true)
	d.line(s)
	d.bold(false)
	d.align(alignLeft)
	return d
}

// Rule prints a dashed line across the paper.
func (d *Document) Rule() *Document {
	d.line(strings.Repeat("-", d.width))
	return d
}

// Field prints label on the left and value on the right. Empty values are skipped.
func (d *Document) Field(label, value string) *Document {
	if value != "" {
		d.columns(printable(label), printable(value))
	}
	return d
}

// Total is a Field in bold.
func (d *Document) Total(label, value string) *Document {
	d.bold(true)
	d.columns(printable(label), printable(value))
	d.bold(false)
	return d
}

// Garment prints "2x Blouse" against its line total, cutting the name short so
// the amount stays on the same line. A unit price line follows for quantities
// above one.
func (d *Document) Garment(qty int, name, total, unit string) *Document {
	d.columns(strconv.Itoa(qty)+"x "+printable(name), printable(total))
	if qty > 1 && unit != "" {
		d.line("  @ " + unit + " each")
	}
	return d
}

// Footer prints a centred closing note.
func (d *Document) Footer(s string) *Document {
	if s == "" {
		return d
	}
	d.align(alignCenter)
	d.buf.WriteByte(LF)
	d.line(s)
	d.buf.WriteByte(LF)
	d.align(alignLeft)
	return d
}

// Finish feeds past the cutter, partially cuts the paper and returns the bytes.
func (d *Document) Finish() []byte {
	d.buf.Write(bytes.Repeat([]byte{LF}, cutFeed))
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d.buf.Bytes()
}

func (d *Document) columns(left, right string) {
	room := d.width - len(right) - 1
	if room < 1 {
		room = 1
	}
	if len(left) > room {
		left = left[:room]
	}
	gap := d.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", gap))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
}

// printable replaces runes outside 7-bit ASCII, which the default code page
// cannot render, with '?'.
func printable(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return strings.Map(func(r rune) rune {
				if r >= 0x80 {
					return '?'
				}
				return r
			}, s)
		}
	}
	return s
}
