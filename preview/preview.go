// Package preview emulates the display controller on the host.
//
// Bus implements i2c.Bus. It decodes the command and data transactions a sh1106.Dev sends into a
// shadow frame and draws the shadow to an io.Writer with half-block characters every time the
// last page lands, so the demos run without hardware.
package preview

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"golang.org/x/term"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// Commands followed by one argument byte.
var withArg = map[byte]bool{
	0x20: true, // addressing mode
	0x81: true, // contrast
	0x8D: true, // charge pump
	0xA8: true, // multiplex
	0xAD: true, // DC-DC
	0xD3: true, // display offset
	0xD5: true, // clock divider
	0xD9: true, // precharge
	0xDA: true, // COM pins
	0xDB: true, // VCOMH
}

// Bus is an emulated controller listening on one I²C address.
type Bus struct {
	// Addr is the address the emulated controller answers on.
	Addr uint16
	// Offset is the first RAM column wired to the panel.
	Offset int
	// Home moves the cursor to the top left corner before each render.
	Home bool

	mu       sync.Mutex
	w        io.Writer
	frame    *image1bit.Frame
	page     int
	col      int
	pending  byte
	contrast byte
	inverted bool
	on       bool
	renders  int
}

// New returns a Bus emulating a w×h panel at address 0x3C that renders to out. out may be nil.
func New(out io.Writer, w, h, offset int) *Bus {
	return &Bus{
		Addr:   0x3C,
		Offset: offset,
		w:      out,
		frame:  image1bit.NewFrame(image.Rect(0, 0, w, h)),
	}
}

// String implements i2c.Bus.
func (b *Bus) String() string {
	return fmt.Sprintf("preview(%dx%d)", b.frame.Rect.Dx(), b.frame.Rect.Dy())
}

// SetSpeed implements i2c.Bus. The speed is ignored.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr != b.Addr {
		return fmt.Errorf("preview: no device at 0x%02X", addr)
	}
	if len(r) != 0 {
		return errors.New("preview: reads are not supported")
	}
	if len(w) == 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	switch w[0] {
	case 0x00:
		for _, c := range w[1:] {
			b.command(c)
		}
		return nil
	case 0x40:
		return b.data(w[1:])
	default:
		return fmt.Errorf("preview: unknown control byte 0x%02X", w[0])
	}
}

func (b *Bus) command(c byte) {
	if b.pending != 0 {
		if b.pending == 0x81 {
			b.contrast = c
		}
		b.pending = 0
		return
	}
	switch {
	case withArg[c]:
		b.pending = c
	case c >= 0xB0 && c <= 0xB7:
		b.page = int(c & 0x07)
	case c <= 0x0F:
		b.col = b.col&0xF0 | int(c)
	case c <= 0x1F:
		b.col = int(c&0x0F)<<4 | b.col&0x0F
	case c == 0xA6:
		b.inverted = false
	case c == 0xA7:
		b.inverted = true
	case c == 0xAE:
		b.on = false
	case c == 0xAF:
		b.on = true
	}
}

func (b *Bus) data(p []byte) error {
	for _, v := range p {
		b.frame.WriteByte(b.page, b.col-b.Offset, v, image1bit.Normal)
		b.col++
	}
	if b.page == b.frame.Pages()-1 && b.w != nil {
		b.renders++
		return b.render(b.w)
	}
	return nil
}

// Frame returns a copy of the shadow frame.
func (b *Bus) Frame() *image1bit.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := image1bit.NewFrame(b.frame.Rect)
	copy(f.Pix, b.frame.Pix)
	return f
}

// State reports the panel power, polarity and contrast last commanded.
func (b *Bus) State() (on, inverted bool, contrast byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.on, b.inverted, b.contrast
}

// Renders returns how many frames were drawn to the writer.
func (b *Bus) Renders() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renders
}

// Render draws the shadow frame to w.
func (b *Bus) Render(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.render(w)
}

// render draws two pixel rows per text line. A panel that is off renders blank.
func (b *Bus) render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if b.Home {
		bw.WriteString("\x1b[H")
	}
	r := b.frame.Rect
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			bw.WriteString(cell(b.lit(x, y), b.lit(x, y+1)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (b *Bus) lit(x, y int) bool {
	if !b.on || y >= b.frame.Rect.Max.Y {
		return false
	}
	return b.frame.Pixel(x, y) != b.inverted
}

func cell(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█"
	case top:
		return "▀"
	case bottom:
		return "▄"
	}
	return " "
}

// TerminalFits reports whether fd is a terminal large enough to show a w×h panel at two pixel
// rows per line.
func TerminalFits(fd, w, h int) bool {
	if !term.IsTerminal(fd) {
		return false
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return false
	}
	return cols >= w && rows >= (h+1)/2
}

var _ i2c.Bus = &Bus{}
