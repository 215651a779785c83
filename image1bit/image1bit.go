package image1bit

import (
	"image"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Mode selects how a logical "on" pixel is stored.
type Mode uint8

// Possible colour modes.
const (
	// Normal stores "on" as bit 1.
	Normal Mode = iota
	// Reversed stores "on" as bit 0.
	Reversed
)

func (m Mode) String() string {
	if m == Reversed {
		return "Reversed"
	}
	return "Normal"
}

// apply returns data with the mode polarity applied.
func (m Mode) apply(data byte) byte {
	if m == Reversed {
		return ^data
	}
	return data
}

// bit is the stored value of a logical "on" pixel written in mode m.
func (m Mode) bit() image1bit.Bit {
	return image1bit.Bit(m == Normal)
}

// Frame is a page-packed 1-bit image. It embeds the vertical LSB image of the ssd1306 driver,
// which already stores 8 rows per byte: bit b of Pix[page*Stride+col] is pixel
// (Rect.Min.X+col, Rect.Min.Y+page*8+b). Frame adds page access, polarity-aware writes and the
// bit-region writer.
type Frame struct {
	*image1bit.VerticalLSB
}

// NewFrame returns a cleared Frame with the given bounds.
// Rect.Min.Y and the height must be multiples of 8 so that pages line up with the controller's.
func NewFrame(r image.Rectangle) *Frame {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return &Frame{&image1bit.VerticalLSB{Rect: r}}
	}
	if r.Dy()%8 != 0 {
		panic("image1bit: height must be a multiple of 8")
	}
	if r.Min.Y%8 != 0 {
		panic("image1bit: top row must be a multiple of 8")
	}
	return &Frame{image1bit.NewVerticalLSB(r)}
}

// Pages returns the number of 8-row pages.
func (f *Frame) Pages() int {
	if f.Stride == 0 {
		return 0
	}
	return len(f.Pix) / f.Stride
}

// Page returns the bytes of one page, or nil if p is out of range. The slice aliases Pix.
func (f *Frame) Page(p int) []byte {
	if p < 0 || p >= f.Pages() {
		return nil
	}
	return f.Pix[p*f.Stride : (p+1)*f.Stride]
}

// Clear zeroes every byte, starting a new frame.
func (f *Frame) Clear() {
	clear(f.Pix)
}

// Pixel reports whether the bit backing pixel (x, y) is set. Out of range reads return false.
func (f *Frame) Pixel(x, y int) bool {
	return bool(f.BitAt(x, y))
}

// SetPixel lights pixel (x, y) in Normal mode and darkens it in Reversed mode.
// Coordinates outside the frame are ignored.
func (f *Frame) SetPixel(x, y int, mode Mode) {
	f.SetBit(x, y, mode.bit())
}

var _ draw.Image = &Frame{}
