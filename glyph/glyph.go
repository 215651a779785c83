// Package glyph renders packed bitmaps, fixed-width ASCII text and multi-byte text onto a
// page-packed 1-bit surface.
//
// Images, ASCII glyphs and glyph table entries share one packed layout, the one consumed by
// image1bit.Frame.WriteBlock: ceil(h/8) byte rows of w column bytes each, bit 0 on top.
//
// # Glyph tables
//
// A Font is a flat table of fixed-stride entries. Each entry is a 4 byte key holding the UTF-8
// encoding of the character, zero padded, followed by the glyph bitmap. DrawString scans the
// table linearly and the first entry whose key matches wins; keys are not required to be
// unique. Characters missing from the table fall back to the ASCII font: single-byte characters
// are drawn from it directly, multi-byte characters are replaced by a blank space.
package glyph

import (
	"errors"
	"fmt"
	"slices"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// KeySize is the number of key bytes at the start of every glyph table entry.
const KeySize = 4

// BlockWriter is a surface accepting packed bitmaps.
type BlockWriter interface {
	WriteBlock(x, y int, data []byte, w, h int, mode image1bit.Mode)
}

// Size returns the number of bytes of a packed w×h bitmap.
func Size(w, h int) int {
	return (h + 7) / 8 * w
}

// Image is a packed w×h bitmap.
type Image struct {
	W, H int
	Data []byte
}

// DrawImage draws img with its top-left corner at (x, y).
func DrawImage(dst BlockWriter, x, y int, img *Image, mode image1bit.Mode) {
	dst.WriteBlock(x, y, img.Data, img.W, img.H, mode)
}

// ASCIIFont is a dense fixed-width font covering the printable ASCII range. Chars holds one
// packed W×H glyph per character, starting at ' '.
type ASCIIFont struct {
	W, H  int
	Chars []byte
}

// Glyph returns the bitmap of ch, or nil when the font has no glyph for it.
func (f *ASCIIFont) Glyph(ch byte) []byte {
	if ch < ' ' {
		return nil
	}
	size := Size(f.W, f.H)
	start := int(ch-' ') * size
	if start+size > len(f.Chars) {
		return nil
	}
	return f.Chars[start : start+size]
}

// DrawASCIIChar draws ch with its top-left corner at (x, y). Characters outside the font draw
// nothing.
func DrawASCIIChar(dst BlockWriter, x, y int, ch byte, font *ASCIIFont, mode image1bit.Mode) {
	g := font.Glyph(ch)
	if g == nil {
		return
	}
	dst.WriteBlock(x, y, g, font.W, font.H, mode)
}

// DrawASCIIString draws every byte of s as an ASCII glyph, advancing by the font width, and
// returns the x position following the last glyph.
func DrawASCIIString(dst BlockWriter, x, y int, s string, font *ASCIIFont, mode image1bit.Mode) int {
	for i := 0; i < len(s); i++ {
		DrawASCIIChar(dst, x, y, s[i], font, mode)
		x += font.W
	}
	return x
}

// Font is a glyph table of Len entries of W×H glyphs, with ASCII as the fallback for characters
// the table lacks.
type Font struct {
	W, H  int
	Chars []byte
	Len   int
	ASCII *ASCIIFont
}

// stride returns the size of one table entry.
func (f *Font) stride() int {
	return KeySize + Size(f.W, f.H)
}

// Add appends an entry for the 1 to 4 byte sequence key.
func (f *Font) Add(key string, bitmap []byte) error {
	if len(key) == 0 || len(key) > KeySize {
		return fmt.Errorf("glyph: key %q must be 1 to %d bytes", key, KeySize)
	}
	if want := Size(f.W, f.H); len(bitmap) != want {
		return fmt.Errorf("glyph: bitmap for %q is %d bytes, want %d", key, len(bitmap), want)
	}
	var k [KeySize]byte
	copy(k[:], key)
	// Drop any bytes beyond the last complete entry, and never append into the caller's spare
	// capacity.
	f.Chars = append(slices.Clip(f.Chars[:f.entries()*f.stride()]), k[:]...)
	f.Chars = append(f.Chars, bitmap...)
	f.Len = f.entries() + 1
	return nil
}

// entries returns the number of usable entries: Len, bounded by the size of Chars.
func (f *Font) entries() int {
	n := len(f.Chars) / f.stride()
	if f.Len < n {
		return f.Len
	}
	return n
}

// Lookup returns the bitmap of the first entry whose key starts with seq, or nil.
func (f *Font) Lookup(seq string) []byte {
	stride := f.stride()
	for j := 0; j < f.entries(); j++ {
		entry := f.Chars[j*stride : (j+1)*stride]
		if string(entry[:len(seq)]) == seq {
			return entry[KeySize:]
		}
	}
	return nil
}

// SeqLen returns the length of the UTF-8 sequence introduced by lead byte b, or 0 if b cannot
// start a sequence.
func SeqLen(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// ErrMalformed is returned by DrawString when it stops on a byte that does not start a UTF-8
// sequence or on a sequence cut short by the end of the string.
var ErrMalformed = errors.New("glyph: malformed UTF-8 sequence")

// DrawString draws s using the glyph table, falling back to the ASCII font, and returns the x
// position following the last character drawn.
//
// Table glyphs advance the cursor by the font width, ASCII glyphs by the ASCII font width. A
// multi-byte character missing from the table is drawn as an ASCII space and still consumes its
// whole sequence. Rendering stops at the first malformed sequence; what was drawn before it
// stays, and ErrMalformed is returned with the cursor position reached.
func DrawString(dst BlockWriter, x, y int, s string, font *Font, mode image1bit.Mode) (int, error) {
	for i := 0; i < len(s); {
		n := SeqLen(s[i])
		if n == 0 || i+n > len(s) {
			return x, ErrMalformed
		}
		seq := s[i : i+n]
		i += n
		if g := font.Lookup(seq); g != nil {
			dst.WriteBlock(x, y, g, font.W, font.H, mode)
			x += font.W
			continue
		}
		if font.ASCII == nil {
			x += font.W
			continue
		}
		ch := byte(' ')
		if n == 1 {
			ch = seq[0]
		}
		DrawASCIIChar(dst, x, y, ch, font.ASCII, mode)
		x += font.ASCII.W
	}
	return x, nil
}
