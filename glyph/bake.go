package glyph

import (
	"fmt"
	"image"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Basic returns the 7×13 ASCII font baked from basicfont.Face7x13.
func Basic() *ASCIIFont {
	f, _ := BakeASCII(basicfont.Face7x13, 7, 13)
	return f
}

// MonoFace returns Go Mono at the given pixel size. Point sizes are interpreted at 72 DPI so that
// one point equals one pixel.
func MonoFace(size float64) (font.Face, error) {
	ft, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse gomono: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: gomono face: %w", err)
	}
	return face, nil
}

// BakeASCII renders the printable ASCII range of face into w×h cells.
func BakeASCII(face font.Face, w, h int) (*ASCIIFont, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("glyph: invalid cell size %dx%d", w, h)
	}
	f := &ASCIIFont{W: w, H: h, Chars: make([]byte, 0, ('~'-' '+1)*Size(w, h))}
	for ch := ' '; ch <= '~'; ch++ {
		f.Chars = append(f.Chars, bakeRune(face, ch, w, h)...)
	}
	return f, nil
}

// BakeFont renders every distinct character of text into a w×h glyph table, in order of first
// appearance. ascii becomes the fallback font.
func BakeFont(face font.Face, w, h int, text string, ascii *ASCIIFont) (*Font, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("glyph: invalid cell size %dx%d", w, h)
	}
	f := &Font{W: w, H: h, ASCII: ascii}
	seen := map[rune]bool{}
	for i, r := range text {
		if r == utf8.RuneError {
			return nil, fmt.Errorf("glyph: invalid UTF-8 at byte %d", i)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		if err := f.Add(string(r), bakeRune(face, r, w, h)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// bakeRune draws r with its baseline at the face ascent and packs the result.
func bakeRune(face font.Face, r rune, w, h int) []byte {
	img := image.NewGray(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(string(r))
	return pack(w, h, func(x, y int) bool {
		return img.GrayAt(x, y).Y >= 0x80
	})
}

// pack encodes a w×h bitmap in the packed layout: byte i+j*w holds column i, rows 8j..8j+7.
func pack(w, h int, on func(x, y int) bool) []byte {
	out := make([]byte, Size(w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on(x, y) {
				out[x+y/8*w] |= 1 << uint(y&7)
			}
		}
	}
	return out
}
