package glyph

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// blockCall records one WriteBlock invocation.
type blockCall struct {
	X, Y, W, H int
	Data       []byte
	Mode       image1bit.Mode
}

type recorder struct {
	calls []blockCall
}

func (r *recorder) WriteBlock(x, y int, data []byte, w, h int, mode image1bit.Mode) {
	r.calls = append(r.calls, blockCall{x, y, w, h, data, mode})
}

// testASCII returns a 2×8 font where the glyph of ch is {ch, ^ch}.
func testASCII() *ASCIIFont {
	f := &ASCIIFont{W: 2, H: 8}
	for ch := ' '; ch <= '~'; ch++ {
		f.Chars = append(f.Chars, byte(ch), ^byte(ch))
	}
	return f
}

func testFont(t *testing.T) *Font {
	f := &Font{W: 3, H: 8, ASCII: testASCII()}
	require.NoError(t, f.Add("中", []byte{1, 2, 3}))
	require.NoError(t, f.Add("é", []byte{4, 5, 6}))
	require.NoError(t, f.Add("€", []byte{7, 8, 9}))
	return f
}

func TestSize(t *testing.T) {
	assert.Equal(t, 8, Size(8, 8))
	assert.Equal(t, 16, Size(8, 9))
	assert.Equal(t, 24, Size(12, 16))
	assert.Equal(t, 0, Size(5, 0))
}

func TestDrawImage(t *testing.T) {
	f := image1bit.NewFrame(image.Rect(0, 0, 16, 16))
	img := &Image{W: 2, H: 12, Data: []byte{0xFF, 0x01, 0x0F, 0x08}}
	DrawImage(f, 4, 0, img, image1bit.Normal)
	assert.Equal(t, byte(0xFF), f.Pix[4])
	assert.Equal(t, byte(0x01), f.Pix[5])
	assert.Equal(t, byte(0x0F), f.Pix[16+4])
	assert.Equal(t, byte(0x08), f.Pix[16+5])
}

func TestASCIIGlyph(t *testing.T) {
	f := testASCII()
	assert.Equal(t, []byte{'A', ^byte('A')}, f.Glyph('A'))
	assert.Equal(t, []byte{' ', ^byte(' ')}, f.Glyph(' '))
	assert.Nil(t, f.Glyph('\n'))
	assert.Nil(t, f.Glyph(0x7F))
	assert.Nil(t, f.Glyph(0xC3))
}

func TestDrawASCIIString(t *testing.T) {
	r := &recorder{}
	end := DrawASCIIString(r, 10, 8, "Hi", testASCII(), image1bit.Reversed)
	assert.Equal(t, 14, end)
	require.Len(t, r.calls, 2)
	assert.Equal(t, blockCall{10, 8, 2, 8, []byte{'H', ^byte('H')}, image1bit.Reversed}, r.calls[0])
	assert.Equal(t, blockCall{12, 8, 2, 8, []byte{'i', ^byte('i')}, image1bit.Reversed}, r.calls[1])
}

func TestDrawASCIIStringSkipsMissingGlyphs(t *testing.T) {
	r := &recorder{}
	end := DrawASCIIString(r, 0, 0, "a\tb", testASCII(), image1bit.Normal)
	assert.Equal(t, 6, end)
	require.Len(t, r.calls, 2)
	assert.Equal(t, 4, r.calls[1].X)
}

func TestSeqLen(t *testing.T) {
	tests := []struct {
		b    byte
		want int
	}{
		{'A', 1},
		{0x00, 1},
		{0x7F, 1},
		{0xC3, 2},
		{0xDF, 2},
		{0xE4, 3},
		{0xEF, 3},
		{0xF0, 4},
		{0xF4, 4},
		{0x80, 0},
		{0xBF, 0},
		{0xF8, 0},
		{0xFF, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeqLen(tt.b), "lead byte 0x%02X", tt.b)
	}
}

func TestFontAdd(t *testing.T) {
	f := &Font{W: 3, H: 8}
	require.NoError(t, f.Add("é", []byte{4, 5, 6}))
	assert.Equal(t, 1, f.Len)
	assert.Equal(t, []byte{0xC3, 0xA9, 0, 0, 4, 5, 6}, f.Chars)

	assert.Error(t, f.Add("", []byte{1, 2, 3}))
	assert.Error(t, f.Add("abcde", []byte{1, 2, 3}))
	assert.Error(t, f.Add("x", []byte{1, 2}))
	assert.Equal(t, 1, f.Len)
}

func TestFontAddKeepsCallerBacking(t *testing.T) {
	backing := make([]byte, 14, 64)
	copy(backing, []byte{'a', 0, 0, 0, 1, 2, 3})
	copy(backing[7:], []byte{'b', 0, 0, 0, 9, 9, 9})
	f := &Font{W: 3, H: 8, Chars: backing[:7], Len: 1}

	require.NoError(t, f.Add("x", []byte{4, 5, 6}))
	assert.Equal(t, []byte{'b', 0, 0, 0, 9, 9, 9}, backing[7:14])
	assert.Equal(t, []byte{4, 5, 6}, f.Lookup("x"))
	assert.Equal(t, []byte{1, 2, 3}, f.Lookup("a"))
}

func TestFontLookup(t *testing.T) {
	f := testFont(t)
	assert.Equal(t, []byte{4, 5, 6}, f.Lookup("é"))
	assert.Equal(t, []byte{7, 8, 9}, f.Lookup("€"))
	assert.Nil(t, f.Lookup("ü"))
	assert.Nil(t, f.Lookup("A"))
}

func TestFontLookupFirstMatchWins(t *testing.T) {
	f := &Font{W: 1, H: 8}
	require.NoError(t, f.Add("é", []byte{1}))
	require.NoError(t, f.Add("é", []byte{2}))
	assert.Equal(t, []byte{1}, f.Lookup("é"))
}

func TestFontLookupHonoursLen(t *testing.T) {
	f := testFont(t)
	f.Len = 1
	assert.NotNil(t, f.Lookup("中"))
	assert.Nil(t, f.Lookup("é"))

	// Len larger than the table is bounded by the data present.
	f.Len = 100
	assert.NotNil(t, f.Lookup("€"))
}

func TestDrawString(t *testing.T) {
	r := &recorder{}
	end, err := DrawString(r, 0, 16, "A中é", testFont(t), image1bit.Normal)
	require.NoError(t, err)
	assert.Equal(t, 2+3+3, end)
	assert.Equal(t, []blockCall{
		{0, 16, 2, 8, []byte{'A', ^byte('A')}, image1bit.Normal},
		{2, 16, 3, 8, []byte{1, 2, 3}, image1bit.Normal},
		{5, 16, 3, 8, []byte{4, 5, 6}, image1bit.Normal},
	}, r.calls)
}

func TestDrawStringMissingMultiByte(t *testing.T) {
	r := &recorder{}
	// ü is two bytes and absent from the table: a blank ASCII cell, then x continues.
	end, err := DrawString(r, 0, 0, "üx", testFont(t), image1bit.Normal)
	require.NoError(t, err)
	assert.Equal(t, 4, end)
	require.Len(t, r.calls, 2)
	assert.Equal(t, []byte{' ', ^byte(' ')}, r.calls[0].Data)
	assert.Equal(t, blockCall{2, 0, 2, 8, []byte{'x', ^byte('x')}, image1bit.Normal}, r.calls[1])
}

func TestDrawStringStopsOnMalformed(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		wantEnd int
		calls   int
	}{
		{"continuation byte", "a\x80b", 2, 1},
		{"invalid lead", "\xFFab", 0, 0},
		{"truncated sequence", "ab\xE4\xB8", 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			end, err := DrawString(r, 0, 0, tt.s, testFont(t), image1bit.Normal)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Equal(t, tt.wantEnd, end)
			assert.Len(t, r.calls, tt.calls)
		})
	}
}

func TestDrawStringWithoutASCII(t *testing.T) {
	f := testFont(t)
	f.ASCII = nil
	r := &recorder{}
	end, err := DrawString(r, 0, 0, "a中", f, image1bit.Normal)
	require.NoError(t, err)
	assert.Equal(t, 6, end)
	assert.Len(t, r.calls, 1)
}

func TestDrawStringOntoFrame(t *testing.T) {
	fr := image1bit.NewFrame(image.Rect(0, 0, 16, 8))
	_, err := DrawString(fr, 1, 0, "é", testFont(t), image1bit.Normal)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 4, 5, 6}, fr.Pix[:4])
}
