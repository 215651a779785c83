package image1bit

// WriteByteExact replaces bits start..end (inclusive, 0 = top row of the page) of the byte at
// (page, col) with the same bits of data after applying mode. Other bits are left untouched.
//
// page and col are relative to the frame origin. Out of range addresses are ignored, as are
// bit ranges where start > end or end > 7.
func (f *Frame) WriteByteExact(page, col int, data byte, start, end uint, mode Mode) {
	if page < 0 || page >= f.Pages() || col < 0 || col >= f.Stride {
		return
	}
	if start > end || end > 7 {
		return
	}
	data = mode.apply(data)
	// keep has a 1 for every bit outside start..end.
	keep := byte(0xFF)<<(end+1) | byte(0xFF)>>(8-start)
	i := page*f.Stride + col
	f.Pix[i] = f.Pix[i]&keep | data&^keep
}

// WriteByte replaces the whole byte at (page, col) with data after applying mode.
func (f *Frame) WriteByte(page, col int, data byte, mode Mode) {
	f.WriteByteExact(page, col, data, 0, 7, mode)
}

// WriteBits writes the low n bits of data (1 to 8) downward from pixel (x, y): bit 0 lands on
// row y, bit n-1 on row y+n-1. A run crossing a page boundary is split in two byte writes,
// the high remainder shifted into the top of the next page.
func (f *Frame) WriteBits(x, y int, data byte, n int, mode Mode) {
	if n <= 0 {
		return
	}
	if n > 8 {
		n = 8
	}
	col := x - f.Rect.Min.X
	dy := y - f.Rect.Min.Y
	// Arithmetic shift floors, so runs starting above the frame keep their visible tail.
	page, bit := dy>>3, uint(dy&7)
	last := bit + uint(n) - 1
	if last > 7 {
		f.WriteByteExact(page, col, data<<bit, bit, 7, mode)
		f.WriteByteExact(page+1, col, data>>(8-bit), 0, last-8, mode)
		return
	}
	f.WriteByteExact(page, col, data<<bit, bit, last, mode)
}

// WriteByteAt writes a full 8-bit run downward from pixel (x, y).
func (f *Frame) WriteByteAt(x, y int, data byte, mode Mode) {
	f.WriteBits(x, y, data, 8, mode)
}

// WriteBlock writes a packed w×h bitmap with its top-left corner at pixel (x, y).
// data is byte-row major: data[i+j*w] holds rows 8j..8j+7 of column i, as described under
// "Packed bitmaps" in the package documentation. Complete byte rows are written as 8-bit runs,
// a trailing partial row as a run of h%8 bits. Bytes missing from a short data slice are skipped.
func (f *Frame) WriteBlock(x, y int, data []byte, w, h int, mode Mode) {
	if w <= 0 || h <= 0 {
		return
	}
	fullRows := h / 8
	partBits := h % 8
	for i := 0; i < w; i++ {
		for j := 0; j < fullRows; j++ {
			if k := i + j*w; k < len(data) {
				f.WriteBits(x+i, y+j*8, data[k], 8, mode)
			}
		}
	}
	if partBits == 0 {
		return
	}
	base := w * fullRows
	for i := 0; i < w; i++ {
		if k := base + i; k < len(data) {
			f.WriteBits(x+i, y+fullRows*8, data[k], partBits, mode)
		}
	}
}
