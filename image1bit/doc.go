// Package image1bit provides the 1-bit page-packed frame buffer used by the SH1106 display
// controller, together with the bit-region writer that maps pixel-space runs onto it.
//
// The controller's RAM is organized in pages. Each page is a horizontal band of 8 pixel rows
// stored as one byte per column, least significant bit on top:
//
//	         col 0   col 1   col 2
//	page 0   byte    byte    byte     rows 0..7   (bit 0 = row 0, bit 7 = row 7)
//	page 1   byte    byte    byte     rows 8..15
//	...
//
// A 128x64 display therefore uses 8 pages of 128 bytes, 1024 bytes in total. This is the layout
// of image1bit.VerticalLSB from periph.io/x/devices/v3/ssd1306, which Frame embeds, so Frame is
// a draw.Image using that package's Bit colours and BitModel.
//
// # Colour mode
//
// Every write takes a Mode. Normal stores a logical "on" pixel as bit 1, Reversed stores it as
// bit 0. This is a per-write polarity and is independent of the global inversion command of the
// display.
//
// # Packed bitmaps
//
// WriteBlock consumes the byte-row major packed layout produced by common font and image authoring tools for
// page-addressed displays. A w×h bitmap is ceil(h/8) byte rows of w bytes each: first the w
// column bytes of rows 0..7, then the w column bytes of rows 8..15, and so on. The last byte row
// only uses its low h%8 bits when h is not a multiple of 8.
//
//	// Draw an 8x8 checker at (3, 5), straddling pages 0 and 1.
//	f := image1bit.NewFrame(image.Rect(0, 0, 128, 64))
//	f.WriteBlock(3, 5, []byte{0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA}, 8, 8, image1bit.Normal)
//
// # Clipping
//
// Nothing in this package returns an error. Pixels, bytes and runs that fall outside the frame
// are dropped silently, which lets glyphs and shapes be positioned partly off-screen.
//
// Frame is not safe for concurrent use. The owner is expected to serialize the
// clear/draw/flush sequence.
package image1bit
