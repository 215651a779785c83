// Package sh1106 controls a monochrome OLED driven by a SH1106 or CH1116 controller.
//
// The SH1106 is a 132×64 single colour OLED controller. The common 1.3" modules wire a 128×64
// panel to RAM columns 2 to 129, which is why Opts.ColumnOffset defaults to 2. The driver
// implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel, 8 pages of 8 rows each
// - I²C (address 0x3C or 0x3D) or 4-wire SPI with a D/C pin
// - Adjustable contrast (0-255)
// - Global display inversion
// - Charge pump controlled display on/off
//
// # Hardware Connection
//
// Connect the module via I²C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C Clock (SCL)
//	SDA         → I²C Data (SDA)
//
// SPI modules additionally expose DC, CS and RES. Pass the DC pin to NewSPI and, optionally,
// RES as Opts.RST.
//
// # Frame Buffer
//
// The driver owns a page-packed frame buffer, an *image1bit.Frame, returned by Frame. Drawing
// into it is local; ShowFrame pushes all pages to the controller:
//
//	f := dev.Frame()
//	raster.Circle(f, 64, 32, 20, image1bit.Normal)
//	glyph.DrawASCIIString(f, 0, 0, "hello", glyph.Basic(), image1bit.Normal)
//	dev.ShowFrame()
//
// NewFrame clears the buffer. Every pixel write carries an image1bit.Mode: Normal stores the
// pixel as given, Reversed stores its complement.
//
// # display.Drawer
//
// Draw composites any image.Image into the frame buffer, converting colours by luminance, and
// pushes the frame. Write replaces the whole buffer with raw page-layout bytes:
//
//	pixels := make([]byte, 128*64/8) // 1024 bytes for 128×64
//	dev.Write(pixels)
//
// # Paging Protocol
//
// For each page p the driver sends 0xB0+p, then the column start as two nibble commands
// (0x10|col>>4, col&0x0F), then the W data bytes of the page. On I²C every command byte travels
// in its own transaction behind a 0x00 control byte; data travels behind 0x40.
//
// # Concurrency
//
// A Dev is not safe for concurrent use. Callers sharing one display serialize access.
//
// # Datasheet
//
// https://www.velleman.eu/downloads/29/infosheets/sh1106_datasheet.pdf
package sh1106
