// Package sh1106 controls a 128×64 monochrome OLED driven by a SH1106 or CH1116 controller, over
// I²C or SPI.
//
// See the examples for how to use this package.
package sh1106

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	periphbit "periph.io/x/devices/v3/ssd1306/image1bit"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// Opts is the configuration for the display.
type Opts struct {
	// Panel size in pixels. H must be a multiple of 8.
	W int
	H int

	// I²C address, 0x3C or 0x3D depending on the SA0 strap.
	Addr uint16

	// First RAM column wired to the panel. 128 pixel panels on the 132 column controller sit at 2.
	ColumnOffset int

	// Bring-up table. Nil selects DefaultInit(H).
	Init []Setting

	// Wait before the first command, for the supply to settle.
	PowerOnDelay time.Duration

	// Optional hardware reset pin, pulsed low before bring-up.
	RST gpio.PinOut
}

// DefaultOpts is the configuration of the common 1.3" 128×64 module.
var DefaultOpts = Opts{
	W:            128,
	H:            64,
	Addr:         0x3C,
	ColumnOffset: 2,
	PowerOnDelay: 20 * time.Millisecond,
}

// Dev is an open handle to the display controller.
type Dev struct {
	t      transport
	rect   image.Rectangle
	offset int
	frame  *image1bit.Frame
	halted bool
	name   string
}

// NewI2C opens a display on an I²C bus. opts can be nil to use DefaultOpts.
func NewI2C(bus i2c.Bus, opts *Opts) (*Dev, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	t := &i2cTransport{c: &i2c.Dev{Bus: bus, Addr: o.Addr}}
	return newDev(t, o, fmt.Sprintf("sh1106.Dev{%s, 0x%02X, %dx%d}", bus, o.Addr, o.W, o.H))
}

// NewSPI opens a display on a 4-wire SPI port. dc drives the data/command line. opts can be nil
// to use DefaultOpts.
//
// The port is configured for 8MHz, Mode0, 8-bit words.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil {
		return nil, errors.New("sh1106: dc pin is required")
	}
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("sh1106: connect: %w", err)
	}
	t := &spiTransport{c: c, dc: dc}
	return newDev(t, o, fmt.Sprintf("sh1106.Dev{%s, %s, %dx%d}", c, dc, o.W, o.H))
}

// resolve applies defaults and validates opts.
func resolve(opts *Opts) (*Opts, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.W <= 0 || o.W+o.ColumnOffset > RAMWidth || o.ColumnOffset < 0 {
		return nil, fmt.Errorf("sh1106: width %d at column %d does not fit the %d column RAM", o.W, o.ColumnOffset, RAMWidth)
	}
	if o.H <= 0 || o.H%8 != 0 || o.H > 64 {
		return nil, fmt.Errorf("sh1106: height %d must be a multiple of 8 up to 64", o.H)
	}
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	if o.Init == nil {
		o.Init = DefaultInit(o.H)
	}
	return &o, nil
}

func newDev(t transport, o *Opts, name string) (*Dev, error) {
	rect := image.Rect(0, 0, o.W, o.H)
	d := &Dev{
		t:      t,
		rect:   rect,
		offset: o.ColumnOffset,
		frame:  image1bit.NewFrame(rect),
		name:   name,
	}
	if err := d.init(o); err != nil {
		return nil, err
	}
	return d, nil
}

// init resets the controller, applies the bring-up table, blanks the RAM and turns the panel on.
func (d *Dev) init(o *Opts) error {
	if o.RST != nil {
		if err := o.RST.Out(gpio.Low); err != nil {
			return fmt.Errorf("sh1106: failed to pull RST low: %w", err)
		}
		time.Sleep(10 * time.Millisecond)
		if err := o.RST.Out(gpio.High); err != nil {
			return fmt.Errorf("sh1106: failed to pull RST high: %w", err)
		}
	}
	time.Sleep(o.PowerOnDelay)

	for _, s := range o.Init {
		if err := d.t.commands(s.bytes()...); err != nil {
			return fmt.Errorf("sh1106: init register 0x%02X: %w", s.Reg, err)
		}
	}
	d.NewFrame()
	if err := d.ShowFrame(); err != nil {
		return err
	}
	return d.sendCommands(cmdDisplayOn)
}

// Frame returns the frame buffer. Drawing into it has no visible effect until ShowFrame.
func (d *Dev) Frame() *image1bit.Frame {
	return d.frame
}

// NewFrame clears the frame buffer.
func (d *Dev) NewFrame() {
	d.frame.Clear()
}

// ShowFrame pushes the whole frame buffer to the display, one page at a time.
func (d *Dev) ShowFrame() error {
	if d.halted {
		return errors.New("sh1106: halted")
	}
	col := byte(d.offset)
	for p := 0; p < d.frame.Pages(); p++ {
		if err := d.sendCommands(cmdPage|byte(p), cmdColHigh|col>>4, cmdColLow|col&0x0F); err != nil {
			return err
		}
		if err := d.t.data(d.frame.Page(p)); err != nil {
			return fmt.Errorf("sh1106: page %d: %w", p, err)
		}
	}
	return nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return periphbit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw composites src into the frame buffer and pushes the frame.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("sh1106: halted")
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	if f, ok := src.(*image1bit.Frame); ok {
		src = f.VerticalLSB
	}
	if img, ok := src.(*periphbit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp == (image.Point{}) {
		copy(d.frame.Pix, img.Pix)
	} else {
		draw.Draw(d.frame, r, src, sp, draw.Src)
	}
	return d.ShowFrame()
}

// Write replaces the frame buffer with pixels, in page layout, and pushes it. pixels must hold
// exactly W*H/8 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errors.New("sh1106: halted")
	}
	if len(pixels) != len(d.frame.Pix) {
		return 0, errors.New("sh1106: invalid buffer size")
	}
	copy(d.frame.Pix, pixels)
	if err := d.ShowFrame(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetContrast sets the segment current, 0 to 255.
func (d *Dev) SetContrast(level byte) error {
	if d.halted {
		return errors.New("sh1106: halted")
	}
	return d.sendCommands(cmdContrast, level)
}

// SetColorMode selects global polarity. Reversed lights every pixel that is off in RAM.
func (d *Dev) SetColorMode(mode image1bit.Mode) error {
	if d.halted {
		return errors.New("sh1106: halted")
	}
	cmd := byte(cmdNormal)
	if mode == image1bit.Reversed {
		cmd = cmdInverse
	}
	return d.sendCommands(cmd)
}

// Invert is SetColorMode(Reversed) when invert is true, SetColorMode(Normal) otherwise.
func (d *Dev) Invert(invert bool) error {
	if invert {
		return d.SetColorMode(image1bit.Reversed)
	}
	return d.SetColorMode(image1bit.Normal)
}

// DisplayOn starts the charge pump and turns the panel on. It also resumes a halted device.
func (d *Dev) DisplayOn() error {
	if err := d.sendCommands(cmdChargePump, chargePumpOn, cmdDisplayOn); err != nil {
		return err
	}
	d.halted = false
	return nil
}

// DisplayOff turns the panel off and stops the charge pump. RAM content is retained.
func (d *Dev) DisplayOff() error {
	if d.halted {
		return errors.New("sh1106: halted")
	}
	return d.sendCommands(cmdChargePump, chargePumpOff, cmdDisplayOff)
}

// Halt turns the panel off. Every call other than DisplayOn fails until the panel is turned on
// again.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	if err := d.DisplayOff(); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// String returns a description of the device and its bus.
func (d *Dev) String() string {
	return d.name
}

func (d *Dev) sendCommands(cmds ...byte) error {
	if err := d.t.commands(cmds...); err != nil {
		return fmt.Errorf("sh1106: command 0x%02X: %w", cmds[0], err)
	}
	return nil
}

// transport carries command and data bytes to the controller.
type transport interface {
	commands(cmds ...byte) error
	data(p []byte) error
}

// i2cTransport sends each command byte in its own transaction behind a command control byte,
// and data behind a data control byte.
type i2cTransport struct {
	c conn.Conn
}

func (t *i2cTransport) commands(cmds ...byte) error {
	for _, c := range cmds {
		if err := t.c.Tx([]byte{i2cCommand, c}, nil); err != nil {
			return err
		}
	}
	return nil
}

func (t *i2cTransport) data(p []byte) error {
	return t.c.Tx(append([]byte{i2cData}, p...), nil)
}

// spiTransport selects commands or data with the D/C line.
type spiTransport struct {
	c  conn.Conn
	dc gpio.PinOut
}

func (t *spiTransport) commands(cmds ...byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return err
	}
	return t.c.Tx(cmds, nil)
}

func (t *spiTransport) data(p []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return err
	}
	return t.c.Tx(p, nil)
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
