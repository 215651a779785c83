package preview_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periph.io/x/devices/v3/sh1106"
	"periph.io/x/devices/v3/sh1106/image1bit"
	"periph.io/x/devices/v3/sh1106/preview"
	"periph.io/x/devices/v3/sh1106/raster"
)

func open(t *testing.T, out io.Writer) (*sh1106.Dev, *preview.Bus) {
	t.Helper()
	bus := preview.New(out, 128, 64, 2)
	o := sh1106.DefaultOpts
	o.PowerOnDelay = 0
	d, err := sh1106.NewI2C(bus, &o)
	require.NoError(t, err)
	return d, bus
}

func TestShadowMatchesFrame(t *testing.T) {
	d, bus := open(t, nil)
	f := d.Frame()
	raster.Line(f, 0, 0, 127, 63, image1bit.Normal)
	raster.Circle(f, 64, 32, 20, image1bit.Normal)
	require.NoError(t, d.ShowFrame())
	assert.Equal(t, f.Pix, bus.Frame().Pix)
}

func TestState(t *testing.T) {
	d, bus := open(t, nil)
	on, inverted, contrast := bus.State()
	assert.True(t, on)
	assert.False(t, inverted)
	assert.Equal(t, byte(0x66), contrast)

	require.NoError(t, d.Invert(true))
	require.NoError(t, d.SetContrast(0x10))
	require.NoError(t, d.Halt())
	on, inverted, contrast = bus.State()
	assert.False(t, on)
	assert.True(t, inverted)
	assert.Equal(t, byte(0x10), contrast)
}

func TestArgumentIsNotACommand(t *testing.T) {
	d, bus := open(t, nil)
	// 0x12 as a contrast value would otherwise set the column high nibble.
	require.NoError(t, d.SetContrast(0x12))
	d.Frame().SetPixel(0, 0, image1bit.Normal)
	require.NoError(t, d.ShowFrame())
	assert.True(t, bus.Frame().Pixel(0, 0))
}

func TestRender(t *testing.T) {
	out := &bytes.Buffer{}
	d, bus := open(t, out)
	require.Equal(t, 1, bus.Renders())

	out.Reset()
	f := d.Frame()
	f.SetPixel(0, 0, image1bit.Normal)
	f.SetPixel(1, 1, image1bit.Normal)
	f.SetPixel(2, 0, image1bit.Normal)
	f.SetPixel(2, 1, image1bit.Normal)
	require.NoError(t, d.ShowFrame())
	assert.Equal(t, 2, bus.Renders())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 32)
	assert.True(t, strings.HasPrefix(lines[0], "▀▄█ "))
	assert.Equal(t, strings.Repeat(" ", 128), lines[31])
}

func TestRenderInverted(t *testing.T) {
	d, bus := open(t, nil)
	require.NoError(t, d.Invert(true))
	out := &bytes.Buffer{}
	require.NoError(t, bus.Render(out))
	assert.True(t, strings.HasPrefix(out.String(), "██"))
}

func TestRenderOff(t *testing.T) {
	d, bus := open(t, nil)
	d.Frame().SetPixel(0, 0, image1bit.Normal)
	require.NoError(t, d.ShowFrame())
	require.NoError(t, d.DisplayOff())
	out := &bytes.Buffer{}
	require.NoError(t, bus.Render(out))
	assert.True(t, strings.HasPrefix(out.String(), "  "))
}

func TestRejects(t *testing.T) {
	bus := preview.New(nil, 128, 64, 2)
	assert.Error(t, bus.Tx(0x3D, []byte{0x00, 0xAF}, nil))
	assert.Error(t, bus.Tx(0x3C, []byte{0x00}, make([]byte, 1)))
	assert.Error(t, bus.Tx(0x3C, []byte{0x80, 0xAF}, nil))
	assert.NoError(t, bus.Tx(0x3C, nil, nil))
	assert.NoError(t, bus.SetSpeed(0))
	assert.Equal(t, "preview(128x64)", bus.String())
}

func TestTerminalFitsNotATerminal(t *testing.T) {
	assert.False(t, preview.TerminalFits(-1, 128, 64))
}
