package sh1106

// Command bytes understood by the controller.
const (
	cmdDisplayOff    = 0xAE
	cmdDisplayOn     = 0xAF
	cmdClockDiv      = 0xD5
	cmdMultiplex     = 0xA8
	cmdDisplayOffset = 0xD3
	cmdStartLine     = 0x40
	cmdChargePump    = 0x8D
	cmdAddrMode      = 0x20
	cmdSegRemap      = 0xA1
	cmdCOMScanDec    = 0xC8
	cmdCOMPins       = 0xDA
	cmdContrast      = 0x81
	cmdPrecharge     = 0xD9
	cmdVCOMH         = 0xDB
	cmdResume        = 0xA4
	cmdNormal        = 0xA6
	cmdInverse       = 0xA7

	cmdPage    = 0xB0 // | page
	cmdColHigh = 0x10 // | col >> 4
	cmdColLow  = 0x00 // | col & 0x0F

	chargePumpOn  = 0x14
	chargePumpOff = 0x10
)

// Control bytes prefixing every I²C transaction.
const (
	i2cCommand = 0x00
	i2cData    = 0x40
)

// RAMWidth is the number of columns of the controller's display RAM. Panels narrower than that
// are wired to a window starting at Opts.ColumnOffset.
const RAMWidth = 132

// Setting is one register write of the bring-up table: a command byte followed by its
// arguments.
type Setting struct {
	Reg  byte
	Args []byte
}

// bytes returns the command byte followed by the arguments.
func (s Setting) bytes() []byte {
	return append([]byte{s.Reg}, s.Args...)
}

// DefaultInit returns the bring-up table for a panel of height h.
func DefaultInit(h int) []Setting {
	return []Setting{
		{Reg: cmdDisplayOff},
		{Reg: cmdClockDiv, Args: []byte{0x80}},
		{Reg: cmdMultiplex, Args: []byte{byte(h - 1)}},
		{Reg: cmdDisplayOffset, Args: []byte{0x00}},
		{Reg: cmdStartLine | 0x00},
		{Reg: cmdChargePump, Args: []byte{chargePumpOn}},
		{Reg: cmdAddrMode, Args: []byte{0x02}}, // page addressing
		{Reg: cmdSegRemap},
		{Reg: cmdCOMScanDec},
		{Reg: cmdCOMPins, Args: []byte{0x12}},
		{Reg: cmdContrast, Args: []byte{0x66}},
		{Reg: cmdPrecharge, Args: []byte{0xF1}},
		{Reg: cmdVCOMH, Args: []byte{0x30}},
		{Reg: cmdResume},
		{Reg: cmdNormal},
	}
}
