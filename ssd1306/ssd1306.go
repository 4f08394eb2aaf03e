// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	_CHARGEPUMP          = 0x8D
	_COLUMNADDR          = 0x21
	_COMSCANDEC          = 0xC8
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_INVERTDISPLAY       = 0xA7
	_MEMORYMODE          = 0x20
	_NORMALDISPLAY       = 0xA6
	_PAGEADDR            = 0x22
	_SETCOMPINS          = 0xDA
	_SETCONTRAST         = 0x81
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETDISPLAYOFFSET    = 0xD3
	_SETMULTIPLEX        = 0xA8
	_SETPRECHARGE        = 0xD9
	_SETSEGMENTREMAP     = 0xA1
	_SETSTARTLINE        = 0x40
	_SETVCOMDETECT       = 0xDB
)

const (
	i2cCmd  = 0x80 // I²C transaction has a single command byte
	i2cData = 0x40 // I²C transaction has stream of data bytes
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W:    128,
	H:    64,
	Addr: 0x3c,
}

// Opts defines the options for the device.
type Opts struct {
	W int
	H int
	// The I2C address of the display.
	Addr uint16
}

// NewI2C returns a Dev object that communicates over I²C to a SSD1306 display
// controller.
//
// The controller is configured before returning, so the display is on and
// shows the (blank) framebuffer after the first Flush().
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr := opts.Addr
	if addr == 0x00 {
		addr = DefaultOpts.Addr
	}
	// Maximum clock speed is 1/2.5µs = 400KHz.
	d, err := New(&i2c.Dev{Bus: b, Addr: addr}, opts)
	if err != nil {
		return nil, err
	}
	if err := d.Configure(); err != nil {
		return nil, err
	}
	return d, nil
}

// New returns a Dev that sends its commands and pixels over c.
//
// Nothing is sent to the controller. Call Configure() once before the first
// Flush().
func New(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.W < 8 || opts.W > 128 || opts.W&7 != 0 {
		return nil, fmt.Errorf("ssd1306: invalid width %d", opts.W)
	}
	if opts.H < 8 || opts.H > 64 || opts.H&7 != 0 {
		return nil, fmt.Errorf("ssd1306: invalid height %d", opts.H)
	}
	pages := opts.H / 8
	d := &Dev{
		c:      c,
		rect:   image.Rect(0, 0, opts.W, opts.H),
		pages:  pages,
		buffer: make([]byte, pages*opts.W+1),
	}
	d.buffer[0] = i2cData
	d.cmd[0] = i2cCmd
	return d, nil
}

// Dev is an open handle to the display controller and its framebuffer.
type Dev struct {
	// Communication
	c conn.Conn

	// Display size controlled by the SSD1306.
	rect  image.Rectangle
	pages int

	// buffer[0] is the I²C data control byte, the remaining pages*W bytes are
	// the pixels, column by column. Each byte covers 8 vertical pixels of a
	// page, LSB on top.
	buffer []byte
	// cmd is reused for every command transaction.
	cmd    [2]byte
	halted bool
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%s, %s}", d.c, d.rect.Max)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// At implements image.Image.
func (d *Dev) At(x, y int) color.Color {
	return image1bit.Bit(d.Pixel(x, y))
}

// Set implements draw.Image.
//
// The color is converted with image1bit.BitModel. Nothing is sent to the
// device.
func (d *Dev) Set(x, y int, c color.Color) {
	d.SetPixel(x, y, bool(image1bit.BitModel.Convert(c).(image1bit.Bit)))
}

// Draw implements display.Drawer.
//
// It draws synchronously, once this function returns, the display is updated.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(d, r, src, sp)
	return d.Flush()
}

// Write replaces the pixels of the framebuffer and flushes it.
//
// The format is the one of Bytes() without the leading control byte: each
// byte represents 8 vertical pixels, and the pages of a column are contiguous.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer)-1 {
		return 0, fmt.Errorf("ssd1306: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer)-1, len(pixels))
	}
	copy(d.buffer[1:], pixels)
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Configure sends the power-on configuration sequence.
//
// The order and values are the ones required by the controller to reach a
// displayable state with the framebuffer layout used by this package.
func (d *Dev) Configure() error {
	eh := errorHandler{d: d}
	eh.sendCommand(getInitCmd(d.rect.Dy())...)
	return eh.err
}

func getInitCmd(h int) []byte {
	return []byte{
		// Display off.
		_DISPLAYOFF,
		// Vertical addressing mode.
		_MEMORYMODE, 0x01,
		// Display start line 0.
		_SETSTARTLINE | 0x00,
		// Column 127 is mapped to SEG0.
		_SETSEGMENTREMAP,
		// Multiplex ratio, the number of lines to display.
		_SETMULTIPLEX, byte(h - 1),
		// Scan from COM[N-1] to COM0.
		_COMSCANDEC,
		// No vertical shift.
		_SETDISPLAYOFFSET, 0x00,
		// Alternative COM pin configuration.
		_SETCOMPINS, 0x12,
		// Power on reset value.
		_SETDISPLAYCLOCKDIV, 0x80,
		// Internal charge pump values.
		_SETPRECHARGE, 0xF1,
		// ~0.83 x Vcc.
		_SETVCOMDETECT, 0x30,
		// Max contrast.
		_SETCONTRAST, 0xFF,
		// Follow RAM content.
		_DISPLAYALLON_RESUME,
		// 1 is lit.
		_NORMALDISPLAY,
		// Enable charge pump regulator.
		_CHARGEPUMP, 0x14,
		// Display on.
		_DISPLAYON,
	}
}

// SendCommand sends a single command byte in its own 2 bytes transaction.
//
// Multi bytes commands are sent as successive calls, one per byte.
func (d *Dev) SendCommand(cmd byte) error {
	if d.halted {
		// Transparently enable the display.
		d.cmd[1] = _DISPLAYON
		if err := d.c.Tx(d.cmd[:], nil); err != nil {
			return err
		}
		d.halted = false
	}
	d.cmd[1] = cmd
	return d.c.Tx(d.cmd[:], nil)
}

// Flush sends the whole framebuffer to the controller.
//
// It resets the column and page windows to the full display, then sends all
// the pixels in one transaction.
func (d *Dev) Flush() error {
	eh := errorHandler{d: d}
	eh.sendCommand(
		_COLUMNADDR, 0, byte(d.rect.Dx()-1),
		_PAGEADDR, 0, byte(d.pages-1),
	)
	eh.tx(d.buffer)
	return eh.err
}

// Halt turns off the display.
//
// Sending any other command afterward reenables the display.
func (d *Dev) Halt() error {
	d.halted = false
	err := d.SendCommand(_DISPLAYOFF)
	if err == nil {
		d.halted = true
	}
	return err
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	if blackOnWhite {
		return d.SendCommand(_INVERTDISPLAY)
	}
	return d.SendCommand(_NORMALDISPLAY)
}

// SetContrast changes the segment output current, 0xFF being the brightest.
func (d *Dev) SetContrast(level byte) error {
	eh := errorHandler{d: d}
	eh.sendCommand(_SETCONTRAST, level)
	return eh.err
}

// errorHandler keeps the first bus error and skips every following
// transaction.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) sendCommand(cmds ...byte) {
	for _, c := range cmds {
		if eh.err != nil {
			return
		}
		eh.err = eh.d.SendCommand(c)
	}
}

func (eh *errorHandler) tx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, nil)
}

var _ display.Drawer = &Dev{}
var _ draw.Image = &Dev{}
