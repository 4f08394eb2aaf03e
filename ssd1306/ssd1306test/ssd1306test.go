// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306test implements an emulated SSD1306 controller on a fake I²C
// bus.
//
// It decodes the command and data transactions the way the controller does
// and keeps the resulting display RAM, so the output of a driver can be
// checked pixel by pixel or shown on another display.
package ssd1306test

import (
	"fmt"
	"image"
	"sync"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Addressing modes, as set by command 0x20.
const (
	Horizontal = 0
	Vertical   = 1
	Page       = 2
)

// Emulator implements i2c.Bus and emulates one SSD1306 at Addr.
//
// Only the commands needed to configure the display and to write its RAM
// are interpreted. The others are recorded in Cmds and otherwise ignored.
type Emulator struct {
	sync.Mutex
	Addr uint16
	W, H int

	// OnFrame, if set, is called with the display content every time a data
	// transaction ends at the bottom right corner of the address window. It
	// is called with the lock held.
	OnFrame func(img image.Image)

	// Emulated state. Grab the Mutex before accessing.
	Cmds     []byte
	On       bool
	Inverted bool
	Contrast byte
	Mode     byte
	ram      []byte
	pending  []byte // command waiting for its arguments
	col      [2]byte
	page     [2]byte
	curCol   int
	curPage  int
}

// NewEmulator returns an Emulator for a w x h display in its power-on reset
// state.
func NewEmulator(addr uint16, w, h int) *Emulator {
	return &Emulator{
		Addr:     addr,
		W:        w,
		H:        h,
		Contrast: 0x7F,
		Mode:     Page,
		ram:      make([]byte, w*h/8),
		col:      [2]byte{0, byte(w - 1)},
		page:     [2]byte{0, byte(h/8 - 1)},
	}
}

func (e *Emulator) String() string {
	return fmt.Sprintf("ssd1306test.Emulator{%#x, %dx%d}", e.Addr, e.W, e.H)
}

// Tx implements i2c.Bus.
func (e *Emulator) Tx(addr uint16, w, r []byte) error {
	e.Lock()
	defer e.Unlock()
	if addr != e.Addr {
		return conntest.Errorf("ssd1306test: no device at address %#x", addr)
	}
	if len(r) != 0 {
		return conntest.Errorf("ssd1306test: read is not supported")
	}
	if len(w) == 0 {
		return conntest.Errorf("ssd1306test: empty write")
	}
	switch w[0] {
	case 0x00, 0x80:
		for _, c := range w[1:] {
			e.command(c)
		}
	case 0x40:
		e.data(w[1:])
	default:
		return conntest.Errorf("ssd1306test: invalid control byte %#x", w[0])
	}
	return nil
}

// SetSpeed implements i2c.Bus.
func (e *Emulator) SetSpeed(f physic.Frequency) error {
	if f > 400*physic.KiloHertz {
		return conntest.Errorf("ssd1306test: %s is above the 400kHz maximum", f)
	}
	return nil
}

// Pixel returns the state of the pixel in display RAM, ignoring inversion.
func (e *Emulator) Pixel(x, y int) bool {
	e.Lock()
	defer e.Unlock()
	return e.pixel(x, y)
}

// Image returns a copy of the display as it looks: blank when the display is
// off, inverted when requested.
func (e *Emulator) Image() image.Image {
	e.Lock()
	defer e.Unlock()
	return e.image()
}

func (e *Emulator) image() image.Image {
	img := image.NewGray(image.Rect(0, 0, e.W, e.H))
	for y := 0; y < e.H; y++ {
		for x := 0; x < e.W; x++ {
			lit := e.On && e.pixel(x, y) != e.Inverted
			img.Set(x, y, image1bit.Bit(lit))
		}
	}
	return img
}

func (e *Emulator) pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= e.W || y >= e.H {
		return false
	}
	return e.ram[(y/8)*e.W+x]&(1<<uint(y&7)) != 0
}

// argCount returns the number of argument bytes following cmd.
func argCount(cmd byte) int {
	switch cmd {
	case 0x20, 0x81, 0x8D, 0xA8, 0xD3, 0xD5, 0xD9, 0xDA, 0xDB:
		return 1
	case 0x21, 0x22:
		return 2
	}
	return 0
}

func (e *Emulator) command(c byte) {
	e.Cmds = append(e.Cmds, c)
	e.pending = append(e.pending, c)
	if len(e.pending) <= argCount(e.pending[0]) {
		return
	}
	cmd := e.pending
	e.pending = e.pending[:0]
	switch {
	case cmd[0] == 0x20:
		e.Mode = cmd[1] & 3
	case cmd[0] == 0x21:
		e.col = [2]byte{cmd[1] & 0x7F, cmd[2] & 0x7F}
		e.curCol = int(e.col[0])
	case cmd[0] == 0x22:
		e.page = [2]byte{cmd[1] & 7, cmd[2] & 7}
		e.curPage = int(e.page[0])
	case cmd[0] == 0x81:
		e.Contrast = cmd[1]
	case cmd[0] == 0xA6, cmd[0] == 0xA7:
		e.Inverted = cmd[0] == 0xA7
	case cmd[0] == 0xAE, cmd[0] == 0xAF:
		e.On = cmd[0] == 0xAF
	case cmd[0] >= 0xB0 && cmd[0] <= 0xB7:
		e.curPage = int(cmd[0] & 7)
	case cmd[0] <= 0x0F:
		e.curCol = e.curCol&0xF0 | int(cmd[0])
	case cmd[0] >= 0x10 && cmd[0] <= 0x1F:
		e.curCol = e.curCol&0x0F | int(cmd[0]&0x0F)<<4
	}
}

func (e *Emulator) data(b []byte) {
	for _, v := range b {
		if e.curCol < e.W && e.curPage < e.H/8 {
			e.ram[e.curPage*e.W+e.curCol] = v
		}
		if e.advance() && e.OnFrame != nil {
			e.OnFrame(e.image())
		}
	}
}

// advance moves the RAM pointer after one data byte and reports whether it
// wrapped back to the start of the window.
func (e *Emulator) advance() bool {
	switch e.Mode {
	case Horizontal:
		if e.curCol++; e.curCol <= int(e.col[1]) {
			return false
		}
		e.curCol = int(e.col[0])
		if e.curPage++; e.curPage <= int(e.page[1]) {
			return false
		}
		e.curPage = int(e.page[0])
		return true
	case Vertical:
		if e.curPage++; e.curPage <= int(e.page[1]) {
			return false
		}
		e.curPage = int(e.page[0])
		if e.curCol++; e.curCol <= int(e.col[1]) {
			return false
		}
		e.curCol = int(e.col[0])
		return true
	default:
		if e.curCol < 127 {
			e.curCol++
		}
		return false
	}
}

var _ i2c.Bus = &Emulator{}
