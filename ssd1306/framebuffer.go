// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// SetPixel turns the pixel at (x, y) on or off in the framebuffer.
//
// Pixels outside the display are ignored.
func (d *Dev) SetPixel(x, y int, on bool) {
	i, mask, ok := d.offset(x, y)
	if !ok {
		return
	}
	if on {
		d.buffer[i] |= mask
	} else {
		d.buffer[i] &^= mask
	}
}

// Pixel returns the state of the pixel at (x, y) in the framebuffer.
//
// Pixels outside the display are reported as off.
func (d *Dev) Pixel(x, y int) bool {
	i, mask, ok := d.offset(x, y)
	return ok && d.buffer[i]&mask != 0
}

// Fill sets every pixel of the framebuffer.
func (d *Dev) Fill(on bool) {
	w, h := d.rect.Dx(), d.rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d.SetPixel(x, y, on)
		}
	}
}

// Bytes returns the framebuffer as sent on the bus, including the leading
// data control byte.
//
// The slice is owned by Dev and must not be modified.
func (d *Dev) Bytes() []byte {
	return d.buffer
}

// offset returns the byte index and bit mask of the pixel at (x, y).
func (d *Dev) offset(x, y int) (int, byte, bool) {
	if x < 0 || y < 0 || x >= d.rect.Max.X || y >= d.rect.Max.Y {
		return 0, 0, false
	}
	return 1 + y/8 + x*d.pages, 1 << uint(y&7), true
}
