// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// DrawLine draws a line from (x0, y0) to (x1, y1), both ends included, with
// Bresenham's algorithm.
func (d *Dev) DrawLine(x0, y0, x1, y1 int, on bool) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy
	for {
		d.SetPixel(x0, y0, on)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawHLine draws a horizontal line from x0 to x1, both included.
func (d *Dev) DrawHLine(x0, x1, y int, on bool) {
	for x := x0; x <= x1; x++ {
		d.SetPixel(x, y, on)
	}
}

// DrawVLine draws a vertical line from y0 to y1, both included.
func (d *Dev) DrawVLine(x, y0, y1 int, on bool) {
	for y := y0; y <= y1; y++ {
		d.SetPixel(x, y, on)
	}
}

// DrawRectOutline draws the border of the w x h rectangle whose top left
// corner is (left, top).
func (d *Dev) DrawRectOutline(top, left, w, h int, on bool) {
	d.DrawRect(top, left, w, h, on, false)
}

// DrawRect draws the border of the w x h rectangle whose top left corner is
// (left, top), and its inside too when fill is true.
func (d *Dev) DrawRect(top, left, w, h int, on, fill bool) {
	for x := left; x < left+w; x++ {
		d.SetPixel(x, top, on)
		d.SetPixel(x, top+h-1, on)
	}
	for y := top; y < top+h; y++ {
		d.SetPixel(left, y, on)
		d.SetPixel(left+w-1, y, on)
	}
	if !fill {
		return
	}
	for x := left + 1; x < left+w-1; x++ {
		for y := top + 1; y < top+h-1; y++ {
			d.SetPixel(x, y, on)
		}
	}
}

// DrawRectangle turns on the border of the w x h rectangle at (x, y), or
// every pixel of it when fill is true.
//
// Unlike DrawRect, it never clears pixels.
func (d *Dev) DrawRectangle(x, y, w, h int, fill bool) {
	if fill {
		for i := x; i < x+w; i++ {
			for j := y; j < y+h; j++ {
				d.SetPixel(i, j, true)
			}
		}
		return
	}
	for i := x; i < x+w; i++ {
		d.SetPixel(i, y, true)
		d.SetPixel(i, y+h-1, true)
	}
	for j := y; j < y+h; j++ {
		d.SetPixel(x, j, true)
		d.SetPixel(x+w-1, j, true)
	}
}

// DrawGlyph draws the 8x8 glyph of c with its top left corner at (x, y).
//
// Only digits and ASCII letters have a glyph; any other byte draws the blank
// glyph. Every pixel of the cell is written, so a glyph erases what was under
// it.
func (d *Dev) DrawGlyph(c byte, x, y int) {
	g := glyph(c)
	for i := 0; i < glyphSize; i++ {
		line := g[i]
		for j := 0; j < glyphSize; j++ {
			d.SetPixel(x+i, y+j, line&(1<<uint(j)) != 0)
		}
	}
}

// DrawString draws s from left to right, one 8 pixels wide cell per byte.
//
// When the next cell would not fit on the line, it wraps to the start of the
// next line. Drawing stops silently once the next line would not fit on the
// display.
func (d *Dev) DrawString(s string, x, y int) {
	w, h := d.rect.Dx(), d.rect.Dy()
	for i := 0; i < len(s); i++ {
		d.DrawGlyph(s[i], x, y)
		x += glyphSize
		if x+glyphSize >= w {
			x = 0
			y += glyphSize
		}
		if y+glyphSize >= h {
			return
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
