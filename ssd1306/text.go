// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// DrawText draws s with face, (x, y) being the left end of the baseline.
//
// Unlike DrawString it supports any font.Face, e.g. basicfont.Face7x13, and
// only turns pixels on. It returns the x coordinate following the last glyph.
func (d *Dev) DrawText(face font.Face, s string, x, y int) int {
	drawer := font.Drawer{
		Dst:  d,
		Src:  &image.Uniform{C: image1bit.On},
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(s)
	return drawer.Dot.X.Round()
}
