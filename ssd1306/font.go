// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// glyphSize is both the width and the height of a glyph in pixels.
const glyphSize = 8

// glyph returns the 8 columns of the glyph for c.
//
// Slot 0 is blank and used for every byte without a glyph.
func glyph(c byte) []byte {
	i := 0
	switch {
	case c >= '0' && c <= '9':
		i = int(c-'0') + 1
	case c >= 'A' && c <= 'Z':
		i = int(c-'A') + 11
	case c >= 'a' && c <= 'z':
		i = int(c-'a') + 37
	}
	return glyphs[i*glyphSize : (i+1)*glyphSize]
}

// glyphs holds 63 glyphs of 8 bytes. Byte i is column i, bit j is row j. The
// 5x7 shapes sit one column right of the cell's left edge.
var glyphs = [...]byte{
	// 0: blank
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	// 1: '0'
	0x00, 0x3e, 0x51, 0x49, 0x45, 0x3e, 0x00, 0x00,
	// 2: '1'
	0x00, 0x00, 0x42, 0x7f, 0x40, 0x00, 0x00, 0x00,
	// 3: '2'
	0x00, 0x72, 0x49, 0x49, 0x49, 0x46, 0x00, 0x00,
	// 4: '3'
	0x00, 0x21, 0x41, 0x49, 0x4d, 0x33, 0x00, 0x00,
	// 5: '4'
	0x00, 0x18, 0x14, 0x12, 0x7f, 0x10, 0x00, 0x00,
	// 6: '5'
	0x00, 0x27, 0x45, 0x45, 0x45, 0x39, 0x00, 0x00,
	// 7: '6'
	0x00, 0x3c, 0x4a, 0x49, 0x49, 0x31, 0x00, 0x00,
	// 8: '7'
	0x00, 0x41, 0x21, 0x11, 0x09, 0x07, 0x00, 0x00,
	// 9: '8'
	0x00, 0x36, 0x49, 0x49, 0x49, 0x36, 0x00, 0x00,
	// 10: '9'
	0x00, 0x46, 0x49, 0x49, 0x29, 0x1e, 0x00, 0x00,
	// 11: 'A'
	0x00, 0x7c, 0x12, 0x11, 0x12, 0x7c, 0x00, 0x00,
	// 12: 'B'
	0x00, 0x7f, 0x49, 0x49, 0x49, 0x36, 0x00, 0x00,
	// 13: 'C'
	0x00, 0x3e, 0x41, 0x41, 0x41, 0x22, 0x00, 0x00,
	// 14: 'D'
	0x00, 0x7f, 0x41, 0x41, 0x41, 0x3e, 0x00, 0x00,
	// 15: 'E'
	0x00, 0x7f, 0x49, 0x49, 0x49, 0x41, 0x00, 0x00,
	// 16: 'F'
	0x00, 0x7f, 0x09, 0x09, 0x09, 0x01, 0x00, 0x00,
	// 17: 'G'
	0x00, 0x3e, 0x41, 0x41, 0x51, 0x73, 0x00, 0x00,
	// 18: 'H'
	0x00, 0x7f, 0x08, 0x08, 0x08, 0x7f, 0x00, 0x00,
	// 19: 'I'
	0x00, 0x00, 0x41, 0x7f, 0x41, 0x00, 0x00, 0x00,
	// 20: 'J'
	0x00, 0x20, 0x40, 0x41, 0x3f, 0x01, 0x00, 0x00,
	// 21: 'K'
	0x00, 0x7f, 0x08, 0x14, 0x22, 0x41, 0x00, 0x00,
	// 22: 'L'
	0x00, 0x7f, 0x40, 0x40, 0x40, 0x40, 0x00, 0x00,
	// 23: 'M'
	0x00, 0x7f, 0x02, 0x1c, 0x02, 0x7f, 0x00, 0x00,
	// 24: 'N'
	0x00, 0x7f, 0x04, 0x08, 0x10, 0x7f, 0x00, 0x00,
	// 25: 'O'
	0x00, 0x3e, 0x41, 0x41, 0x41, 0x3e, 0x00, 0x00,
	// 26: 'P'
	0x00, 0x7f, 0x09, 0x09, 0x09, 0x06, 0x00, 0x00,
	// 27: 'Q'
	0x00, 0x3e, 0x41, 0x51, 0x21, 0x5e, 0x00, 0x00,
	// 28: 'R'
	0x00, 0x7f, 0x09, 0x19, 0x29, 0x46, 0x00, 0x00,
	// 29: 'S'
	0x00, 0x26, 0x49, 0x49, 0x49, 0x32, 0x00, 0x00,
	// 30: 'T'
	0x00, 0x03, 0x01, 0x7f, 0x01, 0x03, 0x00, 0x00,
	// 31: 'U'
	0x00, 0x3f, 0x40, 0x40, 0x40, 0x3f, 0x00, 0x00,
	// 32: 'V'
	0x00, 0x1f, 0x20, 0x40, 0x20, 0x1f, 0x00, 0x00,
	// 33: 'W'
	0x00, 0x3f, 0x40, 0x38, 0x40, 0x3f, 0x00, 0x00,
	// 34: 'X'
	0x00, 0x63, 0x14, 0x08, 0x14, 0x63, 0x00, 0x00,
	// 35: 'Y'
	0x00, 0x03, 0x04, 0x78, 0x04, 0x03, 0x00, 0x00,
	// 36: 'Z'
	0x00, 0x61, 0x59, 0x49, 0x4d, 0x43, 0x00, 0x00,
	// 37: 'a'
	0x00, 0x20, 0x54, 0x54, 0x78, 0x40, 0x00, 0x00,
	// 38: 'b'
	0x00, 0x7f, 0x28, 0x44, 0x44, 0x38, 0x00, 0x00,
	// 39: 'c'
	0x00, 0x38, 0x44, 0x44, 0x44, 0x28, 0x00, 0x00,
	// 40: 'd'
	0x00, 0x38, 0x44, 0x44, 0x28, 0x7f, 0x00, 0x00,
	// 41: 'e'
	0x00, 0x38, 0x54, 0x54, 0x54, 0x18, 0x00, 0x00,
	// 42: 'f'
	0x00, 0x00, 0x08, 0x7e, 0x09, 0x02, 0x00, 0x00,
	// 43: 'g'
	0x00, 0x18, 0xa4, 0xa4, 0x9c, 0x78, 0x00, 0x00,
	// 44: 'h'
	0x00, 0x7f, 0x08, 0x04, 0x04, 0x78, 0x00, 0x00,
	// 45: 'i'
	0x00, 0x00, 0x44, 0x7d, 0x40, 0x00, 0x00, 0x00,
	// 46: 'j'
	0x00, 0x20, 0x40, 0x40, 0x3d, 0x00, 0x00, 0x00,
	// 47: 'k'
	0x00, 0x7f, 0x10, 0x28, 0x44, 0x00, 0x00, 0x00,
	// 48: 'l'
	0x00, 0x00, 0x41, 0x7f, 0x40, 0x00, 0x00, 0x00,
	// 49: 'm'
	0x00, 0x7c, 0x04, 0x78, 0x04, 0x78, 0x00, 0x00,
	// 50: 'n'
	0x00, 0x7c, 0x08, 0x04, 0x04, 0x78, 0x00, 0x00,
	// 51: 'o'
	0x00, 0x38, 0x44, 0x44, 0x44, 0x38, 0x00, 0x00,
	// 52: 'p'
	0x00, 0xfc, 0x18, 0x24, 0x24, 0x18, 0x00, 0x00,
	// 53: 'q'
	0x00, 0x18, 0x24, 0x24, 0x18, 0xfc, 0x00, 0x00,
	// 54: 'r'
	0x00, 0x7c, 0x08, 0x04, 0x04, 0x08, 0x00, 0x00,
	// 55: 's'
	0x00, 0x48, 0x54, 0x54, 0x54, 0x24, 0x00, 0x00,
	// 56: 't'
	0x00, 0x04, 0x04, 0x3f, 0x44, 0x24, 0x00, 0x00,
	// 57: 'u'
	0x00, 0x3c, 0x40, 0x40, 0x20, 0x7c, 0x00, 0x00,
	// 58: 'v'
	0x00, 0x1c, 0x20, 0x40, 0x20, 0x1c, 0x00, 0x00,
	// 59: 'w'
	0x00, 0x3c, 0x40, 0x30, 0x40, 0x3c, 0x00, 0x00,
	// 60: 'x'
	0x00, 0x44, 0x28, 0x10, 0x28, 0x44, 0x00, 0x00,
	// 61: 'y'
	0x00, 0x4c, 0x90, 0x90, 0x90, 0x7c, 0x00, 0x00,
	// 62: 'z'
	0x00, 0x44, 0x64, 0x54, 0x4c, 0x44, 0x00, 0x00,
}
