// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306 controls a monochrome OLED display driven by a SSD1306
// controller over I²C.
//
// The driver keeps an off-screen framebuffer in the exact layout the
// controller expects in vertical addressing mode: one byte covers 8 vertical
// pixels of a page, and the pages of a column are contiguous. The buffer is
// prefixed with the I²C data control byte so that Flush() sends it in a single
// bus transaction.
//
// Drawing is done in memory with SetPixel(), Fill() and the Draw* primitives;
// nothing is sent to the device until Flush() is called.
//
// Coordinates outside the display are silently ignored by every drawing
// operation.
//
// # More details
//
// The bus runs at up to 400kHz. A full 128x64 frame is 1025 bytes, so a
// refresh takes about 25ms.
//
// # Datasheets
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
