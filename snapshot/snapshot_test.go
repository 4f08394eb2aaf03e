// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
)

func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.SetGray(1, 1, color.Gray{Y: 255})
	return img
}

func TestRender(t *testing.T) {
	dc, err := Render(testImage(), 4)
	if err != nil {
		t.Fatal(err)
	}
	out := dc.Image()
	if b := out.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatal(b)
	}
	isLit := func(x, y int) bool {
		_, _, b, _ := out.At(x, y).RGBA()
		return b > 0x8000
	}
	if !isLit(5, 5) || isLit(1, 1) || isLit(9, 5) {
		t.Fatal("unexpected rendering")
	}
	// Gap between squares.
	if isLit(7, 7) {
		t.Fatal("expected a gap")
	}
}

func TestRender_invalid(t *testing.T) {
	if _, err := Render(testImage(), 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := Save(fs, "/out.png", testImage(), 2); err != nil {
		t.Fatal(err)
	}
	raw, err := afero.ReadFile(fs, "/out.png")
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatal(b)
	}
}
