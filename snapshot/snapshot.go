// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package snapshot renders the content of a monochrome display as an
// enlarged PNG picture.
package snapshot

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Color of a lit pixel, OLED blue.
const (
	litR, litG, litB = 0.55, 0.85, 1.0
)

// Render returns a context where each lit pixel of img is a scale x scale
// square, leaving a one pixel gap between squares when scale is above 2.
func Render(img image.Image, scale int) (*gg.Context, error) {
	if scale < 1 {
		return nil, errors.Errorf("snapshot: invalid scale %d", scale)
	}
	b := img.Bounds()
	dc := gg.NewContext(b.Dx()*scale, b.Dy()*scale)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(litR, litG, litB)
	side := float64(scale)
	if scale > 2 {
		side--
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				continue
			}
			dc.DrawRectangle(float64((x-b.Min.X)*scale), float64((y-b.Min.Y)*scale), side, side)
		}
	}
	dc.Fill()
	return dc, nil
}

// Encode writes img as PNG to w.
func Encode(w io.Writer, img image.Image, scale int) error {
	dc, err := Render(img, scale)
	if err != nil {
		return err
	}
	return errors.Wrap(dc.EncodePNG(w), "snapshot: encoding")
}

// Save writes img as a PNG file.
func Save(fs afero.Fs, path string, img image.Image, scale int) error {
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "snapshot: creating %s", path)
	}
	if err := Encode(f, img, scale); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "snapshot: closing %s", path)
}
