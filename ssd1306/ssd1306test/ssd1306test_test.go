// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306test

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

func TestEmulator_errors(t *testing.T) {
	e := NewEmulator(0x3c, 128, 64)
	if err := e.Tx(0x3d, []byte{0x80, 0xAF}, nil); err == nil {
		t.Fatal("wrong address must fail")
	}
	if err := e.Tx(0x3c, []byte{0x80}, []byte{0}); err == nil {
		t.Fatal("read must fail")
	}
	if err := e.Tx(0x3c, nil, nil); err == nil {
		t.Fatal("empty write must fail")
	}
	if err := e.Tx(0x3c, []byte{0x12, 0xAF}, nil); err == nil {
		t.Fatal("invalid control byte must fail")
	}
	if err := e.SetSpeed(1 * physic.MegaHertz); err == nil {
		t.Fatal("1MHz is too fast")
	}
	if err := e.SetSpeed(400 * physic.KiloHertz); err != nil {
		t.Fatal(err)
	}
	if e.String() != "ssd1306test.Emulator{0x3c, 128x64}" {
		t.Fatal(e.String())
	}
}

func TestEmulator_commands(t *testing.T) {
	e := NewEmulator(0x3c, 128, 64)
	if e.On || e.Mode != Page || e.Contrast != 0x7F {
		t.Fatal("unexpected reset state")
	}
	// Multi bytes commands may be split across transactions.
	for _, c := range []byte{0xAF, 0x81, 0x20, 0x20, 0x00, 0xA7} {
		if err := e.Tx(0x3c, []byte{0x80, c}, nil); err != nil {
			t.Fatal(err)
		}
	}
	if !e.On || e.Contrast != 0x20 || e.Mode != Horizontal || !e.Inverted {
		t.Fatalf("on=%t contrast=%#x mode=%d inverted=%t", e.On, e.Contrast, e.Mode, e.Inverted)
	}
	if diff := cmp.Diff(e.Cmds, []byte{0xAF, 0x81, 0x20, 0x20, 0x00, 0xA7}); diff != "" {
		t.Fatalf("difference (-got +want):\n%s", diff)
	}
}

func TestEmulator_horizontal(t *testing.T) {
	e := NewEmulator(0x3c, 16, 16)
	if err := e.Tx(0x3c, []byte{0x00, 0x20, 0x00, 0x21, 2, 3, 0x22, 0, 1}, nil); err != nil {
		t.Fatal(err)
	}
	frames := 0
	e.OnFrame = func(image.Image) { frames++ }
	if err := e.Tx(0x3c, []byte{0x40, 0x01, 0x02, 0x80, 0xFF}, nil); err != nil {
		t.Fatal(err)
	}
	if !e.Pixel(2, 0) || !e.Pixel(3, 1) || !e.Pixel(2, 15) || !e.Pixel(3, 8) {
		t.Fatal("bytes not laid out row of pages first")
	}
	if frames != 1 {
		t.Fatalf("frames = %d", frames)
	}
}

func TestEmulator_page(t *testing.T) {
	e := NewEmulator(0x3c, 128, 64)
	// Page 3, column 0x25.
	if err := e.Tx(0x3c, []byte{0x00, 0xB3, 0x05, 0x12}, nil); err != nil {
		t.Fatal(err)
	}
	if err := e.Tx(0x3c, []byte{0x40, 0x01, 0x01}, nil); err != nil {
		t.Fatal(err)
	}
	if !e.Pixel(0x25, 24) || !e.Pixel(0x26, 24) || e.Pixel(0x27, 24) {
		t.Fatal("page addressing mode")
	}
}

func TestEmulator_image(t *testing.T) {
	e := NewEmulator(0x3c, 8, 8)
	if err := e.Tx(0x3c, []byte{0x00, 0x20, 0x01, 0xAF}, nil); err != nil {
		t.Fatal(err)
	}
	if err := e.Tx(0x3c, []byte{0x40, 0x01}, nil); err != nil {
		t.Fatal(err)
	}
	lum := func(img image.Image, x, y int) uint32 {
		r, _, _, _ := img.At(x, y).RGBA()
		return r
	}
	img := e.Image()
	if lum(img, 0, 0) == 0 || lum(img, 1, 0) != 0 {
		t.Fatal("unexpected image")
	}
	if err := e.Tx(0x3c, []byte{0x80, 0xA7}, nil); err != nil {
		t.Fatal(err)
	}
	img = e.Image()
	if lum(img, 0, 0) != 0 || lum(img, 1, 0) == 0 {
		t.Fatal("inversion not applied")
	}
	if err := e.Tx(0x3c, []byte{0x80, 0xAE}, nil); err != nil {
		t.Fatal(err)
	}
	if lum(e.Image(), 0, 0) != 0 || lum(e.Image(), 1, 0) != 0 {
		t.Fatal("display off must be dark")
	}
}
