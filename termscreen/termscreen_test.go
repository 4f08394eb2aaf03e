// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termscreen

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestDraw(t *testing.T) {
	var out bytes.Buffer
	d, err := New(&Opts{W: 2, H: 2, Out: &out})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "TermScreen{(2,2)}" {
		t.Fatal(s)
	}
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 0, color.Gray{Y: 255})
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	on := ansi256.Default.Block(color.NRGBA{255, 255, 255, 255})
	off := ansi256.Default.Block(color.NRGBA{0, 0, 0, 255})
	want := "\r\033[0m" + off + on + "\033[0m\n" + "\r\033[0m" + off + off + "\033[0m\n"
	if got := out.String(); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}

	out.Reset()
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[2A") {
		t.Fatalf("second frame must overwrite the first: %q", out.String())
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
}

func TestNew_invalid(t *testing.T) {
	if _, err := New(&Opts{W: 0, H: 8}); err == nil {
		t.Fatal("expected error")
	}
}
