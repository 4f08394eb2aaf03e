// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iioadc

import (
	"testing"

	"github.com/spf13/afero"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestRead(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/sys/bus/iio/devices/iio:device0/in_voltage1_raw": "2048\n",
	})
	p, err := New(fs, &Opts{Channel: 1})
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "iio:device0/in_voltage1" || p.Number() != 1 || p.Function() != "ADC" {
		t.Fatal(p.String(), p.Number(), p.Function())
	}
	s, err := p.Read()
	if err != nil {
		t.Fatal(err)
	}
	if s.Raw != 2048 {
		t.Fatal(s.Raw)
	}
	if want := 3300 * physic.MilliVolt * 2048 / 4095; s.V != want {
		t.Fatalf("%s != %s", s.V, want)
	}
	lo, hi := p.Range()
	if lo != (analog.Sample{}) || hi.Raw != 4095 || hi.V != 3300*physic.MilliVolt {
		t.Fatal(lo, hi)
	}
}

func TestRead_clamped(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/sys/bus/iio/devices/iio:device1/in_voltage0_raw": "70000",
	})
	p, err := New(fs, &Opts{Device: "iio:device1", Bits: 10, VRef: physic.Volt})
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Read()
	if err != nil {
		t.Fatal(err)
	}
	if s.Raw != 1023 || s.V != physic.Volt {
		t.Fatal(s)
	}
}

func TestRead_errors(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/sys/bus/iio/devices/iio:device0/in_voltage0_raw": "garbage",
	})
	p, err := New(fs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Read(); err == nil {
		t.Fatal("expected parse error")
	}
	if err := fs.Remove("/sys/bus/iio/devices/iio:device0/in_voltage0_raw"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Read(); err == nil {
		t.Fatal("expected read error")
	}
}

func TestNew_invalid(t *testing.T) {
	fs := newFs(t, nil)
	if _, err := New(fs, nil); err == nil {
		t.Fatal("missing channel must fail")
	}
	if _, err := New(fs, &Opts{Bits: 40}); err == nil {
		t.Fatal("invalid resolution must fail")
	}
	if _, err := New(fs, &Opts{Channel: -1}); err == nil {
		t.Fatal("invalid channel must fail")
	}
}
