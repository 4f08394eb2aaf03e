// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package iioadc exposes the voltage channels of a Linux Industrial I/O ADC
// as analog.PinADC.
//
// The kernel driver does the conversion; each Read() reads the raw value
// from sysfs.
package iioadc

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

// Root is the sysfs directory listing IIO devices.
const Root = "/sys/bus/iio/devices"

// DefaultOpts is a 12 bits ADC with a 3.3V reference.
var DefaultOpts = Opts{
	Device: "iio:device0",
	Bits:   12,
	VRef:   3300 * physic.MilliVolt,
}

// Opts describes one ADC channel.
type Opts struct {
	// Device is the directory name under Root, e.g. "iio:device0".
	Device  string
	Channel int
	// Bits is the resolution of the converter.
	Bits int
	// VRef is the voltage of a full scale reading.
	VRef physic.ElectricPotential
}

// Pin is one channel of an IIO ADC.
type Pin struct {
	fs   afero.Fs
	name string
	file string
	num  int
	max  int32
	vref physic.ElectricPotential
}

// New returns the channel of the ADC described by opts.
//
// Zero fields of opts are taken from DefaultOpts. The channel file must exist.
func New(fs afero.Fs, opts *Opts) (*Pin, error) {
	o := DefaultOpts
	if opts != nil {
		o.Channel = opts.Channel
		if opts.Device != "" {
			o.Device = opts.Device
		}
		if opts.Bits != 0 {
			o.Bits = opts.Bits
		}
		if opts.VRef != 0 {
			o.VRef = opts.VRef
		}
	}
	if o.Bits < 1 || o.Bits > 31 {
		return nil, errors.Errorf("iioadc: invalid resolution %d bits", o.Bits)
	}
	if o.Channel < 0 {
		return nil, errors.Errorf("iioadc: invalid channel %d", o.Channel)
	}
	p := &Pin{
		fs:   fs,
		name: fmt.Sprintf("%s/in_voltage%d", o.Device, o.Channel),
		file: path.Join(Root, o.Device, fmt.Sprintf("in_voltage%d_raw", o.Channel)),
		num:  o.Channel,
		max:  int32(1)<<uint(o.Bits) - 1,
		vref: o.VRef,
	}
	if ok, err := afero.Exists(fs, p.file); err != nil {
		return nil, errors.Wrapf(err, "iioadc: %s", p.name)
	} else if !ok {
		return nil, errors.Errorf("iioadc: %s not found", p.file)
	}
	return p, nil
}

func (p *Pin) String() string {
	return p.name
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return p.name
}

// Number implements pin.Pin.
func (p *Pin) Number() int {
	return p.num
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return "ADC"
}

// Range implements analog.PinADC.
func (p *Pin) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, p.sample(p.max)
}

// Read implements analog.PinADC.
//
// Readings above the resolution are clamped to full scale.
func (p *Pin) Read() (analog.Sample, error) {
	raw, err := afero.ReadFile(p.fs, p.file)
	if err != nil {
		return analog.Sample{}, errors.Wrapf(err, "iioadc: reading %s", p.name)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return analog.Sample{}, errors.Wrapf(err, "iioadc: parsing %s", p.name)
	}
	if v < 0 {
		v = 0
	} else if v > int64(p.max) {
		v = int64(p.max)
	}
	return p.sample(int32(v)), nil
}

func (p *Pin) sample(raw int32) analog.Sample {
	return analog.Sample{
		V:   p.vref * physic.ElectricPotential(raw) / physic.ElectricPotential(p.max),
		Raw: raw,
	}
}

var _ analog.PinADC = &Pin{}
