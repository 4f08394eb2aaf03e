// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package virtual

import (
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

const (
	center   = 2048
	fullSize = 4095
)

// Stick is a two axis analog joystick whose knob travels a circle around the
// center, one turn per Period.
type Stick struct {
	Period    time.Duration
	Amplitude int32

	mu    sync.Mutex
	now   func() time.Time
	start time.Time
	held  bool
	x, y  int32
}

// NewStick returns a Stick that starts moving now.
func NewStick(period time.Duration, amplitude int32) *Stick {
	return &Stick{
		Period:    period,
		Amplitude: amplitude,
		now:       time.Now,
		start:     time.Now(),
	}
}

// Hold freezes the knob at the given raw position. Pass the center (2048,
// 2048) to emulate a released knob.
func (s *Stick) Hold(x, y int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = true
	s.x, s.y = clamp(x), clamp(y)
}

// Release lets the knob move again.
func (s *Stick) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = false
}

// X returns the horizontal axis.
func (s *Stick) X() analog.PinADC {
	return &axis{s: s, name: "VRX", num: 26}
}

// Y returns the vertical axis.
func (s *Stick) Y() analog.PinADC {
	return &axis{s: s, name: "VRY", num: 27, y: true}
}

func (s *Stick) position() (int32, int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return s.x, s.y
	}
	if s.Period <= 0 {
		return center, center
	}
	a := 2 * math.Pi * float64(s.now().Sub(s.start)%s.Period) / float64(s.Period)
	r := float64(s.Amplitude)
	return clamp(center + int32(math.Round(r*math.Cos(a)))), clamp(center + int32(math.Round(r*math.Sin(a))))
}

func clamp(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > fullSize {
		return fullSize
	}
	return v
}

// axis is one potentiometer of the Stick, read as a 12 bits 3.3V ADC.
type axis struct {
	s    *Stick
	name string
	num  int
	y    bool
}

func (a *axis) String() string {
	return a.name
}

func (a *axis) Halt() error {
	return nil
}

func (a *axis) Name() string {
	return a.name
}

func (a *axis) Number() int {
	return a.num
}

func (a *axis) Function() string {
	return "ADC"
}

func (a *axis) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, sample(fullSize)
}

func (a *axis) Read() (analog.Sample, error) {
	x, y := a.s.position()
	if a.y {
		return sample(y), nil
	}
	return sample(x), nil
}

func sample(raw int32) analog.Sample {
	return analog.Sample{V: 3300 * physic.MilliVolt * physic.ElectricPotential(raw) / fullSize, Raw: raw}
}

var _ analog.PinADC = &axis{}
