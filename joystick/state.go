// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package joystick

import (
	"sync/atomic"
	"time"
)

// Button identifies one of the push buttons.
type Button int

const (
	// ButtonA toggles the PWM output of the red and blue LEDs.
	ButtonA Button = iota
	// ButtonStick is the joystick push button; it toggles the green LED.
	ButtonStick
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonStick:
		return "Stick"
	default:
		return "Button(?)"
	}
}

// Event is a press of a button, as seen by its watcher.
type Event struct {
	Button Button
	At     time.Time
}

// State is the part of the demo toggled by the buttons.
//
// It is written by the loop only and can be read from any goroutine.
type State struct {
	PWM atomic.Bool
	LED atomic.Bool
}

// NewState returns the power on state: PWM enabled, green LED off.
func NewState() *State {
	s := &State{}
	s.PWM.Store(true)
	return s
}

func toggle(b *atomic.Bool) bool {
	v := !b.Load()
	b.Store(v)
	return v
}

// Debouncer drops presses of a button that follow the previous accepted one
// too closely.
//
// Each button has its own history. It is not safe for concurrent use.
type Debouncer struct {
	Interval time.Duration
	last     map[Button]time.Time
}

// NewDebouncer returns a Debouncer with no history.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{Interval: interval, last: map[Button]time.Time{}}
}

// Accept reports whether a press of b at now counts, and records it if so.
//
// The first press of a button is always accepted. The following ones must be
// strictly more than Interval after the last accepted press.
func (d *Debouncer) Accept(b Button, now time.Time) bool {
	if last, ok := d.last[b]; ok && now.Sub(last) <= d.Interval {
		return false
	}
	d.last[b] = now
	return true
}
