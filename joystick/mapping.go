// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package joystick

import (
	"github.com/samber/lo"
	"periph.io/x/conn/v3/gpio"
)

// Center is the raw reading of a 12 bits axis at rest.
const Center = 2048

// Brightness maps a raw 12 bits axis reading to a LED level.
//
// Readings within deadZone of the center are 0. Otherwise the level grows
// linearly with the distance to the center, up to 255 at either end.
func Brightness(raw, deadZone int32) uint8 {
	d := raw - Center
	if d < 0 {
		d = -d
	}
	if d <= deadZone {
		return 0
	}
	return uint8(lo.Clamp(d*255/Center, 0, 255))
}

// Duty converts a LED level to a PWM duty cycle.
func Duty(level uint8) gpio.Duty {
	return gpio.Duty(int64(level) * int64(gpio.DutyMax) / 255)
}

// SquarePosition returns the top left corner of the square on a w x h
// display for the raw axis readings.
//
// The Y axis moves the square horizontally and the X axis vertically, 64 raw
// units per pixel around the center of the display.
func SquarePosition(rawX, rawY int32, w, h int) (int, int) {
	return w/2 + int(rawY-Center)/64, h/2 + int(rawX-Center)/64
}
