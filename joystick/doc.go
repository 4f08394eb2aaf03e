// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package joystick runs the joystick demo: the two axes of an analog
// joystick set the brightness of a red and a blue LED and move a square on a
// monochrome display, while two push buttons toggle a green LED and the
// LEDs' PWM output.
//
// Button edges are only turned into events by their watchers. Every state
// change, bus transaction and PWM update happens in the loop goroutine.
package joystick
