// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package virtual implements stand-ins for the board peripherals: LEDs that
// log their state, push buttons pressed from code and a joystick that moves
// on its own.
//
// They implement the periph gpio and analog interfaces so the application
// runs unchanged on a machine without any hardware attached.
package virtual
