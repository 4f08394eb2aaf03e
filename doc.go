// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package joyoled is a container for the joystick and OLED demo.
//
// The SSD1306 driver lives in ssd1306, the application loop in joystick and
// the binary in cmd/joyoled. The other packages provide the peripherals the
// loop runs on when the real ones are missing.
package joyoled
