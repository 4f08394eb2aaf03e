// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package virtual

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// LED is an output pin that logs every change.
type LED struct {
	l   *zap.Logger
	num int

	mu    sync.Mutex
	name  string
	level gpio.Level
	duty  gpio.Duty
	freq  physic.Frequency
}

// NewLED returns an LED that is off.
func NewLED(logger *zap.Logger, name string, num int) *LED {
	return &LED{
		l:    logger.With(zap.String("pin", name)),
		name: name,
		num:  num,
	}
}

func (p *LED) String() string {
	return p.name
}

// Halt implements conn.Resource.
func (p *LED) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (p *LED) Name() string {
	return p.name
}

// Number implements pin.Pin.
func (p *LED) Number() int {
	return p.num
}

// Function implements pin.Pin.
func (p *LED) Function() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.freq != 0 {
		return "PWM"
	}
	return "Out/" + p.level.String()
}

// Out implements gpio.PinOut.
func (p *LED) Out(l gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	changed := p.freq != 0 || p.level != l
	p.level = l
	p.duty = 0
	p.freq = 0
	if l {
		p.duty = gpio.DutyMax
	}
	if changed {
		p.l.With(zap.Bool("on", bool(l))).Info("out")
	}
	return nil
}

// PWM implements gpio.PinOut.
func (p *LED) PWM(duty gpio.Duty, f physic.Frequency) error {
	if !duty.Valid() {
		return fmt.Errorf("virtual: invalid duty %s", duty)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.duty != duty || p.freq != f {
		p.l.With(zap.Stringer("duty", duty), zap.Stringer("freq", f)).Debug("pwm")
	}
	p.level = duty != 0
	p.duty = duty
	p.freq = f
	return nil
}

// Duty returns the current duty cycle; DutyMax when driven high.
func (p *LED) Duty() gpio.Duty {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

// Level returns whether the LED is lit at all.
func (p *LED) Level() gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

var _ gpio.PinOut = &LED{}
