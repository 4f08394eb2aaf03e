// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package joystick

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Display is the drawing surface the loop renders to.
//
// *ssd1306.Dev implements it.
type Display interface {
	Bounds() image.Rectangle
	Fill(on bool)
	DrawRectangle(x, y, w, h int, fill bool)
	Flush() error
}

// Pins are the peripherals of the demo board.
type Pins struct {
	// X and Y are the joystick axes, 12 bits readings.
	X, Y analog.PinADC
	// Red and Blue follow the axes with PWM; Green is on or off.
	Red, Green, Blue gpio.PinOut
	// A and Stick are active low push buttons.
	A, Stick gpio.PinIn
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Debounce:   200 * time.Millisecond,
	Period:     100 * time.Millisecond,
	DeadZone:   100,
	SquareSize: 8,
	PWMFreq:    physic.KiloHertz,
	QueueSize:  16,
}

// Opts defines the options for the loop.
type Opts struct {
	// Debounce is the minimum time between two presses of the same button.
	Debounce time.Duration
	// Period is the time between two frames.
	Period time.Duration
	// DeadZone is the distance to the center under which the LEDs stay off.
	DeadZone   int32
	SquareSize int
	PWMFreq    physic.Frequency
	// QueueSize is the number of presses that can wait for the next frame.
	QueueSize int
}

// Loop runs the demo.
type Loop struct {
	State *State

	l        *zap.Logger
	disp     Display
	pins     Pins
	opts     Opts
	debounce *Debouncer
	events   chan Event
	now      func() time.Time
}

// New returns a Loop driving disp and pins.
//
// Nothing is sent to the peripherals until Run() or Step() is called.
func New(logger *zap.Logger, disp Display, pins Pins, opts *Opts) (*Loop, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if disp == nil {
		return nil, errors.New("joystick: no display")
	}
	if pins.X == nil || pins.Y == nil {
		return nil, errors.New("joystick: missing axis")
	}
	if pins.Red == nil || pins.Green == nil || pins.Blue == nil {
		return nil, errors.New("joystick: missing LED")
	}
	if opts.Period <= 0 {
		return nil, errors.Errorf("joystick: invalid period %s", opts.Period)
	}
	if opts.QueueSize <= 0 {
		return nil, errors.Errorf("joystick: invalid queue size %d", opts.QueueSize)
	}
	return &Loop{
		State:    NewState(),
		l:        logger,
		disp:     disp,
		pins:     pins,
		opts:     *opts,
		debounce: NewDebouncer(opts.Debounce),
		events:   make(chan Event, opts.QueueSize),
		now:      time.Now,
	}, nil
}

// Post queues a button press for the next frame.
//
// It never blocks: it returns false and the press is lost when the queue is
// full.
func (l *Loop) Post(e Event) bool {
	select {
	case l.events <- e:
		return true
	default:
		l.l.With(zap.Stringer("button", e.Button)).Warn("event queue full, press dropped")
		return false
	}
}

// Watch posts a press every time p sees a falling edge, until ctx is done.
//
// p must already be configured for falling edges. Pins without edge
// detection are polled once per period.
func (l *Loop) Watch(ctx context.Context, b Button, p gpio.PinIn) {
	for ctx.Err() == nil {
		start := time.Now()
		if p.WaitForEdge(l.opts.Period) {
			if p.Read() == gpio.Low {
				l.Post(Event{Button: b, At: l.now()})
			}
			continue
		}
		// WaitForEdge returns at once when the pin cannot detect edges.
		if rest := l.opts.Period - time.Since(start); rest > 0 {
			t := time.NewTimer(rest)
			select {
			case <-ctx.Done():
			case <-t.C:
			}
			t.Stop()
		}
	}
}

// Setup puts the peripherals in their initial state.
func (l *Loop) Setup() error {
	for _, b := range []gpio.PinIn{l.pins.A, l.pins.Stick} {
		if b == nil {
			continue
		}
		if err := b.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			return errors.Wrapf(err, "joystick: configuring %s", b)
		}
	}
	if err := l.pins.Green.Out(gpio.Level(l.State.LED.Load())); err != nil {
		return errors.Wrapf(err, "joystick: %s", l.pins.Green)
	}
	if err := l.setDuty(0, 0); err != nil {
		return err
	}
	l.disp.Fill(false)
	return errors.Wrap(l.disp.Flush(), "joystick: clearing display")
}

// Step applies the queued presses, samples the joystick and renders one
// frame.
//
// Any error is fatal to the loop.
func (l *Loop) Step() error {
	if err := l.drain(); err != nil {
		return err
	}

	x, err := l.pins.X.Read()
	if err != nil {
		return errors.Wrapf(err, "joystick: reading %s", l.pins.X)
	}
	y, err := l.pins.Y.Read()
	if err != nil {
		return errors.Wrapf(err, "joystick: reading %s", l.pins.Y)
	}

	enabled := l.State.PWM.Load()
	red := lo.Ternary(enabled, Duty(Brightness(x.Raw, l.opts.DeadZone)), 0)
	blue := lo.Ternary(enabled, Duty(Brightness(y.Raw, l.opts.DeadZone)), 0)
	if err := l.setDuty(red, blue); err != nil {
		return err
	}

	b := l.disp.Bounds()
	sx, sy := SquarePosition(x.Raw, y.Raw, b.Dx(), b.Dy())
	l.disp.Fill(false)
	l.disp.DrawRectangle(sx, sy, l.opts.SquareSize, l.opts.SquareSize, true)
	return errors.Wrap(l.disp.Flush(), "joystick: flushing display")
}

// Run calls Setup() then Step() every period until ctx is done or a step
// fails.
//
// The button watchers run for the duration of the call.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Setup(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()
	for _, w := range []struct {
		b Button
		p gpio.PinIn
	}{{ButtonA, l.pins.A}, {ButtonStick, l.pins.Stick}} {
		if w.p == nil {
			continue
		}
		wg.Add(1)
		go func(b Button, p gpio.PinIn) {
			defer wg.Done()
			l.Watch(ctx, b, p)
		}(w.b, w.p)
	}

	t := time.NewTicker(l.opts.Period)
	defer t.Stop()
	for {
		if err := l.Step(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

// Halt turns all the LEDs off.
func (l *Loop) Halt() error {
	if err := l.setDuty(0, 0); err != nil {
		return err
	}
	return errors.Wrapf(l.pins.Green.Out(gpio.Low), "joystick: %s", l.pins.Green)
}

func (l *Loop) drain() error {
	for {
		select {
		case e := <-l.events:
			if err := l.handle(e); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Loop) handle(e Event) error {
	log := l.l.With(zap.Stringer("button", e.Button))
	if !l.debounce.Accept(e.Button, e.At) {
		log.Debug("bounce")
		return nil
	}
	switch e.Button {
	case ButtonA:
		log.With(zap.Bool("pwm", toggle(&l.State.PWM))).Info("press")
	case ButtonStick:
		on := toggle(&l.State.LED)
		log.With(zap.Bool("led", on)).Info("press")
		if err := l.pins.Green.Out(gpio.Level(on)); err != nil {
			return errors.Wrapf(err, "joystick: %s", l.pins.Green)
		}
	}
	return nil
}

func (l *Loop) setDuty(red, blue gpio.Duty) error {
	if err := l.pins.Red.PWM(red, l.opts.PWMFreq); err != nil {
		return errors.Wrapf(err, "joystick: %s", l.pins.Red)
	}
	if err := l.pins.Blue.PWM(blue, l.opts.PWMFreq); err != nil {
		return errors.Wrapf(err, "joystick: %s", l.pins.Blue)
	}
	return nil
}
