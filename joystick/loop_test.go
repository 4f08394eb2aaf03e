// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package joystick

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GermanBionicSystems/joyoled/ssd1306"
	"github.com/GermanBionicSystems/joyoled/virtual"
	"go.uber.org/zap/zaptest"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

type board struct {
	stick            *virtual.Stick
	red, green, blue *gpiotest.Pin
	disp             *ssd1306.Dev
	rec              *i2ctest.Record
}

func newBoard(t *testing.T) (*board, Pins) {
	t.Helper()
	b := &board{
		stick: virtual.NewStick(0, 0),
		red:   &gpiotest.Pin{N: "RED", Num: 12},
		green: &gpiotest.Pin{N: "GREEN", Num: 11},
		blue:  &gpiotest.Pin{N: "BLUE", Num: 13},
		rec:   &i2ctest.Record{},
	}
	var err error
	if b.disp, err = ssd1306.New(&i2c.Dev{Bus: b.rec, Addr: 0x3c}, nil); err != nil {
		t.Fatal(err)
	}
	return b, Pins{X: b.stick.X(), Y: b.stick.Y(), Red: b.red, Green: b.green, Blue: b.blue}
}

func newLoop(t *testing.T, b *board, pins Pins, opts *Opts) *Loop {
	t.Helper()
	l, err := New(zaptest.NewLogger(t), b.disp, pins, opts)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func countLit(d *ssd1306.Dev) int {
	n := 0
	r := d.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if d.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestStep(t *testing.T) {
	b, pins := newBoard(t)
	l := newLoop(t, b, pins, nil)
	b.stick.Hold(3048, 2048)
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if b.red.D != Duty(124) || b.blue.D != 0 {
		t.Fatalf("red %s, blue %s", b.red.D, b.blue.D)
	}
	if b.red.F != physic.KiloHertz {
		t.Fatal(b.red.F)
	}
	if !b.disp.Pixel(64, 47) || !b.disp.Pixel(71, 54) || b.disp.Pixel(63, 47) || b.disp.Pixel(64, 46) {
		t.Fatal("square misplaced")
	}
	if n := countLit(b.disp); n != 64 {
		t.Fatalf("%d pixels lit", n)
	}
	if n := len(b.rec.Ops); n != 7 {
		t.Fatalf("one flush per frame expected, got %d transactions", n)
	}

	// The previous square is erased.
	b.stick.Hold(2048, 2048)
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if n := countLit(b.disp); n != 64 || !b.disp.Pixel(64, 32) {
		t.Fatal("square not moved")
	}
	if b.red.D != 0 {
		t.Fatal("dead zone")
	}
}

func TestStep_buttons(t *testing.T) {
	b, pins := newBoard(t)
	l := newLoop(t, b, pins, nil)
	b.stick.Hold(0, 4095)
	t0 := time.Unix(100, 0)

	l.Post(Event{Button: ButtonA, At: t0})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if l.State.PWM.Load() || b.red.D != 0 || b.blue.D != 0 {
		t.Fatal("PWM must be disabled")
	}

	// Bounce.
	l.Post(Event{Button: ButtonA, At: t0.Add(150 * time.Millisecond)})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if l.State.PWM.Load() {
		t.Fatal("bounce must be ignored")
	}

	l.Post(Event{Button: ButtonA, At: t0.Add(250 * time.Millisecond)})
	l.Post(Event{Button: ButtonStick, At: t0.Add(250 * time.Millisecond)})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if !l.State.PWM.Load() || b.red.D != gpio.DutyMax || b.blue.D != Duty(254) {
		t.Fatalf("red %s, blue %s", b.red.D, b.blue.D)
	}
	if !l.State.LED.Load() || b.green.L != gpio.High {
		t.Fatal("green LED must be on")
	}
	if err := l.Halt(); err != nil {
		t.Fatal(err)
	}
	if b.red.D != 0 || b.blue.D != 0 || b.green.L != gpio.Low {
		t.Fatal("Halt() must turn the LEDs off")
	}
}

func TestPost_full(t *testing.T) {
	b, pins := newBoard(t)
	opts := DefaultOpts
	opts.QueueSize = 2
	l := newLoop(t, b, pins, &opts)
	for i := 0; i < 2; i++ {
		if !l.Post(Event{Button: ButtonStick}) {
			t.Fatalf("#%d: queue should have room", i)
		}
	}
	if l.Post(Event{Button: ButtonStick}) {
		t.Fatal("full queue must drop")
	}
}

type failADC struct {
	analog.PinADC
}

func (failADC) String() string { return "broken" }

func (failADC) Read() (analog.Sample, error) {
	return analog.Sample{}, errors.New("adc fault")
}

func TestStep_errors(t *testing.T) {
	b, pins := newBoard(t)
	pins.Y = failADC{}
	l := newLoop(t, b, pins, nil)
	if err := l.Step(); err == nil || errors.Unwrap(err) == nil {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNew_invalid(t *testing.T) {
	b, pins := newBoard(t)
	if _, err := New(zaptest.NewLogger(t), nil, pins, nil); err == nil {
		t.Fatal("no display")
	}
	p := pins
	p.Green = nil
	if _, err := New(zaptest.NewLogger(t), b.disp, p, nil); err == nil {
		t.Fatal("no LED")
	}
	p = pins
	p.X = nil
	if _, err := New(zaptest.NewLogger(t), b.disp, p, nil); err == nil {
		t.Fatal("no axis")
	}
	opts := DefaultOpts
	opts.Period = 0
	if _, err := New(zaptest.NewLogger(t), b.disp, pins, &opts); err == nil {
		t.Fatal("no period")
	}
}

func TestRun(t *testing.T) {
	b, pins := newBoard(t)
	logger := zaptest.NewLogger(t)
	btnA := virtual.NewButton(logger, "A", 5)
	btnStick := virtual.NewButton(logger, "SW", 22)
	pins.A, pins.Stick = btnA, btnStick
	opts := DefaultOpts
	opts.Period = 5 * time.Millisecond
	l, err := New(logger, b.disp, pins, &opts)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- l.Run(ctx)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for !l.State.LED.Load() {
		if time.Now().After(deadline) {
			t.Fatal("press never applied")
		}
		btnStick.Press()
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if !l.State.PWM.Load() {
		t.Fatal("PWM must stay enabled")
	}
}

// noEdgePin is an input whose WaitForEdge returns immediately, like a pin
// without edge detection.
type noEdgePin struct {
	gpio.PinIn
	waits atomic.Int32
}

func (p *noEdgePin) WaitForEdge(time.Duration) bool {
	p.waits.Add(1)
	return false
}

func TestWatch_noEdge(t *testing.T) {
	b, pins := newBoard(t)
	opts := DefaultOpts
	opts.Period = 10 * time.Millisecond
	l := newLoop(t, b, pins, &opts)
	p := &noEdgePin{}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	l.Watch(ctx, ButtonA, p)
	if n := p.waits.Load(); n == 0 || n > 20 {
		t.Fatalf("WaitForEdge called %d times in 100ms with a 10ms period", n)
	}
	if len(l.events) != 0 {
		t.Fatal("no press expected")
	}
}
