// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/GermanBionicSystems/joyoled/config"
	"github.com/GermanBionicSystems/joyoled/iioadc"
	"github.com/GermanBionicSystems/joyoled/joystick"
	"github.com/GermanBionicSystems/joyoled/ssd1306"
	"github.com/GermanBionicSystems/joyoled/ssd1306/ssd1306test"
	"github.com/GermanBionicSystems/joyoled/termscreen"
	"github.com/GermanBionicSystems/joyoled/virtual"
	"github.com/GermanBionicSystems/joyoled/webview"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// board is what the display and the loop are wired to.
type board struct {
	bus  i2c.Bus
	pins joystick.Pins
}

func newBoard(cfg *config.Config, fs afero.Fs, logger *zap.Logger, lc fx.Lifecycle) (*board, error) {
	if *virtualMode {
		return newVirtualBoard(cfg, logger, lc)
	}
	return newHostBoard(cfg, fs, logger, lc)
}

// newHostBoard opens the I²C bus, the GPIOs and the ADC of the host.
func newHostBoard(cfg *config.Config, fs afero.Fs, logger *zap.Logger, lc fx.Lifecycle) (*board, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing periph")
	}
	bus, err := i2creg.Open(cfg.Display.Bus)
	if err != nil {
		return nil, errors.Wrapf(err, "opening I²C bus %q", cfg.Display.Bus)
	}
	lc.Append(fx.StopHook(bus.Close))
	// Maximum clock speed of the SSD1306 is 1/2.5µs = 400KHz.
	if err := bus.SetSpeed(400 * physic.KiloHertz); err != nil {
		logger.With(zap.Error(err), zap.Stringer("bus", bus)).Warn("cannot set bus speed")
	}

	b := &board{bus: bus}
	outs := []struct {
		p    *gpio.PinOut
		name string
	}{{&b.pins.Red, cfg.Pins.Red}, {&b.pins.Green, cfg.Pins.Green}, {&b.pins.Blue, cfg.Pins.Blue}}
	for _, o := range outs {
		p := gpioreg.ByName(o.name)
		if p == nil {
			return nil, errors.Errorf("no pin %q", o.name)
		}
		*o.p = p
	}
	ins := []struct {
		p    *gpio.PinIn
		name string
	}{{&b.pins.A, cfg.Pins.ButtonA}, {&b.pins.Stick, cfg.Pins.ButtonStick}}
	for _, i := range ins {
		p := gpioreg.ByName(i.name)
		if p == nil {
			return nil, errors.Errorf("no pin %q", i.name)
		}
		*i.p = p
	}

	if b.pins.X, err = iioadc.New(fs, cfg.ADCOpts(cfg.ADC.XChannel)); err != nil {
		return nil, err
	}
	if b.pins.Y, err = iioadc.New(fs, cfg.ADCOpts(cfg.ADC.YChannel)); err != nil {
		return nil, err
	}
	logger.With(zap.Stringer("bus", bus), zap.Stringer("x", b.pins.X), zap.Stringer("y", b.pins.Y)).Info("board ready")
	return b, nil
}

// newVirtualBoard returns an emulated board. The display is drawn in the
// terminal, the joystick turns in circles and the buttons are pressed every
// few seconds.
func newVirtualBoard(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (*board, error) {
	emu := ssd1306test.NewEmulator(cfg.Display.Address, cfg.Display.Width, cfg.Display.Height)
	screen, err := termscreen.New(&termscreen.Opts{W: cfg.Display.Width, H: cfg.Display.Height})
	if err != nil {
		return nil, err
	}
	emu.OnFrame = func(img image.Image) {
		if err := screen.Draw(screen.Bounds(), img, image.Point{}); err != nil {
			logger.With(zap.Error(err)).Warn("terminal")
		}
	}
	lc.Append(fx.StopHook(screen.Halt))

	log := logger.Named("virtual")
	stick := virtual.NewStick(6*time.Second, 1800)
	btnA := virtual.NewButton(log, "A", 5)
	btnStick := virtual.NewButton(log, "SW", 22)
	b := &board{
		bus: emu,
		pins: joystick.Pins{
			X:     stick.X(),
			Y:     stick.Y(),
			Red:   virtual.NewLED(log, "RED", 12),
			Green: virtual.NewLED(log, "GREEN", 11),
			Blue:  virtual.NewLED(log, "BLUE", 13),
			A:     btnA,
			Stick: btnStick,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(2)
			go pressEvery(ctx, &wg, btnStick, 2*time.Second)
			go pressEvery(ctx, &wg, btnA, 5*time.Second)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
	return b, nil
}

func pressEvery(ctx context.Context, wg *sync.WaitGroup, b *virtual.Button, d time.Duration) {
	defer wg.Done()
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			b.Press()
		}
	}
}

func newDisplay(b *board, cfg *config.Config, lc fx.Lifecycle) (*ssd1306.Dev, error) {
	dev, err := ssd1306.NewI2C(b.bus, cfg.DisplayOpts())
	if err != nil {
		return nil, errors.Wrap(err, "initializing display")
	}
	if c := cfg.Display.Contrast; c != 0xFF {
		if err := dev.SetContrast(c); err != nil {
			return nil, err
		}
	}
	lc.Append(fx.StopHook(dev.Halt))
	return dev, nil
}

func newLoop(logger *zap.Logger, dev *ssd1306.Dev, sink *webview.Sink, b *board, cfg *config.Config) (*joystick.Loop, error) {
	disp := &mirror{Dev: dev, sink: sink, log: logger}
	return joystick.New(logger.Named("loop"), disp, b.pins, cfg.LoopOpts())
}
