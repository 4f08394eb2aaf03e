// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/GermanBionicSystems/joyoled/config"
	"github.com/GermanBionicSystems/joyoled/joystick"
	"github.com/GermanBionicSystems/joyoled/snapshot"
	"github.com/GermanBionicSystems/joyoled/ssd1306"
	"github.com/spf13/afero"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// run starts the loop with the application and stops it first on shutdown.
//
// A failing loop stops the application with exit code 1.
func run(loop *joystick.Loop, dev *ssd1306.Dev, cfg *config.Config, fs afero.Fs, logger *zap.Logger, lc fx.Lifecycle, sd fx.Shutdowner) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.With(zap.Stringer("display", dev), zap.Duration("period", cfg.Loop.Period)).Info("starting")
			go func() {
				defer close(done)
				if err := loop.Run(ctx); err != nil {
					logger.With(zap.Error(err)).Error("loop failed")
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			if err := loop.Halt(); err != nil {
				logger.With(zap.Error(err)).Warn("turning LEDs off")
			}
			if *snapshotPath != "" {
				if err := snapshot.Save(fs, *snapshotPath, dev, cfg.SnapshotScale); err != nil {
					return err
				}
				logger.With(zap.String("path", *snapshotPath)).Info("snapshot saved")
			}
			logger.With(zap.Bool("pwm", loop.State.PWM.Load()), zap.Bool("led", loop.State.LED.Load())).Info("stopped")
			return nil
		},
	})
}
