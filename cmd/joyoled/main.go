// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// joyoled moves a square on an SSD1306 OLED with an analog joystick, sets
// the brightness of a RGB LED from the joystick position and toggles it with
// two buttons.
//
// With --virtual, no hardware is needed: the display is shown in the
// terminal and the joystick moves by itself. With --listen, the display can
// also be watched from a browser.
package main

import (
	"github.com/GermanBionicSystems/joyoled/config"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var configPath = flag.String("config", config.DefaultPath(), "configuration file, created on first run")
var virtualMode = flag.Bool("virtual", false, "emulate the board, showing the display in the terminal")
var snapshotPath = flag.String("snapshot", "", "save the last frame as a PNG file on exit")
var logLevel = flag.String("log-level", "", "log level, overrides the configuration file")
var busName = flag.String("bus", "", "I²C bus name, overrides the configuration file")
var listen = flag.String("listen", "", "serve a live view of the display over HTTP at this address, e.g. :8080")

func main() {
	flag.Parse()

	fx.New(
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Provide(
			func() afero.Fs {
				return afero.NewOsFs()
			},
			loadConfig,
			newLogger,
			newBoard,
			newDisplay,
			newWebView,
			newLoop,
		),
		fx.Invoke(
			warnUnsaved,
			run,
		),
	).Run()
}

// unsaved holds why the default configuration could not be written on first
// run. The logger depends on the configuration, so it is reported later.
type unsaved struct {
	err error
}

func loadConfig(fs afero.Fs) (*config.Config, unsaved, error) {
	cfg, err := config.Load(fs, *configPath)
	var nse *config.NotSavedError
	if err != nil && !errors.As(err, &nse) {
		return nil, unsaved{}, err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *busName != "" {
		cfg.Display.Bus = *busName
	}
	return cfg, unsaved{err: err}, nil
}

func warnUnsaved(u unsaved, logger *zap.Logger) {
	if u.err != nil {
		logger.With(zap.Error(u.err)).Warn("running with the default configuration")
	}
}

func newLogger(cfg *config.Config, lc fx.Lifecycle) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))
	return logger, nil
}
