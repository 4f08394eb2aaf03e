// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads and saves the joyoled configuration file.
//
// The file is YAML. A missing file is created with the defaults on first
// load, readable by its owner only.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/GermanBionicSystems/joyoled/iioadc"
	"github.com/GermanBionicSystems/joyoled/joystick"
	"github.com/GermanBionicSystems/joyoled/ssd1306"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Display is the OLED panel.
type Display struct {
	// Bus is the I²C bus name as known by i2creg; empty for the first one.
	Bus      string `yaml:"bus"`
	Address  uint16 `yaml:"address"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Contrast uint8  `yaml:"contrast"`
}

// Pins are gpioreg pin names.
type Pins struct {
	Red         string `yaml:"red"`
	Green       string `yaml:"green"`
	Blue        string `yaml:"blue"`
	ButtonA     string `yaml:"button_a"`
	ButtonStick string `yaml:"button_stick"`
}

// ADC is the converter the joystick axes are wired to.
type ADC struct {
	// Device is the IIO device directory name, e.g. "iio:device0".
	Device   string `yaml:"device"`
	XChannel int    `yaml:"x_channel"`
	YChannel int    `yaml:"y_channel"`
	Bits     int    `yaml:"bits"`
	VRefMV   int    `yaml:"vref_mv"`
}

// Loop tunes the application loop.
type Loop struct {
	Period     time.Duration `yaml:"period"`
	Debounce   time.Duration `yaml:"debounce"`
	DeadZone   int32         `yaml:"dead_zone"`
	SquareSize int           `yaml:"square_size"`
	PWMHz      int           `yaml:"pwm_hz"`
}

// Config is the top-level application configuration.
type Config struct {
	Display Display `yaml:"display"`
	Pins    Pins    `yaml:"pins"`
	ADC     ADC     `yaml:"adc"`
	Loop    Loop    `yaml:"loop"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
	// SnapshotScale is the size in pixels of a display pixel in snapshots.
	SnapshotScale int `yaml:"snapshot_scale"`
}

// DefaultConfig returns the configuration of the reference board: a 128x64
// panel at 0x3C and the LEDs and buttons on the pins it uses.
func DefaultConfig() *Config {
	return &Config{
		Display: Display{
			Address:  ssd1306.DefaultOpts.Addr,
			Width:    ssd1306.DefaultOpts.W,
			Height:   ssd1306.DefaultOpts.H,
			Contrast: 0xFF,
		},
		Pins: Pins{
			Red:         "GPIO12",
			Green:       "GPIO11",
			Blue:        "GPIO13",
			ButtonA:     "GPIO5",
			ButtonStick: "GPIO22",
		},
		ADC: ADC{
			Device:   iioadc.DefaultOpts.Device,
			XChannel: 0,
			YChannel: 1,
			Bits:     iioadc.DefaultOpts.Bits,
			VRefMV:   3300,
		},
		Loop: Loop{
			Period:     joystick.DefaultOpts.Period,
			Debounce:   joystick.DefaultOpts.Debounce,
			DeadZone:   joystick.DefaultOpts.DeadZone,
			SquareSize: joystick.DefaultOpts.SquareSize,
			PWMHz:      1000,
		},
		LogLevel:      "info",
		SnapshotScale: 4,
	}
}

// Normalize replaces the values that cannot be used with the defaults. An
// empty section is replaced as a whole.
//
// A contrast, dead zone or debounce of 0 is valid and kept.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Display == (Display{}) {
		c.Display = d.Display
	}
	if c.Display.Address == 0 {
		c.Display.Address = d.Display.Address
	}
	if c.Display.Width <= 0 {
		c.Display.Width = d.Display.Width
	}
	if c.Display.Height <= 0 {
		c.Display.Height = d.Display.Height
	}
	if c.Pins == (Pins{}) {
		c.Pins = d.Pins
	}
	if c.ADC == (ADC{}) {
		c.ADC = d.ADC
	}
	if c.ADC.Device == "" {
		c.ADC.Device = d.ADC.Device
	}
	if c.ADC.Bits <= 0 {
		c.ADC.Bits = d.ADC.Bits
	}
	if c.ADC.VRefMV <= 0 {
		c.ADC.VRefMV = d.ADC.VRefMV
	}
	if c.Loop == (Loop{}) {
		c.Loop = d.Loop
	}
	if c.Loop.Period <= 0 {
		c.Loop.Period = d.Loop.Period
	}
	if c.Loop.Debounce < 0 {
		c.Loop.Debounce = d.Loop.Debounce
	}
	if c.Loop.DeadZone < 0 {
		c.Loop.DeadZone = d.Loop.DeadZone
	}
	if c.Loop.SquareSize <= 0 {
		c.Loop.SquareSize = d.Loop.SquareSize
	}
	if c.Loop.PWMHz <= 0 {
		c.Loop.PWMHz = d.Loop.PWMHz
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.SnapshotScale <= 0 {
		c.SnapshotScale = d.SnapshotScale
	}
}

// DisplayOpts returns the driver options.
func (c *Config) DisplayOpts() *ssd1306.Opts {
	return &ssd1306.Opts{W: c.Display.Width, H: c.Display.Height, Addr: c.Display.Address}
}

// ADCOpts returns the options of the ADC channel ch.
func (c *Config) ADCOpts(ch int) *iioadc.Opts {
	return &iioadc.Opts{
		Device:  c.ADC.Device,
		Channel: ch,
		Bits:    c.ADC.Bits,
		VRef:    physic.ElectricPotential(c.ADC.VRefMV) * physic.MilliVolt,
	}
}

// LoopOpts returns the loop options.
func (c *Config) LoopOpts() *joystick.Opts {
	o := joystick.DefaultOpts
	o.Period = c.Loop.Period
	o.Debounce = c.Loop.Debounce
	o.DeadZone = c.Loop.DeadZone
	o.SquareSize = c.Loop.SquareSize
	o.PWMFreq = physic.Frequency(c.Loop.PWMHz) * physic.Hertz
	return &o
}

// NotSavedError is returned by Load along with the default configuration
// when the configuration file does not exist and cannot be created.
type NotSavedError struct {
	Path string
	Err  error
}

func (e *NotSavedError) Error() string {
	return "config: saving defaults to " + e.Path + ": " + e.Err.Error()
}

func (e *NotSavedError) Unwrap() error {
	return e.Err
}

// DefaultPath returns the configuration file of the current user, or a file
// in the working directory when the user has no configuration directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "joyoled.yaml"
	}
	return filepath.Join(dir, "joyoled", "config.yaml")
}

// Load reads the configuration at path.
//
// Keys missing from the file keep their default value. When the file does
// not exist, the default configuration is written there and returned; if it
// cannot be written, the defaults are returned with a *NotSavedError.
func Load(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(fs, path, cfg); err != nil {
				return cfg, &NotSavedError{Path: path, Err: err}
			}
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path, replacing it atomically.
//
// The parent directory is created if needed and the file is only readable by
// its owner.
func Save(fs afero.Fs, path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}
	cfg.Normalize()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "config: encoding")
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "config: creating %s", dir)
	}
	tmp, err := afero.TempFile(fs, dir, ".joyoled-config-*.tmp")
	if err != nil {
		return errors.Wrap(err, "config: creating temporary file")
	}
	name := tmp.Name()
	defer fs.Remove(name)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "config: writing %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "config: closing %s", name)
	}
	if err := fs.Chmod(name, 0o600); err != nil {
		return errors.Wrapf(err, "config: chmod %s", name)
	}
	return errors.Wrapf(fs.Rename(name, path), "config: renaming to %s", path)
}
