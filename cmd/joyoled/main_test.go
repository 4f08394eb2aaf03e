// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadConfig_readOnly(t *testing.T) {
	defer func(p, l string) { *configPath, *logLevel = p, l }(*configPath, *logLevel)
	*configPath = "/etc/joyoled/config.yaml"
	*logLevel = "debug"

	cfg, u, err := loadConfig(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" || cfg.Display.Width != 128 {
		t.Fatal(cfg)
	}
	if u.err == nil {
		t.Fatal("the failed save must be reported")
	}
	core, logs := observer.New(zap.WarnLevel)
	warnUnsaved(u, zap.New(core))
	if logs.Len() != 1 {
		t.Fatalf("%d warnings", logs.Len())
	}
}

func TestLoadConfig_parseError(t *testing.T) {
	defer func(p string) { *configPath = p }(*configPath)
	*configPath = "/c.yaml"
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/c.yaml", []byte("display: [1"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadConfig(fs); err == nil {
		t.Fatal("invalid file must fail")
	}
}
