// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"image"
	"net"
	"net/http"

	"github.com/GermanBionicSystems/joyoled/config"
	"github.com/GermanBionicSystems/joyoled/ssd1306"
	"github.com/GermanBionicSystems/joyoled/webview"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// newWebView returns nil unless --listen is set.
func newWebView(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (*webview.Sink, error) {
	if *listen == "" {
		return nil, nil
	}
	log := logger.Named("web")
	sink, err := webview.New(log, &webview.Opts{
		W:         cfg.Display.Width,
		H:         cfg.Display.Height,
		Scale:     cfg.SnapshotScale,
		Keepalive: 10 * cfg.Loop.Period,
	})
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/stream", sink)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!DOCTYPE html><title>joyoled</title><body style="background:#222"><img src="/stream" style="image-rendering:pixelated"></body>`))
	})
	srv := &http.Server{Addr: *listen, Handler: mux}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.With(zap.Stringer("addr", ln.Addr())).Info("serving")
			go func() {
				if err := srv.Serve(ln); err != http.ErrServerClosed {
					log.With(zap.Error(err)).Error("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = sink.Halt()
			return srv.Shutdown(ctx)
		},
	})
	return sink, nil
}

// mirror is the display given to the loop. Every frame sent to the panel is
// also drawn to the web view, if any.
type mirror struct {
	*ssd1306.Dev
	sink *webview.Sink
	log  *zap.Logger
}

func (m *mirror) Flush() error {
	if err := m.Dev.Flush(); err != nil {
		return err
	}
	if m.sink != nil {
		if err := m.sink.Draw(m.sink.Bounds(), m.Dev, image.Point{}); err != nil {
			m.log.With(zap.Error(err)).Warn("web view")
		}
	}
	return nil
}
