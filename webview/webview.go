// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package webview provides a display.Drawer that is also an HTTP handler.
// Each client gets the current content of the display and a new picture
// every time it changes.
//
// Pictures are enlarged PNG images sent as a "multipart/x-mixed-replace"
// stream, the MJPEG protocol of IP cameras, which browsers show in a plain
// <img> tag.
package webview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"sync"
	"time"

	"github.com/GermanBionicSystems/joyoled/snapshot"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/display"
)

// Opts for a Sink.
type Opts struct {
	// Width and height of the display.
	W, H int
	// Scale is the size of a display pixel in the pictures.
	Scale int
	// Keepalive is the time after which the last picture is sent again when
	// nothing changed; 0 disables it.
	Keepalive time.Duration
}

// Sink mirrors a display to web clients.
type Sink struct {
	l     *zap.Logger
	scale int
	alive time.Duration

	mu      sync.Mutex
	img     *image.Gray
	frame   []byte
	changed chan struct{} // closed and replaced on every Draw
	halt    chan struct{} // closed and replaced on Halt
}

// New returns a Sink showing a black display.
func New(logger *zap.Logger, opts *Opts) (*Sink, error) {
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("webview: invalid size %dx%d", opts.W, opts.H)
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 4
	}
	s := &Sink{
		l:       logger,
		scale:   scale,
		alive:   opts.Keepalive,
		img:     image.NewGray(image.Rect(0, 0, opts.W, opts.H)),
		changed: make(chan struct{}),
		halt:    make(chan struct{}),
	}
	if err := s.encodeLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sink) String() string {
	return "WebView"
}

// Halt implements conn.Resource.
//
// It ends all the running streams. New clients can still connect.
func (s *Sink) Halt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.halt)
	s.halt = make(chan struct{})
	return nil
}

// ColorModel implements display.Drawer.
func (s *Sink) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements display.Drawer.
func (s *Sink) Bounds() image.Rectangle {
	return s.img.Rect
}

// Draw implements display.Drawer.
//
// The picture is encoded once here and shared by all clients.
func (s *Sink) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.img, r, src, sp, draw.Src)
	if err := s.encodeLocked(); err != nil {
		return err
	}
	close(s.changed)
	s.changed = make(chan struct{})
	return nil
}

func (s *Sink) encodeLocked() error {
	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, s.img, s.scale); err != nil {
		return err
	}
	s.frame = buf.Bytes()
	return nil
}

// current returns the last picture and the channels signaling the next one.
func (s *Sink) current() ([]byte, <-chan struct{}, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, s.changed, s.halt
}

var _ display.Drawer = &Sink{}
var _ http.Handler = &Sink{}
