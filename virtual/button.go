// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package virtual

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
)

// Button is an active low push button with a pull up.
//
// Press() emulates a press and release; the falling then rising edges are
// reported by WaitForEdge().
type Button struct {
	l     *zap.Logger
	name  string
	num   int
	edges chan gpio.Level

	mu    sync.Mutex
	level gpio.Level
	edge  gpio.Edge
}

// NewButton returns a released button.
func NewButton(logger *zap.Logger, name string, num int) *Button {
	return &Button{
		l:     logger.With(zap.String("pin", name)),
		name:  name,
		num:   num,
		edges: make(chan gpio.Level, 8),
		level: gpio.High,
	}
}

// Press emulates a press followed by a release.
//
// Edges are dropped when nobody waits for them.
func (b *Button) Press() {
	b.l.Info("press")
	for _, l := range []gpio.Level{gpio.Low, gpio.High} {
		select {
		case b.edges <- l:
		default:
		}
	}
}

func (b *Button) String() string {
	return b.name
}

// Halt implements conn.Resource.
func (b *Button) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (b *Button) Name() string {
	return b.name
}

// Number implements pin.Pin.
func (b *Button) Number() int {
	return b.num
}

// Function implements pin.Pin.
func (b *Button) Function() string {
	return "In/" + b.Read().String()
}

// In implements gpio.PinIn.
func (b *Button) In(pull gpio.Pull, edge gpio.Edge) error {
	if pull == gpio.PullDown {
		return errors.New("virtual: a button to ground needs a pull up")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edge = edge
	for {
		select {
		case <-b.edges:
		default:
			return nil
		}
	}
}

// Read implements gpio.PinIn.
func (b *Button) Read() gpio.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}

// WaitForEdge implements gpio.PinIn.
//
// Only the edges selected with In() are reported.
func (b *Button) WaitForEdge(timeout time.Duration) bool {
	var after <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		after = t.C
	}
	for {
		select {
		case l := <-b.edges:
			b.mu.Lock()
			b.level = l
			edge := b.edge
			b.mu.Unlock()
			if edge == gpio.BothEdges || (edge == gpio.FallingEdge && !l) || (edge == gpio.RisingEdge && l) {
				return true
			}
		case <-after:
			return false
		}
	}
}

// Pull implements gpio.PinIn.
func (b *Button) Pull() gpio.Pull {
	return gpio.PullUp
}

// DefaultPull implements gpio.PinIn.
func (b *Button) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

var _ gpio.PinIn = &Button{}
