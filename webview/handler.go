// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package webview

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ServeHTTP streams the display until the client goes away or the Sink is
// halted.
func (s *Sink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	pw, err := newPartWriter(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": pw.boundary}))

	log := s.l.With(zap.String("remote", r.RemoteAddr))
	log.Debug("client connected")
	start := time.Now()
	frames := 0
	defer func() {
		log.With(zap.Int("frames", frames), zap.Duration("duration", time.Since(start))).Debug("client gone")
	}()

	var keepalive <-chan time.Time
	for {
		frame, changed, halt := s.current()
		if err := pw.writeFrame("image/png", frame); err != nil {
			return
		}
		frames++
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		if s.alive > 0 {
			keepalive = time.After(s.alive)
		}
		select {
		case <-changed:
		case <-keepalive:
		case <-halt:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// partWriter writes a never ending MIME multipart body, closing each part
// as soon as it is written so the client can show it right away.
//
// mime/multipart.Writer only writes the boundary ending a part when the next
// one starts.
type partWriter struct {
	w        io.Writer
	boundary string
	started  bool
}

func newPartWriter(w io.Writer) (*partWriter, error) {
	var b [30]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		return nil, err
	}
	return &partWriter{w: w, boundary: hex.EncodeToString(b[:])}, nil
}

func (p *partWriter) writeFrame(contentType string, body []byte) error {
	var buf bytes.Buffer
	if !p.started {
		fmt.Fprintf(&buf, "--%s\r\n", p.boundary)
		p.started = true
	}
	fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(&buf, "Content-Length: %s\r\n\r\n", strconv.Itoa(len(body)))
	buf.Write(body)
	fmt.Fprintf(&buf, "\r\n--%s\r\n", p.boundary)
	_, err := buf.WriteTo(p.w)
	return err
}
