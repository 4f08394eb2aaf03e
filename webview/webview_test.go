// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package webview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func readFrame(t *testing.T, mr *multipart.Reader) image.Image {
	t.Helper()
	part, err := mr.NextPart()
	if err != nil {
		t.Fatal(err)
	}
	if ct := part.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Content-Type %q", ct)
	}
	n, err := strconv.Atoi(part.Header.Get("Content-Length"))
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(part)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != n {
		t.Fatalf("read %d bytes, Content-Length is %d", len(body), n)
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func isLit(img image.Image, x, y int) bool {
	r, _, _, _ := img.At(x, y).RGBA()
	return r > 0x8000
}

func TestStream(t *testing.T) {
	s, err := New(zaptest.NewLogger(t), &Opts{W: 16, H: 8, Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	if s.Bounds() != image.Rect(0, 0, 16, 8) {
		t.Fatal(s.Bounds())
	}
	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	if mediaType != "multipart/x-mixed-replace" || len(params["boundary"]) != 60 {
		t.Fatal(mediaType, params)
	}
	mr := multipart.NewReader(resp.Body, params["boundary"])

	img := readFrame(t, mr)
	if img.Bounds().Size() != image.Pt(32, 16) {
		t.Fatal(img.Bounds())
	}
	if isLit(img, 0, 0) {
		t.Fatal("display starts black")
	}

	src := image.NewGray(image.Rect(0, 0, 16, 8))
	src.SetGray(0, 0, color.Gray{Y: 255})
	if err := s.Draw(s.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	img = readFrame(t, mr)
	if !isLit(img, 0, 0) || isLit(img, 2, 0) {
		t.Fatal("new content not streamed")
	}

	if err := s.Halt(); err != nil {
		t.Fatal(err)
	}
	if _, err := mr.NextPart(); err == nil {
		t.Fatal("stream must end on Halt")
	}
}

func TestKeepalive(t *testing.T) {
	s, err := New(zaptest.NewLogger(t), &Opts{W: 8, H: 8, Keepalive: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s)
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	mr := multipart.NewReader(resp.Body, params["boundary"])
	readFrame(t, mr)
	readFrame(t, mr)
	_ = s.Halt()
}

func TestMethod(t *testing.T) {
	s, err := New(zaptest.NewLogger(t), &Opts{W: 8, H: 8})
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatal(w.Code)
	}
	if _, err := New(zaptest.NewLogger(t), &Opts{}); err == nil {
		t.Fatal("invalid size")
	}
}
