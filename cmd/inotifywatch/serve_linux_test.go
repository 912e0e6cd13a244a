// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package main

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/rjeczalik/inotify"
)

func newChannel(t *testing.T) *inotify.Channel {
	t.Helper()
	ch, err := inotify.New()
	if err != nil {
		t.Skipf("inotify is not available: %v", err)
	}
	return ch
}

func TestServeStop(t *testing.T) {
	dir := t.TempDir()
	ch := newChannel(t)
	names := make(chan string, 16)
	if _, err := ch.Watch(dir, func(e *inotify.Event) { names <- e.AbsoluteName() }, inotify.Create); err != nil {
		t.Fatalf("Watch()=%v", err)
	}
	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- serve(ch, stop) }()

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case name := <-names:
		if name != file {
			t.Errorf("want event on %s; got %s", file, name)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for an event")
	}
	stop <- syscall.SIGINT
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve()=%v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for serve to return")
	}
	// The Channel is no longer used by serve, so it is closed here.
	if err := ch.Close(); err != nil {
		t.Fatalf("Close()=%v", err)
	}
	if err := ch.Close(); !errors.Is(err, inotify.ErrClosed) {
		t.Errorf("want err=ErrClosed; got %v", err)
	}
}

func TestServeStopBeforeEvents(t *testing.T) {
	ch := newChannel(t)
	defer ch.Close()
	if _, err := ch.Watch(t.TempDir(), nil, inotify.Create); err != nil {
		t.Fatalf("Watch()=%v", err)
	}
	stop := make(chan os.Signal, 1)
	stop <- syscall.SIGTERM
	if err := serve(ch, stop); err != nil {
		t.Errorf("serve()=%v", err)
	}
}
