// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrClosed is returned by any operation on a closed Channel.
	ErrClosed = errors.New("inotify: channel is closed")

	// ErrRunning is returned by Run when the Channel is already running.
	ErrRunning = errors.New("inotify: channel is already running")

	// ErrNoFlags is returned by Watch when no event flag was requested.
	ErrNoFlags = errors.New("inotify: no event flags given")

	// ErrQueueOverflow is reported when the kernel dropped events because
	// its queue was full. Events cannot be attributed to any watch.
	ErrQueueOverflow = errors.New("inotify: event queue overflow")

	// ErrShortRecord is reported when a record runs past the read buffer.
	ErrShortRecord = errors.New("inotify: short event record")

	// ErrUnknownFlag is returned when parsing an unknown flag name.
	ErrUnknownFlag = errors.New("inotify: unknown flag")

	// ErrUnsupported is returned on platforms without inotify.
	ErrUnsupported = errors.New("inotify: not supported on this platform")
)

// WatchError records a failed watch operation and the path that caused it.
type WatchError struct {
	Op   string
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	return "inotify: " + e.Op + " " + strconv.Quote(e.Path) + ": " + e.Err.Error()
}

// Unwrap gives the underlying *os.SyscallError.
func (e *WatchError) Unwrap() error { return e.Err }

// ReadError records a failed read from the inotify descriptor.
type ReadError struct {
	Attempts int // number of read attempts made
	Size     int // size of the last read buffer
	Err      error
}

func (e *ReadError) Error() string {
	return "inotify: read failed after " + strconv.Itoa(e.Attempts) +
		" attempt(s) with " + strconv.Itoa(e.Size) + "-byte buffer: " + e.Err.Error()
}

// Unwrap gives the underlying *os.SyscallError.
func (e *ReadError) Unwrap() error { return e.Err }
