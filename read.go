// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ReadEvents blocks until a batch of records is read and gives the decoded
// events. Events sharing a non-zero cookie are made related to each other.
//
// The kernel refuses with EINVAL a read into a buffer too small for the
// next record; the buffer is then doubled and the read retried. Interrupted
// reads are retried with the same buffer. Both count towards the
// Config.MaxReadAttempts limit.
//
// On a queue overflow the events decoded before the overflow record are
// returned along with ErrQueueOverflow.
func (c *Channel) ReadEvents() ([]*Event, error) {
	if c.closed {
		return nil, ErrClosed
	}
	n, err := c.read()
	if err != nil {
		return nil, err
	}
	var (
		events []*Event
		d      = NewDecoder(c, c.buf[:n])
	)
	for {
		e, err := d.Next()
		if err != nil {
			correlate(events)
			if errors.Is(err, ErrQueueOverflow) {
				dbgwarnf("queue overflow after %d event(s)", len(events))
			}
			return events, err
		}
		if e == nil {
			break
		}
		events = append(events, e)
	}
	correlate(events)
	return events, nil
}

// read fills c.buf with a single batch and gives its length.
func (c *Channel) read() (int, error) {
	size := c.cfg.BufferRecords * HeaderSize
	for attempt := 1; ; attempt++ {
		if len(c.buf) < size {
			c.buf = make([]byte, size)
		}
		n, err := c.kern.Read(c.fd, c.buf[:size])
		if err == nil {
			return n, nil
		}
		grow := errors.Is(err, syscall.EINVAL)
		if (!grow && !errors.Is(err, syscall.EINTR)) || attempt >= c.cfg.MaxReadAttempts {
			return 0, &ReadError{Attempts: attempt, Size: size, Err: err}
		}
		if grow {
			size *= 2
			dbgprintf("batch does not fit, growing read buffer to %s", humanize.IBytes(uint64(size)))
		}
	}
}
