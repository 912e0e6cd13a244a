// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// HeaderSize is the size of the fixed part of struct inotify_event: wd, mask,
// cookie and len, each four bytes wide.
const HeaderSize = 16

// Event describes a single record read from an inotify descriptor.
//
// An Event is immutable once returned by Channel.ReadEvents. It does not own
// the Watcher it was reported for; Watcher resolves it through the Channel's
// registry each time it is called.
type Event struct {
	ch     *Channel
	wd     int32
	mask   uint32
	cookie uint32
	name   string
	size   int

	once  sync.Once
	flags []Flag

	related []*Event
}

// WatcherID gives the watch descriptor the event was reported for.
func (e *Event) WatcherID() int32 { return e.wd }

// Cookie gives the value which ties together the MovedFrom and MovedTo halves
// of a single rename. It is zero for all other events.
func (e *Event) Cookie() uint32 { return e.cookie }

// Name gives the name of the entry within a watched directory the event
// happened to. It is empty when the event concerns the watched path itself.
func (e *Event) Name() string { return e.name }

// Mask gives the raw event mask.
func (e *Event) Mask() uint32 { return e.mask }

// Size gives the number of bytes the record occupied in the read buffer.
func (e *Event) Size() int { return e.size }

// Channel gives the Channel the event was read from.
func (e *Event) Channel() *Channel { return e.ch }

// Flags gives the flags set in the event mask, in the FromMask order.
func (e *Event) Flags() []Flag {
	e.once.Do(func() { e.flags = FromMask(e.mask) })
	return append([]Flag(nil), e.flags...)
}

// Has reports whether any of the bits of f is set in the event mask.
func (e *Event) Has(f Flag) bool { return e.mask&uint32(f) != 0 }

// IsDir reports whether the subject of the event is a directory.
func (e *Event) IsDir() bool { return e.Has(IsDir) }

// Related gives the other events of the same batch that share a non-zero
// cookie with e, in the order they were read.
func (e *Event) Related() []*Event {
	if len(e.related) == 0 {
		return nil
	}
	return append([]*Event(nil), e.related...)
}

// Watcher gives the Watcher the event was reported for, or nil when the watch
// is no longer registered.
func (e *Event) Watcher() *Watcher {
	if e.ch == nil {
		return nil
	}
	return e.ch.reg.get(e.wd)
}

// AbsoluteName gives the path of the event subject, which is the watched path
// joined with Name.
func (e *Event) AbsoluteName() string {
	w := e.Watcher()
	switch {
	case w == nil:
		return e.name
	case e.name == "":
		return w.path
	default:
		return filepath.Join(w.path, e.name)
	}
}

// String implements fmt.Stringer interface.
func (e *Event) String() string {
	return Flag(e.mask).String() + `: "` + e.AbsoluteName() + `"`
}

// Decoder reads consecutive records from a buffer filled by a single read of
// an inotify descriptor.
type Decoder struct {
	ch  *Channel
	buf []byte
	off int
}

// NewDecoder gives a Decoder reading records from buf. Events it returns
// resolve their Watchers through ch, which may be nil.
func NewDecoder(ch *Channel, buf []byte) *Decoder {
	return &Decoder{ch: ch, buf: buf}
}

// Len gives the number of bytes not yet decoded.
func (d *Decoder) Len() int { return len(d.buf) - d.off }

// Next decodes the next record. It returns a nil Event and a nil error when
// the buffer is exhausted.
//
// The overflow record is not turned into an Event: Next consumes it and
// returns ErrQueueOverflow.
func (d *Decoder) Next() (*Event, error) {
	b := d.buf[d.off:]
	if len(b) == 0 {
		return nil, nil
	}
	if len(b) < HeaderSize {
		return nil, errors.Wrapf(ErrShortRecord, "%d byte(s) left at offset %d", len(b), d.off)
	}
	n := binary.NativeEndian.Uint32(b[12:16])
	if uint64(n) > uint64(len(b)-HeaderSize) {
		return nil, errors.Wrapf(ErrShortRecord, "name of %d byte(s) at offset %d, %d left",
			n, d.off, len(b)-HeaderSize)
	}
	size := HeaderSize + int(n)
	e := &Event{
		ch:     d.ch,
		wd:     int32(binary.NativeEndian.Uint32(b[0:4])),
		mask:   binary.NativeEndian.Uint32(b[4:8]),
		cookie: binary.NativeEndian.Uint32(b[8:12]),
		name:   string(bytes.TrimRight(b[HeaderSize:size], "\x00")),
		size:   size,
	}
	d.off += size
	if e.mask&uint32(QOverflow) != 0 {
		return nil, ErrQueueOverflow
	}
	return e, nil
}

// correlate sets Related of every event which shares a non-zero cookie with
// other events of the batch.
func correlate(events []*Event) {
	groups := make(map[uint32][]*Event)
	for _, e := range events {
		if e.cookie != 0 {
			groups[e.cookie] = append(groups[e.cookie], e)
		}
	}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		for i, e := range group {
			related := make([]*Event, 0, len(group)-1)
			related = append(related, group[:i]...)
			e.related = append(related, group[i+1:]...)
		}
	}
}
