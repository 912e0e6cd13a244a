// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// Channel owns a single inotify descriptor together with the Watchers created
// on it, and turns records read from the descriptor into callback calls.
//
// A Channel is driven by a single goroutine: Watch, Process, Run, ReadEvents
// and Close, as well as Watcher.Close, must not be called concurrently. Stop
// is the only method which may be called from any goroutine.
type Channel struct {
	kern Kernel
	fd   int
	cfg  Config
	reg  *registry
	buf  []byte

	closed  bool
	running atomic.Bool
	stop    atomic.Bool

	// err is the first error raised while dispatching the current batch.
	err error
}

// New gives a new Channel with the default configuration.
func New() (*Channel, error) {
	return NewConfig(DefaultConfig())
}

// NewConfig gives a new Channel configured by cfg.
func NewConfig(cfg Config) (*Channel, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	fd, err := cfg.Kernel.Init()
	if err != nil {
		return nil, err
	}
	dbgprintf("opened descriptor %d", fd)
	return &Channel{
		kern: cfg.Kernel,
		fd:   fd,
		cfg:  cfg,
		reg:  newRegistry(),
	}, nil
}

// Fd gives the underlying descriptor, e.g. for polling it for readiness in an
// external event loop before calling Process.
func (c *Channel) Fd() int { return c.fd }

// Watchers gives the registered Watchers ordered by their ids.
func (c *Channel) Watchers() []*Watcher { return c.reg.list() }

// Watch creates a Watcher for path which calls cb for every event matching
// flags. A nil cb ignores the events.
//
// If flags contain Recursive, every directory under path is watched as well,
// and so is every directory created or moved under it later. Setting up a
// recursive watch may fail after some of the directories were already
// watched; those watches are kept.
func (c *Channel) Watch(path string, cb Callback, flags ...Flag) (*Watcher, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if cb == nil {
		cb = nop
	}
	if joinflags(flags)&Recursive != 0 {
		r := &recursive{ch: c, flags: append([]Flag(nil), flags...), cb: cb}
		return r.watch(path)
	}
	return c.watch(path, flags, cb)
}

// watch adds a single kernel watch and registers its Watcher.
func (c *Channel) watch(path string, flags []Flag, cb Callback) (*Watcher, error) {
	mask := ToMask(flags...) &^ uint32(Recursive)
	if mask&uint32(AllEvents) == 0 {
		return nil, &WatchError{Op: "watch", Path: path, Err: ErrNoFlags}
	}
	wd, err := c.kern.AddWatch(c.fd, path, mask)
	if err != nil {
		return nil, &WatchError{Op: "watch", Path: path, Err: err}
	}
	w := &Watcher{
		ch:    c,
		path:  path,
		flags: kernelflags(flags),
		id:    wd,
		cb:    cb,
	}
	if old := c.reg.add(w); old != nil {
		dbgprintf("watch %d on %q replaces the one on %q", wd, path, old.path)
	} else {
		dbgprintf("watch %d on %q: %v", wd, path, Flag(mask))
	}
	return w, nil
}

// kernelflags gives flags without Recursive, which is never passed to the
// kernel.
func kernelflags(flags []Flag) []Flag {
	fs := make([]Flag, 0, len(flags))
	for _, f := range flags {
		if f &^= Recursive; f != 0 {
			fs = append(fs, f)
		}
	}
	return fs
}

// unwatch removes the kernel watch of w and unregisters it.
func (c *Channel) unwatch(w *Watcher) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.kern.RemoveWatch(c.fd, w.id); err != nil {
		return &WatchError{Op: "unwatch", Path: w.path, Err: err}
	}
	c.reg.del(w.id, w)
	dbgprintf("unwatched %d on %q", w.id, w.path)
	return nil
}

// Run processes events until Stop is called or processing fails. Stop takes
// effect once the batch being dispatched is done, before the next read.
func (c *Channel) Run() error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer c.running.Store(false)
	c.stop.Store(false)
	for !c.stop.Load() {
		if err := c.Process(); err != nil {
			return err
		}
	}
	return nil
}

// Stop makes Run return after the current batch. It does not interrupt a
// blocked read.
func (c *Channel) Stop() {
	c.stop.Store(true)
}

// Process blocks until a batch of events is read and calls the callback of
// each event's Watcher, in the order the kernel reported the events.
//
// When the kernel queue overflowed, the events read before the overflow are
// dispatched and ErrQueueOverflow is returned. An error raised while
// extending a recursive watch is returned after the whole batch is
// dispatched.
func (c *Channel) Process() error {
	events, err := c.ReadEvents()
	for _, e := range events {
		if w := e.Watcher(); w != nil {
			w.Dispatch(e)
		} else {
			dbgprintf("no watch %d for %v", e.wd, e)
		}
		if e.Has(Ignored) && c.reg.del(e.wd, nil) {
			dbgprintf("watch %d was removed by the kernel", e.wd)
		}
	}
	if derr := c.err; derr != nil {
		c.err = nil
		if err == nil {
			err = derr
		}
	}
	return err
}

// fail records err to be returned by the current Process call.
func (c *Channel) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Close closes the descriptor, which removes all the watches at once. On
// failure the Watchers stay registered.
func (c *Channel) Close() error {
	if c.closed {
		return ErrClosed
	}
	if err := c.kern.Close(c.fd); err != nil {
		return errors.Wrapf(err, "inotify: closing descriptor %d", c.fd)
	}
	dbgprintf("closed descriptor %d with %d watch(es)", c.fd, c.reg.len())
	c.reg.clear()
	c.closed = true
	return nil
}
