// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

// Callback handles events reported for a Watcher.
type Callback func(*Event)

func nop(*Event) {}

// Watcher represents a single inotify watch created by Channel.Watch.
//
// A Watcher is registered in its Channel under the watch descriptor the kernel
// gave it. It stays registered until it is closed, the kernel drops the watch
// (an Ignored event is read for it) or the Channel is closed.
type Watcher struct {
	ch    *Channel
	path  string
	flags []Flag
	id    int32
	cb    Callback
}

// ID gives the watch descriptor.
func (w *Watcher) ID() int32 { return w.id }

// Path gives the watched path as it was passed to Watch.
func (w *Watcher) Path() string { return w.path }

// Flags gives the flags the kernel watch was added with. For a directory of a
// recursive tree these are the requested flags without Recursive, followed by
// Create and MovedTo.
func (w *Watcher) Flags() []Flag { return append([]Flag(nil), w.flags...) }

// Channel gives the Channel the watch was created on.
func (w *Watcher) Channel() *Channel { return w.ch }

// Dispatch calls the Watcher's callback with e. A panic raised by the callback
// is not recovered.
func (w *Watcher) Dispatch(e *Event) { w.cb(e) }

// Close removes the watch. When the kernel refuses to remove it, the error is
// returned and the Watcher stays registered.
func (w *Watcher) Close() error {
	return w.ch.unwatch(w)
}

// String implements fmt.Stringer interface.
func (w *Watcher) String() string {
	return joinflags(w.flags).String() + `: "` + w.path + `"`
}
