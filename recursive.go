// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// recursive holds what every watch of a single recursive tree shares: the
// flags and callback the tree was requested with.
//
// Each directory of the tree is watched with the requested flags plus Create
// and MovedTo, and dispatches through recursive.dispatch, which filters out
// the events the caller did not ask for and extends the tree with new
// directories. Directories added later get the same dispatch, so they are
// extended as well.
type recursive struct {
	ch    *Channel
	flags []Flag
	cb    Callback
}

// watch watches dir and every directory below it, deepest first.
//
// Only dir is required to exist. A subdirectory which disappears before it
// is watched is skipped.
func (r *recursive) watch(dir string) (*Watcher, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &WatchError{Op: "readdir", Path: dir, Err: err}
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if r.ch.cfg.excluded(sub) {
			dbgprintf("not descending into excluded %q", sub)
			continue
		}
		if _, err := r.watch(sub); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
			dbgprintf("%q vanished before it was watched", sub)
		}
	}
	return r.ch.watch(dir, append(r.flags[:len(r.flags):len(r.flags)], Create, MovedTo), r.dispatch)
}

// dispatch passes e to the caller's callback when it was asked for, and
// watches directories created or moved into the tree.
func (r *recursive) dispatch(e *Event) {
	want := joinflags(r.flags) &^ Recursive
	if want&AllEvents == AllEvents || e.mask&uint32(want) != 0 {
		r.cb(e)
	}
	if !e.IsDir() || !e.Has(Create|MovedTo) {
		return
	}
	dir := e.AbsoluteName()
	if r.ch.closed || r.ch.cfg.excluded(dir) {
		return
	}
	if _, err := r.watch(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			dbgprintf("%q vanished before it was watched", dir)
			return
		}
		r.ch.fail(err)
	}
}
