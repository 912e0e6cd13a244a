// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import "sort"

// registry maps watch descriptors to Watchers. It is owned by a single
// Channel and is not safe for concurrent use.
type registry struct {
	m map[int32]*Watcher
}

func newRegistry() *registry {
	return &registry{m: make(map[int32]*Watcher)}
}

// add registers w under its id, replacing a Watcher the kernel merged it with.
func (r *registry) add(w *Watcher) (old *Watcher) {
	old = r.m[w.id]
	r.m[w.id] = w
	return old
}

func (r *registry) get(wd int32) *Watcher {
	return r.m[wd]
}

// del unregisters wd. If w is non-nil, the entry is removed only when it still
// points to w.
func (r *registry) del(wd int32, w *Watcher) bool {
	cur, ok := r.m[wd]
	if !ok || (w != nil && cur != w) {
		return false
	}
	delete(r.m, wd)
	return true
}

func (r *registry) clear() {
	r.m = make(map[int32]*Watcher)
}

func (r *registry) len() int {
	return len(r.m)
}

// list gives registered Watchers ordered by id.
func (r *registry) list() []*Watcher {
	ws := make([]*Watcher, 0, len(r.m))
	for _, w := range r.m {
		ws = append(ws, w)
	}
	sort.Slice(ws, func(i, j int) bool { return ws[i].id < ws[j].id })
	return ws
}
