// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotifytest

import (
	"os"
	"sort"
	"sync"
	"syscall"

	"github.com/pkg/errors"

	"github.com/rjeczalik/inotify"
)

// ErrEmpty is returned by Kernel.Read when there is nothing queued. A real
// read would block forever instead.
var ErrEmpty = errors.New("inotifytest: no pending records")

// Watch describes a single AddWatch call.
type Watch struct {
	WD   int32
	Path string
	Mask uint32
}

// Kernel is an in-memory inotify.Kernel.
//
// Records pushed with Push are handed out by Read the way the kernel does
// it: as many whole records as fit in the buffer, or EINVAL when not even
// the first one fits. Errors queued with Fail are returned by the reads
// preceding any records.
type Kernel struct {
	mu sync.Mutex

	// FD is the descriptor given by Init.
	FD int
	// InitErr, CloseErr and RemoveErr, when set, fail the respective call.
	InitErr   error
	CloseErr  error
	RemoveErr error
	// AddErr maps a path to the error AddWatch fails with for it.
	AddErr map[string]error

	closed  bool
	next    int32
	watches map[int32]Watch
	added   []Watch
	removed []int32
	pending []byte
	errs    []error
	reads   []int
}

var _ inotify.Kernel = (*Kernel)(nil)

// NewKernel gives a new Kernel.
func NewKernel() *Kernel {
	return &Kernel{
		FD:      3,
		AddErr:  make(map[string]error),
		watches: make(map[int32]Watch),
	}
}

// Errno wraps e the way the system calls do.
func Errno(call string, e syscall.Errno) error {
	return os.NewSyscallError(call, e)
}

// Init implements inotify.Kernel interface.
func (k *Kernel) Init() (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.InitErr != nil {
		return -1, k.InitErr
	}
	return k.FD, nil
}

// AddWatch implements inotify.Kernel interface. Watching an already watched
// path gives the existing descriptor, as the kernel does for the same inode.
func (k *Kernel) AddWatch(fd int, path string, mask uint32) (int32, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	switch {
	case k.closed || fd != k.FD:
		return -1, Errno("inotify_add_watch", syscall.EBADF)
	case k.AddErr[path] != nil:
		return -1, k.AddErr[path]
	case mask&uint32(inotify.AllEvents) == 0:
		return -1, Errno("inotify_add_watch", syscall.EINVAL)
	}
	w := Watch{Path: path, Mask: mask}
	for wd, old := range k.watches {
		if old.Path == path {
			w.WD = wd
		}
	}
	if w.WD == 0 {
		k.next++
		w.WD = k.next
	}
	k.watches[w.WD] = w
	k.added = append(k.added, w)
	return w.WD, nil
}

// RemoveWatch implements inotify.Kernel interface. It queues the Ignored
// event the kernel sends for a removed watch.
func (k *Kernel) RemoveWatch(fd int, wd int32) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.RemoveErr != nil {
		return k.RemoveErr
	}
	if _, ok := k.watches[wd]; !ok || k.closed || fd != k.FD {
		return Errno("inotify_rm_watch", syscall.EINVAL)
	}
	delete(k.watches, wd)
	k.removed = append(k.removed, wd)
	k.pending = append(k.pending, Record(wd, uint32(inotify.Ignored), 0, "")...)
	return nil
}

// Read implements inotify.Kernel interface.
func (k *Kernel) Read(fd int, buf []byte) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.reads = append(k.reads, len(buf))
	if k.closed || fd != k.FD {
		return 0, Errno("read", syscall.EBADF)
	}
	if len(k.errs) != 0 {
		err := k.errs[0]
		k.errs = k.errs[1:]
		return 0, err
	}
	if len(k.pending) == 0 {
		return 0, ErrEmpty
	}
	var n int
	for {
		m := size(k.pending[n:])
		if m < 0 || n+m > len(buf) {
			break
		}
		n += m
	}
	if n == 0 {
		return 0, Errno("read", syscall.EINVAL)
	}
	copy(buf, k.pending[:n])
	k.pending = k.pending[n:]
	return n, nil
}

// Close implements inotify.Kernel interface.
func (k *Kernel) Close(fd int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.CloseErr != nil {
		return k.CloseErr
	}
	if k.closed || fd != k.FD {
		return Errno("close", syscall.EBADF)
	}
	k.closed = true
	k.watches = make(map[int32]Watch)
	return nil
}

// Push queues records for reading.
func (k *Kernel) Push(records ...[]byte) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, r := range records {
		k.pending = append(k.pending, r...)
	}
}

// Fail queues errors to be returned by the next reads.
func (k *Kernel) Fail(errs ...error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.errs = append(k.errs, errs...)
}

// Pending gives the number of queued bytes.
func (k *Kernel) Pending() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.pending)
}

// Reads gives the buffer size of every Read call so far.
func (k *Kernel) Reads() []int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]int(nil), k.reads...)
}

// Added gives every successful AddWatch call so far.
func (k *Kernel) Added() []Watch {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]Watch(nil), k.added...)
}

// Removed gives the descriptors of watches removed so far.
func (k *Kernel) Removed() []int32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]int32(nil), k.removed...)
}

// Paths gives the sorted paths of the current watches.
func (k *Kernel) Paths() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	paths := make([]string, 0, len(k.watches))
	for _, w := range k.watches {
		paths = append(paths, w.Path)
	}
	sort.Strings(paths)
	return paths
}

// WD gives the descriptor of the watch on path, or -1.
func (k *Kernel) WD(path string) int32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	for wd, w := range k.watches {
		if w.Path == path {
			return wd
		}
	}
	return -1
}

// Closed reports whether Close succeeded.
func (k *Kernel) Closed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.closed
}
