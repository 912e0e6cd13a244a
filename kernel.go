// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

// Kernel is the set of primitives a Channel needs from the kernel's
// change-notification interface. SysKernel implements it with inotify(7);
// other implementations are meant for tests.
//
// Errors returned by a Kernel are expected to wrap the errno value, so the
// Channel is able to tell a too-small read buffer (EINVAL) or an interrupted
// read (EINTR) from other failures.
type Kernel interface {
	// Init opens a new notification descriptor.
	Init() (fd int, err error)

	// AddWatch adds or modifies a watch on path and gives its descriptor.
	AddWatch(fd int, path string, mask uint32) (wd int32, err error)

	// RemoveWatch removes the watch given by wd.
	RemoveWatch(fd int, wd int32) error

	// Read reads pending records into buf. It blocks until at least one
	// record is available.
	Read(fd int, buf []byte) (n int, err error)

	// Close closes the notification descriptor.
	Close(fd int) error
}

// SysKernel is a Kernel backed by the inotify system calls.
type SysKernel struct{}

var _ Kernel = SysKernel{}
