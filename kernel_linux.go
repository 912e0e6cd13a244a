// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package inotify

import (
	"os"

	"golang.org/x/sys/unix"
)

// Init implements Kernel interface.
func (SysKernel) Init() (int, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC)
	if err != nil {
		return -1, os.NewSyscallError("inotify_init1", err)
	}
	return fd, nil
}

// AddWatch implements Kernel interface.
func (SysKernel) AddWatch(fd int, path string, mask uint32) (int32, error) {
	wd, err := unix.InotifyAddWatch(fd, path, mask)
	if err != nil {
		return -1, os.NewSyscallError("inotify_add_watch", err)
	}
	return int32(wd), nil
}

// RemoveWatch implements Kernel interface.
func (SysKernel) RemoveWatch(fd int, wd int32) error {
	// BUG(goauthors) : watch descriptor is of type `int`, not `uint32`
	if _, err := unix.InotifyRmWatch(fd, uint32(wd)); err != nil {
		return os.NewSyscallError("inotify_rm_watch", err)
	}
	return nil
}

// Read implements Kernel interface.
func (SysKernel) Read(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err != nil {
		return 0, os.NewSyscallError("read", err)
	}
	return n, nil
}

// Close implements Kernel interface.
func (SysKernel) Close(fd int) error {
	if err := unix.Close(fd); err != nil {
		return os.NewSyscallError("close", err)
	}
	return nil
}
