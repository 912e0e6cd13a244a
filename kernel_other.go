// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build !linux

package inotify

// Init implements Kernel interface. It always fails outside Linux.
func (SysKernel) Init() (int, error) { return -1, ErrUnsupported }

// AddWatch implements Kernel interface.
func (SysKernel) AddWatch(int, string, uint32) (int32, error) { return -1, ErrUnsupported }

// RemoveWatch implements Kernel interface.
func (SysKernel) RemoveWatch(int, int32) error { return ErrUnsupported }

// Read implements Kernel interface.
func (SysKernel) Read(int, []byte) (int, error) { return 0, ErrUnsupported }

// Close implements Kernel interface.
func (SysKernel) Close(int) error { return ErrUnsupported }
