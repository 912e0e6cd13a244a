// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux

package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/rjeczalik/inotify"
)

// serve dispatches events of ch until a signal is received on stop or
// processing fails. The Channel is used from the calling goroutine only; stop
// is forwarded to a pipe polled together with the inotify descriptor.
func serve(ch *inotify.Channel, stop <-chan os.Signal) error {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return os.NewSyscallError("pipe2", err)
	}
	var wg sync.WaitGroup
	done := make(chan struct{})
	defer func() {
		close(done)
		wg.Wait()
		unix.Close(p[0])
		unix.Close(p[1])
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-stop:
			unix.Write(p[1], []byte{0})
		case <-done:
		}
	}()

	fds := []unix.PollFd{
		{Fd: int32(ch.Fd()), Events: unix.POLLIN},
		{Fd: int32(p[0]), Events: unix.POLLIN},
	}
	for {
		if _, err := unix.Poll(fds, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return os.NewSyscallError("poll", err)
		}
		if fds[1].Revents != 0 {
			return nil
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			return errors.Errorf("inotify descriptor %d failed (revents=%#x)", ch.Fd(), fds[0].Revents)
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		if err := ch.Process(); err != nil {
			if !errors.Is(err, inotify.ErrQueueOverflow) {
				return err
			}
			fmt.Fprintln(os.Stderr, color.YellowString("warning: %v", err))
		}
	}
}
