// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package inotifytest provides utilities for testing code built on top of
// the inotify package without a running kernel.
//
// The package consists of two fixtures:
//
//   - record.go, which encodes struct inotify_event records the same way the
//     kernel lays them out in a read buffer,
//   - kernel.go, which implements inotify.Kernel on an in-memory queue of
//     such records.
//
// A Kernel is scripted by pushing records and errors before the code under
// test reads them:
//
//	k := inotifytest.NewKernel()
//	ch, _ := inotify.NewConfig(inotify.Config{Kernel: k})
//	w, _ := ch.Watch("/tmp", cb, inotify.Create)
//	k.Push(inotifytest.Record(w.ID(), uint32(inotify.Create), 0, "file"))
//	ch.Process()
package inotifytest
