// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Package inotify implements a Linux inotify event pipeline.
//
// A Channel owns a single inotify descriptor. Watch adds a watch for a path
// and registers a Watcher which receives the events the kernel reports for
// it. Process reads one batch of records, decodes them into Events and hands
// each of them to its Watcher's callback, in the order they were read. Run
// calls Process in a loop until Stop is called or an error occurs.
//
// The Recursive flag makes Watch cover a whole directory tree, including the
// directories created or moved into it after the watch was set up:
//
//	ch, err := inotify.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	_, err = ch.Watch("/var/spool", func(e *inotify.Event) {
//		log.Println(e)
//	}, inotify.Recursive, inotify.CloseWrite)
//
// The two halves of a rename carry the same cookie; Event.Related links the
// events of a batch which share one.
//
// A Channel is not safe for concurrent use, except for Stop. Callbacks are
// called synchronously from Process and may use the Channel, e.g. to add
// watches.
//
// Setting the INOTIFY_DEBUG environment variable makes the package log what
// it does to os.Stderr.
package inotify
