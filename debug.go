// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"log"
	"os"

	"github.com/fatih/color"
)

// dbgprint turns on tracing of the read loop and watch management. It is set
// when the INOTIFY_DEBUG environment variable is non-empty.
var dbgprint = os.Getenv("INOTIFY_DEBUG") != ""

var dbglog = log.New(os.Stderr, "[inotify] ", log.LstdFlags|log.Lmicroseconds)

func dbgprintf(format string, v ...interface{}) {
	if dbgprint {
		dbglog.Printf(format, v...)
	}
}

// dbgwarnf is dbgprintf for conditions that lose events or watches.
func dbgwarnf(format string, v ...interface{}) {
	if dbgprint {
		dbglog.Print(color.YellowString(format, v...))
	}
}
