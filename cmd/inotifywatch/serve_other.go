// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build !linux

package main

import (
	"os"

	"github.com/rjeczalik/inotify"
)

func serve(*inotify.Channel, <-chan os.Signal) error {
	return inotify.ErrUnsupported
}
