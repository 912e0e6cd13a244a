// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotifytest

import (
	"encoding/binary"

	"github.com/rjeczalik/inotify"
)

// Record encodes a single struct inotify_event. Like the kernel, it pads the
// NUL-terminated name with NULs up to a multiple of inotify.HeaderSize. An
// empty name takes no space at all.
func Record(wd int32, mask, cookie uint32, name string) []byte {
	var n int
	if name != "" {
		n = (len(name)/inotify.HeaderSize + 1) * inotify.HeaderSize
	}
	raw := make([]byte, n)
	copy(raw, name)
	return RawRecord(wd, mask, cookie, raw)
}

// RawRecord encodes a single struct inotify_event with name taken verbatim,
// so its len field is exactly len(name).
func RawRecord(wd int32, mask, cookie uint32, name []byte) []byte {
	p := make([]byte, inotify.HeaderSize+len(name))
	binary.NativeEndian.PutUint32(p[0:4], uint32(wd))
	binary.NativeEndian.PutUint32(p[4:8], mask)
	binary.NativeEndian.PutUint32(p[8:12], cookie)
	binary.NativeEndian.PutUint32(p[12:16], uint32(len(name)))
	copy(p[inotify.HeaderSize:], name)
	return p
}

// Batch concatenates records into a single read buffer.
func Batch(records ...[]byte) []byte {
	var p []byte
	for _, r := range records {
		p = append(p, r...)
	}
	return p
}

// size gives the size of the first record in p, or -1 when p holds no whole
// record.
func size(p []byte) int {
	if len(p) < inotify.HeaderSize {
		return -1
	}
	n := inotify.HeaderSize + int(binary.NativeEndian.Uint32(p[12:16]))
	if n > len(p) {
		return -1
	}
	return n
}
