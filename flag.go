// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Flag represents a single inotify event or watch option bit, or an aggregate
// of such bits.
//
// Values are the ones from <sys/inotify.h>, so a Flag converts directly into
// the mask accepted by inotify_add_watch(2) and back from the mask reported
// in struct inotify_event.
type Flag uint32

// Event flags, reported by the kernel in the mask of each event.
const (
	Access       Flag = 0x00000001 // File was accessed
	Modify       Flag = 0x00000002 // File was modified
	Attrib       Flag = 0x00000004 // Metadata changed
	CloseWrite   Flag = 0x00000008 // Writtable file was closed
	CloseNowrite Flag = 0x00000010 // Unwrittable file closed
	Open         Flag = 0x00000020 // File was opened
	MovedFrom    Flag = 0x00000040 // File was moved from X
	MovedTo      Flag = 0x00000080 // File was moved to Y
	Create       Flag = 0x00000100 // Subfile was created
	Delete       Flag = 0x00000200 // Subfile was deleted
	DeleteSelf   Flag = 0x00000400 // Self was deleted
	MoveSelf     Flag = 0x00000800 // Self was moved

	Unmount   Flag = 0x00002000 // Backing fs was unmounted
	QOverflow Flag = 0x00004000 // Event queue overflowed
	Ignored   Flag = 0x00008000 // Watch was removed
	IsDir     Flag = 0x40000000 // Event occurred against a directory
)

// Option flags, meaningful only when a watch is created.
const (
	OnlyDir    Flag = 0x01000000 // Only watch the path if it is a directory
	DontFollow Flag = 0x02000000 // Do not follow a symlink
	ExclUnlink Flag = 0x04000000 // Exclude events on unlinked objects
	MaskAdd    Flag = 0x20000000 // Add to the mask of an already existing watch
	Oneshot    Flag = 0x80000000 // Only send event once
)

// Aggregates expand to their constituent bits.
const (
	Close     = CloseWrite | CloseNowrite
	Move      = MovedFrom | MovedTo
	AllEvents = Access | Modify | Attrib | Close | Open | Move | Create |
		Delete | DeleteSelf | MoveSelf
)

// Recursive makes Watch descend into every subdirectory of the watched path
// and follow newly created ones. It is handled by this package and never
// reaches the kernel.
const Recursive Flag = 0x00010000

// flag describes a single entry of the flag table.
type flag struct {
	flag Flag
	name string
}

// flags is the canonical order in which FromMask reports flags.
var flags = []flag{
	{Access, "access"},
	{Modify, "modify"},
	{Attrib, "attrib"},
	{CloseWrite, "close_write"},
	{CloseNowrite, "close_nowrite"},
	{Open, "open"},
	{MovedFrom, "moved_from"},
	{MovedTo, "moved_to"},
	{Create, "create"},
	{Delete, "delete"},
	{DeleteSelf, "delete_self"},
	{MoveSelf, "move_self"},
	{Unmount, "unmount"},
	{QOverflow, "q_overflow"},
	{Ignored, "ignored"},
	{OnlyDir, "onlydir"},
	{DontFollow, "dont_follow"},
	{ExclUnlink, "excl_unlink"},
	{MaskAdd, "mask_add"},
	{IsDir, "isdir"},
	{Oneshot, "oneshot"},
}

// aggregates are accepted by ParseFlag but never reported by FromMask.
var aggregates = []flag{
	{Close, "close"},
	{Move, "move"},
	{AllEvents, "all_events"},
	{Recursive, "recursive"},
}

var fstr = map[Flag]string{
	Access:       "inotify.Access",
	Modify:       "inotify.Modify",
	Attrib:       "inotify.Attrib",
	CloseWrite:   "inotify.CloseWrite",
	CloseNowrite: "inotify.CloseNowrite",
	Open:         "inotify.Open",
	MovedFrom:    "inotify.MovedFrom",
	MovedTo:      "inotify.MovedTo",
	Create:       "inotify.Create",
	Delete:       "inotify.Delete",
	DeleteSelf:   "inotify.DeleteSelf",
	MoveSelf:     "inotify.MoveSelf",
	Unmount:      "inotify.Unmount",
	QOverflow:    "inotify.QOverflow",
	Ignored:      "inotify.Ignored",
	OnlyDir:      "inotify.OnlyDir",
	DontFollow:   "inotify.DontFollow",
	ExclUnlink:   "inotify.ExclUnlink",
	MaskAdd:      "inotify.MaskAdd",
	IsDir:        "inotify.IsDir",
	Oneshot:      "inotify.Oneshot",
	Recursive:    "inotify.Recursive",
}

// known is a union of every bit a Flag may carry.
var known = func() (f Flag) {
	for _, fl := range flags {
		f |= fl.flag
	}
	return f | Recursive
}()

// String implements fmt.Stringer interface.
func (f Flag) String() string {
	var s []string
	for _, fl := range flags {
		if f&fl.flag != 0 {
			s = append(s, fstr[fl.flag])
		}
	}
	if f&Recursive != 0 {
		s = append(s, fstr[Recursive])
	}
	if rest := f &^ known; rest != 0 {
		s = append(s, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(s, "|")
}

// ToMask ORs the given flags into a mask. Passing a value which carries a bit
// unknown to this package is a programming error and panics.
func ToMask(fs ...Flag) (mask uint32) {
	for _, f := range fs {
		if f == 0 || f&^known != 0 {
			panic(fmt.Sprintf("inotify: unknown flag %#x", uint32(f)))
		}
		mask |= uint32(f)
	}
	return mask
}

// FromMask returns every known flag whose bit is set in mask, in a fixed
// order. Aggregates and the Recursive flag are never returned.
func FromMask(mask uint32) []Flag {
	var fs []Flag
	for _, fl := range flags {
		if mask&uint32(fl.flag) != 0 {
			fs = append(fs, fl.flag)
		}
	}
	return fs
}

// ParseFlag looks up a flag by its inotify(7) name, lowercased and stripped
// of the IN_ prefix, e.g. "close_write" or "all_events".
func ParseFlag(name string) (Flag, error) {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "in_")
	for _, tab := range [][]flag{flags, aggregates} {
		for _, fl := range tab {
			if fl.name == s {
				return fl.flag, nil
			}
		}
	}
	return 0, errors.Wrapf(ErrUnknownFlag, "%q", name)
}

// ParseFlags parses each of names with ParseFlag.
func ParseFlags(names ...string) ([]Flag, error) {
	fs := make([]Flag, 0, len(names))
	for _, name := range names {
		f, err := ParseFlag(name)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	return fs, nil
}

// joinflags gives a union of fs.
func joinflags(fs []Flag) (f Flag) {
	for _, fl := range fs {
		f |= fl
	}
	return f
}
