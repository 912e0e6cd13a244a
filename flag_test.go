// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"testing"

	"github.com/d4l3k/messagediff"
	"github.com/pkg/errors"
)

// eventFlags lists the event flags in the FromMask order.
var eventFlags = []Flag{
	Access, Modify, Attrib, CloseWrite, CloseNowrite, Open, MovedFrom, MovedTo,
	Create, Delete, DeleteSelf, MoveSelf, Unmount, QOverflow, Ignored, IsDir,
}

func equalFlags(a, b []Flag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFlagRoundTrip(t *testing.T) {
	for set := 0; set < 1<<len(eventFlags); set++ {
		var want []Flag
		for i, f := range eventFlags {
			if set&(1<<i) != 0 {
				want = append(want, f)
			}
		}
		var mask uint32
		if len(want) != 0 {
			mask = ToMask(want...)
		}
		if got := FromMask(mask); !equalFlags(got, want) {
			diff, _ := messagediff.PrettyDiff(want, got)
			t.Fatalf("FromMask(%#x) mismatch (set=%#x):\n%s", mask, set, diff)
		}
	}
}

func TestToMask(t *testing.T) {
	cases := []struct {
		flags []Flag
		mask  uint32
	}{
		{[]Flag{Create}, 0x100},
		{[]Flag{Create, Delete}, 0x300},
		{[]Flag{Create | Delete}, 0x300},
		{[]Flag{Close}, 0x18},
		{[]Flag{Move}, 0xc0},
		{[]Flag{AllEvents}, 0xfff},
		{[]Flag{AllEvents, OnlyDir, DontFollow}, 0x03000fff},
		{[]Flag{Oneshot, MaskAdd, ExclUnlink}, 0xa4000000},
		{[]Flag{Recursive, Modify}, 0x00010002},
	}
	for i, cas := range cases {
		if mask := ToMask(cas.flags...); mask != cas.mask {
			t.Errorf("want mask=%#x; got %#x (i=%d)", cas.mask, mask, i)
		}
	}
}

func TestToMaskUnknown(t *testing.T) {
	for i, f := range []Flag{0, 0x1000, Create | 0x00020000} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("want ToMask(%#x) to panic (i=%d)", uint32(f), i)
				}
			}()
			ToMask(f)
		}()
	}
}

func TestFromMaskSkipsAggregates(t *testing.T) {
	got := FromMask(uint32(AllEvents | Recursive))
	want := eventFlags[:12]
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("FromMask(AllEvents|Recursive) mismatch:\n%s", diff)
	}
	got = FromMask(uint32(Create | IsDir | OnlyDir))
	want = []Flag{Create, OnlyDir, IsDir}
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("FromMask(Create|IsDir|OnlyDir) mismatch:\n%s", diff)
	}
}

func TestParseFlag(t *testing.T) {
	cases := map[string]Flag{
		"access":           Access,
		"close_write":      CloseWrite,
		"IN_CLOSE_NOWRITE": CloseNowrite,
		" moved_to ":       MovedTo,
		"isdir":            IsDir,
		"q_overflow":       QOverflow,
		"onlydir":          OnlyDir,
		"dont_follow":      DontFollow,
		"mask_add":         MaskAdd,
		"oneshot":          Oneshot,
		"all_events":       AllEvents,
		"close":            Close,
		"move":             Move,
		"recursive":        Recursive,
	}
	for name, want := range cases {
		f, err := ParseFlag(name)
		if err != nil {
			t.Errorf("ParseFlag(%q)=%v", name, err)
			continue
		}
		if f != want {
			t.Errorf("want flag=%v; got %v (name=%q)", want, f, name)
		}
	}
	if _, err := ParseFlag("created"); !errors.Is(err, ErrUnknownFlag) {
		t.Errorf("want err=ErrUnknownFlag; got %v", err)
	}
	fs, err := ParseFlags("create", "recursive")
	if err != nil {
		t.Fatalf("ParseFlags()=%v", err)
	}
	if !equalFlags(fs, []Flag{Create, Recursive}) {
		t.Errorf("want flags=[Create Recursive]; got %v", fs)
	}
	if _, err := ParseFlags("create", "bogus"); err == nil {
		t.Error("want ParseFlags to fail on an unknown name")
	}
}

func TestFlagString(t *testing.T) {
	cases := map[Flag]string{
		Create:                "inotify.Create",
		Create | IsDir:        "inotify.Create|inotify.IsDir",
		Move:                  "inotify.MovedFrom|inotify.MovedTo",
		Modify | Recursive:    "inotify.Modify|inotify.Recursive",
		Delete | Flag(0x1000): "inotify.Delete|0x1000",
		Ignored | QOverflow:   "inotify.QOverflow|inotify.Ignored",
	}
	for f, want := range cases {
		if s := f.String(); s != want {
			t.Errorf("want s=%s; got %s (f=%#x)", want, s, uint32(f))
		}
	}
}
