// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/rjeczalik/inotify"
	"github.com/rjeczalik/inotify/inotifytest"
)

func TestDecoderRecords(t *testing.T) {
	type rec struct {
		wd     int32
		mask   inotify.Flag
		cookie uint32
		name   string
	}
	recs := []rec{
		{1, inotify.Create, 0, "a"},
		{1, inotify.Modify, 0, "exactly-sixteen!"},
		{2, inotify.DeleteSelf, 0, ""},
		{1, inotify.MovedFrom, 9, "b"},
		{3, inotify.MovedTo | inotify.IsDir, 9, "a-rather-long-name-of-a-directory"},
	}
	var records [][]byte
	for _, r := range recs {
		records = append(records, inotifytest.Record(r.wd, uint32(r.mask), r.cookie, r.name))
	}
	d := inotify.NewDecoder(nil, inotifytest.Batch(records...))
	for i, r := range recs {
		left := d.Len()
		e, err := d.Next()
		if err != nil {
			t.Fatalf("Next()=%v (i=%d)", err, i)
		}
		if e == nil {
			t.Fatalf("want event; got nil (i=%d)", i)
		}
		if e.WatcherID() != r.wd || e.Mask() != uint32(r.mask) || e.Cookie() != r.cookie || e.Name() != r.name {
			t.Errorf("want event={%d %v %d %q}; got {%d %v %d %q} (i=%d)", r.wd, r.mask, r.cookie,
				r.name, e.WatcherID(), inotify.Flag(e.Mask()), e.Cookie(), e.Name(), i)
		}
		if e.Size() != len(records[i]) {
			t.Errorf("want size=%d; got %d (i=%d)", len(records[i]), e.Size(), i)
		}
		if consumed := left - d.Len(); consumed != len(records[i]) {
			t.Errorf("want consumed=%d; got %d (i=%d)", len(records[i]), consumed, i)
		}
	}
	if e, err := d.Next(); e != nil || err != nil {
		t.Errorf("want nil, nil at the end; got %v, %v", e, err)
	}
	if d.Len() != 0 {
		t.Errorf("want empty buffer; got %d byte(s)", d.Len())
	}
}

func TestDecoderTrimsName(t *testing.T) {
	p := inotifytest.RawRecord(1, uint32(inotify.Create), 0, []byte("foo\x00\x00\x00\x00"))
	e, err := inotify.NewDecoder(nil, p).Next()
	if err != nil {
		t.Fatalf("Next()=%v", err)
	}
	if e.Name() != "foo" {
		t.Errorf("want name=foo; got %q", e.Name())
	}
	if e.Size() != inotify.HeaderSize+7 {
		t.Errorf("want size=%d; got %d", inotify.HeaderSize+7, e.Size())
	}
}

func TestDecoderShortRecord(t *testing.T) {
	full := inotifytest.Record(1, uint32(inotify.Create), 0, "file")
	cases := [][]byte{
		full[:inotify.HeaderSize-1],
		full[:inotify.HeaderSize],
		full[:len(full)-1],
	}
	for i, p := range cases {
		if _, err := inotify.NewDecoder(nil, p).Next(); !errors.Is(err, inotify.ErrShortRecord) {
			t.Errorf("want err=ErrShortRecord; got %v (i=%d)", err, i)
		}
	}
}

func TestDecoderOverflow(t *testing.T) {
	p := inotifytest.Batch(
		inotifytest.Record(1, uint32(inotify.Create), 0, "a"),
		inotifytest.Record(-1, uint32(inotify.QOverflow), 0, ""),
		inotifytest.Record(1, uint32(inotify.Create), 0, "b"),
	)
	d := inotify.NewDecoder(nil, p)
	e, err := d.Next()
	if err != nil || e.Name() != "a" {
		t.Fatalf("want event a; got %v, %v", e, err)
	}
	if e, err = d.Next(); !errors.Is(err, inotify.ErrQueueOverflow) {
		t.Fatalf("want err=ErrQueueOverflow; got %v, %v", e, err)
	}
	if e != nil {
		t.Errorf("want nil event on overflow; got %v", e)
	}
}

func TestEventAbsoluteName(t *testing.T) {
	k := inotifytest.NewKernel()
	ch, err := inotify.NewConfig(inotify.Config{Kernel: k})
	if err != nil {
		t.Fatalf("NewConfig()=%v", err)
	}
	w, err := ch.Watch("/var/tmp/dir", nil, inotify.AllEvents)
	if err != nil {
		t.Fatalf("Watch()=%v", err)
	}
	k.Push(
		inotifytest.Record(w.ID(), uint32(inotify.DeleteSelf), 0, ""),
		inotifytest.Record(w.ID(), uint32(inotify.Create), 0, "foo"),
		inotifytest.Record(w.ID()+1, uint32(inotify.Create), 0, "bar"),
	)
	events, err := ch.ReadEvents()
	if err != nil {
		t.Fatalf("ReadEvents()=%v", err)
	}
	want := []string{"/var/tmp/dir", "/var/tmp/dir/foo", "bar"}
	if len(events) != len(want) {
		t.Fatalf("want %d events; got %d", len(want), len(events))
	}
	for i, e := range events {
		if s := e.AbsoluteName(); s != want[i] {
			t.Errorf("want name=%s; got %s (i=%d)", want[i], s, i)
		}
	}
	if events[0].Watcher() != w || events[2].Watcher() != nil {
		t.Errorf("unexpected watchers: %v, %v", events[0].Watcher(), events[2].Watcher())
	}
	if s := events[1].String(); s != `inotify.Create: "/var/tmp/dir/foo"` {
		t.Errorf("unexpected String()=%s", s)
	}
}

func TestEventFlags(t *testing.T) {
	p := inotifytest.Record(1, uint32(inotify.Create|inotify.IsDir), 0, "d")
	e, err := inotify.NewDecoder(nil, p).Next()
	if err != nil {
		t.Fatalf("Next()=%v", err)
	}
	fs := e.Flags()
	if len(fs) != 2 || fs[0] != inotify.Create || fs[1] != inotify.IsDir {
		t.Fatalf("want flags=[Create IsDir]; got %v", fs)
	}
	fs[0] = inotify.Delete
	if again := e.Flags(); again[0] != inotify.Create {
		t.Errorf("want flags unaffected by the caller; got %v", again)
	}
	if !e.IsDir() || !e.Has(inotify.Create|inotify.Delete) || e.Has(inotify.Delete) {
		t.Errorf("unexpected IsDir/Has for %v", inotify.Flag(e.Mask()))
	}
}
