// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/rjeczalik/inotify"
)

const defaultFormat = `{{.Time.Format "15:04:05.000"}} {{color .Flags}} {{.Path}}{{range .Related}} -> {{.}}{{end}}`

// record is the value passed to the output template.
type record struct {
	Time    time.Time
	Path    string
	Name    string
	Flags   string
	Events  []string
	Mask    uint32
	Cookie  uint32
	Size    int
	Dir     bool
	Watch   int32
	Related []string
}

func newRecord(e *inotify.Event, now time.Time) record {
	r := record{
		Time:   now,
		Path:   e.AbsoluteName(),
		Name:   e.Name(),
		Flags:  inotify.Flag(e.Mask()).String(),
		Mask:   e.Mask(),
		Cookie: e.Cookie(),
		Size:   e.Size(),
		Dir:    e.IsDir(),
		Watch:  e.WatcherID(),
	}
	for _, f := range e.Flags() {
		r.Events = append(r.Events, strings.ToLower(strings.TrimPrefix(f.String(), "inotify.")))
	}
	for _, rel := range e.Related() {
		r.Related = append(r.Related, rel.AbsoluteName())
	}
	return r
}

var funcs = template.FuncMap{
	"color": colorize,
	"bytes": func(n int) string { return humanize.IBytes(uint64(n)) },
	"join":  strings.Join,
}

// colorize highlights a flag string by the kind of change it reports.
func colorize(flags string) string {
	switch {
	case strings.Contains(flags, "QOverflow"), strings.Contains(flags, "Ignored"):
		return color.New(color.FgRed).Sprint(flags)
	case strings.Contains(flags, "Delete"), strings.Contains(flags, "MovedFrom"):
		return color.New(color.FgYellow).Sprint(flags)
	case strings.Contains(flags, "Create"), strings.Contains(flags, "MovedTo"):
		return color.New(color.FgGreen).Sprint(flags)
	default:
		return color.New(color.FgCyan).Sprint(flags)
	}
}

// printer writes one line per event using a text/template.
type printer struct {
	tmpl *template.Template
	w    io.Writer
	buf  bytes.Buffer
	now  func() time.Time
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	if format == "" {
		format = defaultFormat
	}
	tmpl, err := template.New("inotifywatch").Funcs(funcs).Parse(format)
	if err != nil {
		return nil, err
	}
	return &printer{tmpl: tmpl, w: w, now: time.Now}, nil
}

func (p *printer) print(e *inotify.Event) error {
	p.buf.Reset()
	if err := p.tmpl.Execute(&p.buf, newRecord(e, p.now())); err != nil {
		return err
	}
	if b := p.buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		p.buf.WriteByte('\n')
	}
	_, err := p.w.Write(p.buf.Bytes())
	return err
}
