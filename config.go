// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package inotify

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

const (
	// DefaultBufferRecords is the initial read buffer size, in headers.
	DefaultBufferRecords = 64

	// DefaultMaxReadAttempts bounds the number of reads made for one batch.
	DefaultMaxReadAttempts = 5
)

// DefaultExclude lists paths recursive watches never descend into.
var DefaultExclude = []string{"/proc"}

// Config configures a Channel. Zero fields take their default values.
type Config struct {
	// BufferRecords is the initial size of the read buffer, counted in
	// record headers. The buffer is doubled whenever the kernel reports the
	// pending batch does not fit in it.
	BufferRecords int

	// MaxReadAttempts is the total number of reads tried for one batch.
	MaxReadAttempts int

	// Exclude lists doublestar patterns of directories a recursive watch
	// skips. A pattern without a slash matches the directory base name,
	// any other pattern matches the full path.
	Exclude []string

	// Kernel gives the notification primitives, SysKernel by default.
	Kernel Kernel
}

// DefaultConfig gives the configuration used by Open.
func DefaultConfig() Config {
	return Config{
		BufferRecords:   DefaultBufferRecords,
		MaxReadAttempts: DefaultMaxReadAttempts,
		Exclude:         append([]string(nil), DefaultExclude...),
		Kernel:          SysKernel{},
	}
}

// normalize fills in defaults and validates exclusion patterns.
func (cfg Config) normalize() (Config, error) {
	if cfg.BufferRecords <= 0 {
		cfg.BufferRecords = DefaultBufferRecords
	}
	if cfg.MaxReadAttempts <= 0 {
		cfg.MaxReadAttempts = DefaultMaxReadAttempts
	}
	if cfg.Exclude == nil {
		cfg.Exclude = append([]string(nil), DefaultExclude...)
	}
	if cfg.Kernel == nil {
		cfg.Kernel = SysKernel{}
	}
	for _, pattern := range cfg.Exclude {
		if _, err := doublestar.Match(pattern, "a"); err != nil {
			return cfg, errors.Wrapf(err, "inotify: invalid exclude pattern %q", pattern)
		}
	}
	return cfg, nil
}

// excluded reports whether a recursive watch must not descend into dir.
func (cfg Config) excluded(dir string) bool {
	p := filepath.ToSlash(filepath.Clean(dir))
	for _, pattern := range cfg.Exclude {
		name := p
		if !strings.Contains(pattern, "/") {
			name = filepath.Base(dir)
		}
		if match, _ := doublestar.Match(pattern, name); match {
			return true
		}
	}
	return false
}
