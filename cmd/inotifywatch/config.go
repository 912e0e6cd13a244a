// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rjeczalik/inotify"
)

// configuration is the on-disk form of the command settings. Values given on
// the command line take precedence.
type configuration struct {
	Recursive       bool     `yaml:"recursive"`
	Events          []string `yaml:"events"`
	Exclude         []string `yaml:"exclude"`
	Format          string   `yaml:"format"`
	BufferRecords   int      `yaml:"buffer_records"`
	MaxReadAttempts int      `yaml:"max_read_attempts"`
	Paths           []string `yaml:"paths"`
}

// loadConfiguration reads a YAML configuration file. Unknown keys are an
// error.
func loadConfiguration(path string) (*configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open configuration file")
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	c := &configuration{}
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrapf(err, "unable to parse configuration file %s", path)
	}
	return c, nil
}

// flags gives the watch flags named by the configuration.
func (c *configuration) flags() ([]inotify.Flag, error) {
	events := c.Events
	if len(events) == 0 {
		events = []string{"all_events"}
	}
	fs, err := inotify.ParseFlags(events...)
	if err != nil {
		return nil, err
	}
	if c.Recursive {
		fs = append(fs, inotify.Recursive)
	}
	return fs, nil
}

// channelConfig gives the Channel configuration.
func (c *configuration) channelConfig() inotify.Config {
	cfg := inotify.DefaultConfig()
	if c.BufferRecords > 0 {
		cfg.BufferRecords = c.BufferRecords
	}
	if c.MaxReadAttempts > 0 {
		cfg.MaxReadAttempts = c.MaxReadAttempts
	}
	cfg.Exclude = append(cfg.Exclude, c.Exclude...)
	return cfg
}
