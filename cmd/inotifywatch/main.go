// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Command inotifywatch prints filesystem events reported by inotify.
//
// Usage
//
//	usage: inotifywatch [-r] [-e event,...] [-x pattern]... [-c config.yaml] [--format template] path...
//
// The -e flag selects events by their inotify names, with or without the IN_
// prefix, e.g. -e create,moved_to. All events are watched by default.
//
// The -r flag watches every directory under each path, including the ones
// created later. Directories matching a -x pattern are skipped.
//
// Each event is printed using the --format template, which is given:
//
//	type Event struct {
//		Time    time.Time
//		Path    string   // watched path joined with Name
//		Name    string
//		Flags   string   // e.g. inotify.Create|inotify.IsDir
//		Events  []string // e.g. [create isdir]
//		Mask    uint32
//		Cookie  uint32
//		Size    int
//		Dir     bool
//		Watch   int32
//		Related []string // paths of the other half of a rename
//	}
//
// The template may call color, bytes and join.
//
// Example usage
//
//	~ $ inotifywatch -r -e create,move -x .git .
//	01:17:40.032 inotify.Create /home/user/notify.tmp
//	01:17:41.508 inotify.MovedFrom /home/user/notify.tmp -> /home/user/notify.txt
//	01:17:41.508 inotify.MovedTo /home/user/notify.txt -> /home/user/notify.tmp
//
// Set INOTIFY_DEBUG to print what the watches are doing to stderr.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rjeczalik/inotify"
)

// rootConfiguration stores the command line flags.
var rootConfiguration struct {
	recursive bool
	events    []string
	exclude   []string
	config    string
	format    string
	help      bool
}

func registerFlags(flags *pflag.FlagSet) {
	flags.SortFlags = false
	flags.BoolVarP(&rootConfiguration.recursive, "recursive", "r", false, "Watch directories recursively")
	flags.StringSliceVarP(&rootConfiguration.events, "event", "e", nil, "Events to watch (default all_events)")
	flags.StringArrayVarP(&rootConfiguration.exclude, "exclude", "x", nil, "Directory pattern to skip when watching recursively")
	flags.StringVarP(&rootConfiguration.config, "config", "c", "", "Read settings from a YAML file")
	flags.StringVar(&rootConfiguration.format, "format", "", "Output template")
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
}

// settings merges the configuration file with the command line.
func settings(command *cobra.Command, paths []string) (*configuration, error) {
	c := &configuration{}
	if rootConfiguration.config != "" {
		var err error
		if c, err = loadConfiguration(rootConfiguration.config); err != nil {
			return nil, err
		}
	}
	flags := command.Flags()
	if flags.Changed("recursive") {
		c.Recursive = rootConfiguration.recursive
	}
	if flags.Changed("event") {
		c.Events = rootConfiguration.events
	}
	if flags.Changed("format") {
		c.Format = rootConfiguration.format
	}
	c.Exclude = append(c.Exclude, rootConfiguration.exclude...)
	if len(paths) != 0 {
		c.Paths = paths
	}
	if len(c.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	return c, nil
}

func rootMain(command *cobra.Command, arguments []string) error {
	c, err := settings(command, arguments)
	if err != nil {
		return err
	}
	flags, err := c.flags()
	if err != nil {
		return err
	}
	p, err := newPrinter(color.Output, c.Format)
	if err != nil {
		return errors.Wrap(err, "invalid format")
	}
	ch, err := inotify.NewConfig(c.channelConfig())
	if err != nil {
		return err
	}

	cb := func(e *inotify.Event) {
		if err := p.print(e); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("unable to print event: %v", err))
		}
	}
	for _, path := range c.Paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			ch.Close()
			return err
		}
		if _, err := ch.Watch(abs, cb, flags...); err != nil {
			ch.Close()
			return err
		}
	}
	fmt.Fprintln(os.Stderr, color.New(color.Faint).Sprintf("%s watch(es) set up", humanize.Comma(int64(len(ch.Watchers())))))

	signalTermination := make(chan os.Signal, 1)
	signal.Notify(signalTermination, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalTermination)
	if err := serve(ch, signalTermination); err != nil {
		ch.Close()
		return err
	}
	return ch.Close()
}

var rootCommand = &cobra.Command{
	Use:          "inotifywatch [flags] path...",
	Short:        "Print filesystem events reported by inotify",
	RunE:         rootMain,
	SilenceUsage: true,
}

func init() {
	cobra.MousetrapHelpText = ""
	registerFlags(rootCommand.Flags())
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
