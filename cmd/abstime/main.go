// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command abstime converts between instants and their textual
// representation.
//
// Usage:
//
//	abstime [flags] now
//	abstime [flags] parse TEXT...
//	abstime [flags] format SECONDS...
//	abstime [flags] diff TEXT TEXT
//	abstime [flags] fields TEXT [FIELD...]
//
// Instants are printed as seconds since 1970-01-01 00:00:00 UTC. Text is
// formatted and parsed with the layout or pattern given by the flags or the
// config file, which defaults to "yyyy-MM-dd HH:mm:ss Z" in UTC.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonih.org/abstime"
	appLog "gonih.org/abstime/internal/log"
)

var errUsage = errors.New("usage: abstime [flags] now | parse TEXT... | format SECONDS... | diff TEXT TEXT | fields TEXT [FIELD...]")

// now is replaced in tests.
var now = abstime.Now

// flagConfig holds CLI flag values, which override the config file.
type flagConfig struct {
	configPath string
	layout     string
	pattern    string
	timezone   string
	locale     string
	logLevel   string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			appLog.Error("abstime failed", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("abstime", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := parseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := appLog.ParseLevel(flags.logLevel)
	if err != nil {
		return err
	}
	appLog.SetLevel(level)

	f, err := newFormatter(flags)
	if err != nil {
		return err
	}
	cfg := f.Config()
	appLog.Debug("effective config",
		"calendar", cfg.Calendar,
		"locale", cfg.Locale,
		"layout", f.Layout(),
		"timezone", cfg.Timezone,
	)

	args = fs.Args()
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "now":
		if len(args) != 0 {
			return errUsage
		}
		t := now()
		fmt.Fprintln(stdout, f.Format(t), formatSeconds(t.Seconds()))
	case "parse":
		for _, s := range args {
			t, err := f.Parse(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, formatSeconds(t.Seconds()))
		}
	case "format":
		for _, s := range args {
			sec, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid seconds %q: %w", s, err)
			}
			fmt.Fprintln(stdout, f.Format(abstime.Unix(sec)))
		}
	case "diff":
		if len(args) != 2 {
			return errUsage
		}
		a, err := f.Parse(args[0])
		if err != nil {
			return err
		}
		b, err := f.Parse(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, formatSeconds(a.Sub(b)))
	case "fields":
		if len(args) == 0 {
			return errUsage
		}
		t, err := f.Parse(args[0])
		if err != nil {
			return err
		}
		var want []abstime.Field
		for _, name := range args[1:] {
			fl, err := abstime.ParseField(name)
			if err != nil {
				return err
			}
			want = append(want, fl)
		}
		fmt.Fprintln(stdout, f.Fields(t, want...))
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
	return nil
}

func parseFlags(fs *flag.FlagSet) *flagConfig {
	cfg := new(flagConfig)

	fs.StringVar(&cfg.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&cfg.layout, "layout", "", "Layout in the notation of the reference time \"2006-01-02 15:04:05 -0700\" (overrides config)")
	fs.StringVar(&cfg.pattern, "pattern", "", "Date pattern like \"yyyy-MM-dd HH:mm:ss Z\" (overrides config)")
	fs.StringVar(&cfg.timezone, "tz", "", "IANA timezone name, \"UTC\" or \"Local\" (overrides config)")
	fs.StringVar(&cfg.locale, "locale", "", "Locale identifier like \"en_US\" (overrides config)")
	fs.StringVar(&cfg.logLevel, "log-level", string(appLog.LevelInfo), "Minimum log level: debug, info or error")

	return cfg
}

// newFormatter builds the Formatter described by the config file, if any,
// and the flags.
func newFormatter(flags *flagConfig) (*abstime.Formatter, error) {
	var cfg abstime.Config
	if flags.configPath != "" {
		var err error
		if cfg, err = abstime.LoadConfig(flags.configPath); err != nil {
			return nil, err
		}
		appLog.Debug("loaded config", "config_path", flags.configPath)
	}
	// A layout or pattern given on the command line replaces both.
	switch {
	case flags.layout != "" && flags.pattern != "":
		return nil, errors.New("only one of -layout and -pattern may be set")
	case flags.layout != "":
		cfg.Layout, cfg.Pattern = flags.layout, ""
	case flags.pattern != "":
		cfg.Layout, cfg.Pattern = "", flags.pattern
	}
	if flags.timezone != "" {
		cfg.Timezone = flags.timezone
	}
	if flags.locale != "" {
		cfg.Locale = flags.locale
	}
	return abstime.NewFormatter(cfg)
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
