// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"gonih.org/abstime/internal/memo"
)

var (
	// ErrUnsupportedCalendar is returned by NewFormatter for calendars other
	// than the Gregorian one.
	ErrUnsupportedCalendar = errors.New("unsupported calendar")

	// ErrUnsupportedLocale is returned by NewFormatter for locales whose
	// month and weekday names are not known.
	ErrUnsupportedLocale = errors.New("unsupported locale")
)

// A Formatter converts between Times and their textual representation,
// using a fixed calendar, locale, layout and timezone. It also breaks Times
// down into calendar Fields and back.
//
// A Formatter is immutable and safe for concurrent use.
type Formatter struct {
	cfg    Config
	layout string
	locale language.Tag
	loc    *time.Location
}

// utc formats and parses in UTC, for the package level functions.
var utc = &Formatter{
	cfg:    DefaultConfig(),
	layout: DateTimeZone,
	locale: language.AmericanEnglish,
	loc:    time.UTC,
}

// english is the base language of all supported locales.
var english, _ = language.English.Base()

type locResult struct {
	loc *time.Location
	err error
}

// loading zoneinfo means reading and parsing a file, so results are kept.
var locations = memo.New(64, func(name string) locResult {
	loc, err := time.LoadLocation(name)
	return locResult{loc, err}
})

// NewFormatter returns a Formatter for cfg. Empty fields of cfg are replaced
// by their defaults, see DefaultConfig.
func NewFormatter(cfg Config) (*Formatter, error) {
	cfg.Normalize()
	f := &Formatter{cfg: cfg}

	switch cfg.Calendar {
	case Gregorian, ISO8601:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCalendar, cfg.Calendar)
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnsupportedLocale, cfg.Locale, err)
	}
	if base, conf := tag.Base(); base != english || conf != language.Exact {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, cfg.Locale)
	}
	f.locale = tag

	switch {
	case cfg.Layout != "" && cfg.Pattern != "":
		return nil, errors.New("only one of layout and pattern may be set")
	case cfg.Pattern != "":
		if f.layout, err = PatternLayout(cfg.Pattern); err != nil {
			return nil, err
		}
	default:
		f.layout = cfg.Layout
	}

	r := locations.Get(cfg.Timezone)
	if r.err != nil {
		return nil, fmt.Errorf("loading timezone: %w", r.err)
	}
	f.loc = r.loc
	return f, nil
}

// MustFormatter is like NewFormatter, but panics on error. It simplifies the
// initialization of global variables.
func MustFormatter(cfg Config) *Formatter {
	f, err := NewFormatter(cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// Config returns the normalized configuration of f.
func (f *Formatter) Config() Config {
	return f.cfg
}

// Layout returns the layout used by f, in the notation of DateTimeZone.
func (f *Formatter) Layout() string {
	return f.layout
}

// Locale returns the locale of f.
func (f *Formatter) Locale() language.Tag {
	return f.locale
}

// Location returns the timezone of f.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Format returns a textual representation of t, according to the layout of
// f and in its timezone.
func (f *Formatter) Format(t Time) string {
	return f.format(f.layout, t)
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (f *Formatter) AppendFormat(b []byte, t Time) []byte {
	return f.appendFormat(b, f.layout, t)
}

// Parse parses text according to the layout of f. If the layout contains a
// zone offset, it determines the returned instant, so that the same instant
// written with different offsets parses to equal Times. Otherwise, text is
// interpreted as a wall clock reading in the timezone of f.
//
// If text does not match the layout, or denotes a date or time that does not
// exist, the returned error is a *FormatError.
func (f *Formatter) Parse(text string) (Time, error) {
	return f.parse(f.layout, text)
}

// Fields breaks t down into the given calendar fields, as seen in the
// timezone of f. If no fields are given, all fields are computed.
func (f *Formatter) Fields(t Time, fields ...Field) Fields {
	return fieldsOf(decompose(t, f.offsetAt(t)), fields)
}

// Date returns the Time described by fs. Absent date fields default to
// 0001-01-01 and absent clock fields to zero. If fs has a YearDay, but
// neither Month nor Day, the date is taken to be that day of the year.
// Weekday and the ISO week fields are ignored.
//
// Values outside their usual ranges are normalized, as for [time.Date]. If fs
// has no ZoneOffset, the wall clock reading is interpreted in the timezone of
// f.
func (f *Formatter) Date(fs Fields) Time {
	get := func(fl Field, def int) int {
		if v, ok := fs.Get(fl); ok {
			return v
		}
		return def
	}
	year := get(Year, 1)
	month := time.Month(get(Month, 1))
	day := get(Day, 1)
	if yd, ok := fs.Get(YearDay); ok && !fs.Has(Month) && !fs.Has(Day) {
		month, day = time.January, yd
	}
	hour, min, sec, nsec := get(Hour, 0), get(Minute, 0), get(Second, 0), get(Nanosecond, 0)

	sec, nsec = norm(sec, nsec, 1e9)
	offset, ok := fs.Get(ZoneOffset)
	if !ok {
		offset = f.wallOffset(year, month, day, hour, min, sec)
	}
	return compose(year, month, day, hour, min, sec, nsec, offset)
}

// offsetAt returns the zone offset of f at t, in seconds east of UTC.
func (f *Formatter) offsetAt(t Time) int {
	if f.loc == time.UTC {
		return 0
	}
	_, offset := t.Time().In(f.loc).Zone()
	return offset
}

// wallOffset returns the zone offset of f for the given wall clock reading, in
// seconds east of UTC. Readings that are skipped or repeated by a zone
// transition resolve as for [time.Date].
func (f *Formatter) wallOffset(year int, month time.Month, day, hour, min, sec int) int {
	if f.loc == time.UTC {
		return 0
	}
	local := time.Date(year, month, day, hour, min, sec, 0, f.loc)
	wall := time.Date(year, month, day, hour, min, sec, 0, time.UTC)
	return int(wall.Unix() - local.Unix())
}
