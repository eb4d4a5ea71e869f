// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"fmt"
	"strconv"
	"strings"
)

// A Field names a calendar field.
type Field uint8

const (
	Year       Field = iota
	Month            // 1 (January) to 12
	Day              // day of the month
	Hour             // 0 to 23
	Minute           // 0 to 59
	Second           // 0 to 59
	Nanosecond       // 0 to 999999999
	Weekday          // 0 (Sunday) to 6, as time.Weekday
	YearDay          // 1 to 366
	ISOYear          // year of the ISO 8601 week
	ISOWeek          // 1 to 53
	ZoneOffset       // seconds east of UTC

	numFields
)

var fieldNames = [numFields]string{
	Year:       "year",
	Month:      "month",
	Day:        "day",
	Hour:       "hour",
	Minute:     "minute",
	Second:     "second",
	Nanosecond: "nanosecond",
	Weekday:    "weekday",
	YearDay:    "yearday",
	ISOYear:    "isoyear",
	ISOWeek:    "isoweek",
	ZoneOffset: "zoneoffset",
}

// String returns the lower-case name of f.
func (f Field) String() string {
	if f < numFields {
		return fieldNames[f]
	}
	return "Field(" + strconv.Itoa(int(f)) + ")"
}

// ParseField returns the Field with the given name, ignoring case.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if strings.EqualFold(n, name) {
			return Field(f), nil
		}
	}
	return 0, fmt.Errorf("unknown calendar field %q", name)
}

// Fields is a sparse set of calendar field values. Fields which have not been
// set are absent, which is different from being zero.
//
// The zero value is an empty set. Fields are values and can be compared
// using ==.
type Fields struct {
	set uint16
	v   [numFields]int
}

// FieldsOf returns a Fields holding exactly the given values. No
// normalization takes place: in particular, no field is derived from another.
func FieldsOf(values map[Field]int) Fields {
	var fs Fields
	for f, v := range values {
		fs = fs.With(f, v)
	}
	return fs
}

// Get returns the value of f and whether it is present.
func (fs Fields) Get(f Field) (int, bool) {
	if !fs.Has(f) {
		return 0, false
	}
	return fs.v[f], true
}

// Has reports whether f is present.
func (fs Fields) Has(f Field) bool {
	return f < numFields && fs.set&(1<<f) != 0
}

// With returns a copy of fs, with f set to v. It panics if f is not a valid
// Field.
func (fs Fields) With(f Field, v int) Fields {
	if f >= numFields {
		panic("abstime: invalid " + f.String())
	}
	fs.set |= 1 << f
	fs.v[f] = v
	return fs
}

// Without returns a copy of fs, with f absent.
func (fs Fields) Without(f Field) Fields {
	if f < numFields {
		fs.set &^= 1 << f
		fs.v[f] = 0
	}
	return fs
}

// Len returns the number of present fields.
func (fs Fields) Len() int {
	n := 0
	for f := Field(0); f < numFields; f++ {
		if fs.Has(f) {
			n++
		}
	}
	return n
}

// Map returns the present fields as a map.
func (fs Fields) Map() map[Field]int {
	m := make(map[Field]int, fs.Len())
	for f := Field(0); f < numFields; f++ {
		if v, ok := fs.Get(f); ok {
			m[f] = v
		}
	}
	return m
}

// String returns the present fields as a space separated list of name=value
// pairs, in the order of their declaration.
func (fs Fields) String() string {
	var b []byte
	for f := Field(0); f < numFields; f++ {
		v, ok := fs.Get(f)
		if !ok {
			continue
		}
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = append(b, fieldNames[f]...)
		b = append(b, '=')
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}

// allFields is the list of fields computed when no specific ones are
// requested.
var allFields = []Field{Year, Month, Day, Hour, Minute, Second, Nanosecond, Weekday, YearDay, ISOYear, ISOWeek, ZoneOffset}

// fieldsOf extracts the requested fields from c.
func fieldsOf(c civil, fields []Field) Fields {
	if len(fields) == 0 {
		fields = allFields
	}
	var fs Fields
	for _, f := range fields {
		var v int
		switch f {
		case Year:
			v = c.year
		case Month:
			v = int(c.month)
		case Day:
			v = c.day
		case Hour:
			v = c.hour
		case Minute:
			v = c.min
		case Second:
			v = c.sec
		case Nanosecond:
			v = c.nsec
		case Weekday:
			v = int(weekday(c.num))
		case YearDay:
			v = c.yday
		case ISOYear:
			v, _ = isoWeek(c.num)
		case ISOWeek:
			_, v = isoWeek(c.num)
		case ZoneOffset:
			v = c.offset
		default:
			continue
		}
		fs = fs.With(f, v)
	}
	return fs
}
