// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package abstime contains an absolute time type and calendar-aware
// formatting for it.
//
// A [time.Time] carries a location, a wall clock and (sometimes) a monotonic
// clock reading, and it cannot be offset by fractional seconds without going
// through a [time.Duration], which only spans ~292 years. That is more than
// is needed to answer questions like "how many seconds lie between these two
// instants", and it makes values with equal instants compare unequal with ==.
//
// This package provides a Time type which is nothing but a number of seconds
// since the Unix epoch, stored as a float64. Times are compared, offset and
// subtracted as plain numbers and are equal exactly when they denote the same
// instant. Anything that needs a calendar or a timezone, such as formatting,
// parsing or extracting the year, goes through a [Formatter], which is
// configured with a calendar, a locale, a layout and a timezone.
//
// The calendar code uses the proleptic Gregorian calendar, even for dates
// lying before its introduction, and ignores leap seconds.
package abstime

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/dchest/siphash"
)

// A Time represents an instant as the number of seconds since 1970-01-01
// 00:00:00 UTC. The zero value of Time is thus the Unix epoch.
//
// Times can be compared using ==. Two Times are equal exactly when they
// represent the same instant. Values built from NaN or infinite offsets are not
// valid Times.
type Time struct {
	sec float64
}

var (
	// DistantPast is a Time that lies before any instant of practical
	// interest: 0001-01-01 00:00:00 UTC.
	DistantPast = Unix(-62135596800)

	// DistantFuture is a Time that lies after any instant of practical
	// interest: 4001-01-01 00:00:00 UTC.
	DistantFuture = Unix(64092211200)
)

// Keys for Hash. They are fixed, so hashes are stable across processes.
const (
	hashKey0 = 0x736f6d6570736575
	hashKey1 = 0x646f72616e646f6d
)

// Unix returns the Time sec seconds after the Unix epoch.
func Unix(sec float64) Time {
	if sec == 0 {
		// normalize negative zero
		sec = 0
	}
	return Time{sec: sec}
}

// Now returns the current instant, as read from the system clock.
func Now() Time {
	return FromTime(time.Now())
}

// FromNow returns the Time sec seconds after the current instant.
func FromNow(sec float64) Time {
	return Now().Add(sec)
}

// FromTime returns the instant of t. The location and monotonic clock
// reading of t are discarded.
func FromTime(t time.Time) Time {
	return Unix(float64(t.Unix()) + float64(t.Nanosecond())/1e9)
}

// Time returns t as a [time.Time] in UTC, rounded to the nearest nanosecond.
func (t Time) Time() time.Time {
	sec, nsec := splitSeconds(t.sec)
	return time.Unix(sec, int64(nsec)).UTC()
}

// Seconds returns the number of seconds between the Unix epoch and t.
func (t Time) Seconds() float64 {
	return t.sec
}

// Add returns t offset by sec seconds.
func (t Time) Add(sec float64) Time {
	return Unix(t.sec + sec)
}

// Sub returns the number of seconds between u and t, i.e. t-u. It is negative
// if t lies before u.
func (t Time) Sub(u Time) float64 {
	return t.sec - u.sec
}

// Compare compares t and u. It returns -1 if t is before u, +1 if t is after
// u and 0 if they are the same instant.
func (t Time) Compare(u Time) int {
	switch {
	case t.sec < u.sec:
		return -1
	case t.sec > u.sec:
		return +1
	}
	return 0
}

// Before reports whether t is before u.
func (t Time) Before(u Time) bool {
	return t.sec < u.sec
}

// After reports whether t is after u.
func (t Time) After(u Time) bool {
	return t.sec > u.sec
}

// Equal reports whether t and u are the same instant. It is equivalent to
// t == u.
func (t Time) Equal(u Time) bool {
	return t.sec == u.sec
}

// Hash returns a hash of t. Equal Times have equal hashes, no matter how they
// were constructed.
func (t Time) Hash() uint64 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], t.bits())
	return siphash.Hash(hashKey0, hashKey1, b[:])
}

// bits returns the IEEE 754 representation of t, with negative zero mapped to
// positive zero.
func (t Time) bits() uint64 {
	if t.sec == 0 {
		return 0
	}
	return math.Float64bits(t.sec)
}

// GoString implements fmt.GoStringer and formats t to be printed in Go source
// code.
func (t Time) GoString() string {
	return "abstime.Unix(" + strconv.FormatFloat(t.sec, 'f', -1, 64) + ")"
}

// String returns t formatted in UTC, with as many fractional digits as
// needed.
//
// The returned string is meant for debugging; for a stable serialized
// representation, use t.MarshalText or t.MarshalBinary.
func (t Time) String() string {
	return t.Format("2006-01-02 15:04:05.999999999 -0700")
}

// Format returns t formatted in UTC according to layout. See [Formatter] for
// formatting in other timezones.
func (t Time) Format(layout string) string {
	return utc.format(layout, t)
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The time is
// represented as the big-endian IEEE 754 encoding of its offset from the Unix
// epoch.
func (t Time) MarshalBinary() ([]byte, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, t.bits())
	return b, nil
}

// MarshalText implements the encoding.TextMarshaler interface. The time is
// formatted in RFC 3339 format in UTC, with sub-second precision if needed.
func (t Time) MarshalText() ([]byte, error) {
	if t.Before(minText) || !t.Before(maxText) {
		return nil, errors.New("Time.MarshalText: year outside of range [0,9999]")
	}
	return utc.appendFormat(nil, RFC3339Nano, t), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (t *Time) UnmarshalBinary(b []byte) error {
	switch {
	case len(b) < 8:
		return errors.New("encoded time truncated")
	case len(b) > 8:
		return errors.New("extra data after time")
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(b))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("encoded time is not finite")
	}
	*t = Unix(v)
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The time
// must be in RFC 3339 format.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := Parse(RFC3339Nano, string(b))
	if err == nil {
		*t = v
	}
	return err
}

// Range of times that can be represented with a four digit year.
var (
	minText = Unix(-62167219200) // 0000-01-01 00:00:00 UTC
	maxText = Unix(253402300800) // 10000-01-01 00:00:00 UTC
)
