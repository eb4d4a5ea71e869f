// Copyright 2009 The Go Authors.
// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"math"
	"time"
)

// Computations on dates are essentially copied from the standard library. See
// this comment for explanations:
// https://cs.opensource.google/go/go/+/refs/tags/go1.20.6:src/time/time.go;l=353
//
// Day numbers are counted from 0001-01-01 (the internal epoch). Instants are
// counted in seconds from 1970-01-01 (the Unix epoch).

const (
	// The unsigned zero year for internal calculations.
	// Must be 1 mod 400, and times before it will not compute correctly, but
	// otherwise can be changed at will.
	absoluteZeroYear = -292277022399

	// The year of internal day zero.
	internalYear = 1

	// Offsets to convert between internal or absolute day numbers.
	absoluteToInternal = (absoluteZeroYear - internalYear) * 365.2425
	internalToAbsolute = -absoluteToInternal

	// Days between the internal epoch and the Unix epoch.
	unixToInternal = 1969*365 + 1969/4 - 1969/100 + 1969/400

	// Days in a given period of years.
	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461

	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// daysBefore[m] counts the number of days in a non-leap year before month m
// begins. There is an entry for m=12, counting the number of days before
// January of next year (365).
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

func daysIn(m time.Month, year int) int {
	if m == time.February && isLeap(year) {
		return 29
	}
	return daysBefore[m] - daysBefore[m-1]
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// norm returns nhi, nlo such that
//
//	hi * base + lo == nhi * base + nlo
//	0 <= nlo < base
func norm(hi, lo, base int) (nhi, nlo int) {
	if lo < 0 {
		n := (-lo-1)/base + 1
		hi -= n
		lo += n * base
	}
	if lo >= base {
		n := lo / base
		hi += n
		lo -= n * base
	}
	return hi, lo
}

// daysSinceEpoch takes a year and returns the number of days from the absolute
// epoch to the start of that year. This is basically (year - zeroYear) * 365,
// but accounting for leap days.
func daysSinceEpoch(year int) int {
	y := year - absoluteZeroYear

	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	d += 365 * y

	return d
}

// dayNumber returns the internal day number of the given date. Month and day
// may be outside their usual ranges and are normalized as for [time.Date].
func dayNumber(year int, month time.Month, day int) int {
	m := int(month) - 1
	year, m = norm(year, m, 12)
	month = time.Month(m) + 1

	d := daysSinceEpoch(year)
	d += daysBefore[month-1]
	if isLeap(year) && month >= time.March {
		d++
	}
	d += day - 1

	return d - internalToAbsolute
}

// absDay converts an internal day number into an absolute one.
func absDay(day int) uint64 {
	return uint64(day + internalToAbsolute)
}

// absDate computes the year, day of year and when full=true, the month and day
// in which an absolute day number occurs.
func absDate(abs uint64, full bool) (year int, month time.Month, day int, yday int) {
	d := abs

	// Account for 400 year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles.
	// The last cycle has one extra leap year, so on the last day
	// of that year, day / daysPer100Years will be 4 instead of 3.
	// Cut it back down to 3 by subtracting n>>2.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	// Cut off 4-year cycles.
	// The last cycle has a missing leap year, which does not
	// affect the computation.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Cut off years within a 4-year cycle.
	// The last year is a leap year, so on the last day of that year,
	// day / 365 will be 4 instead of 3. Cut it back down to 3
	// by subtracting n>>2.
	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year = int(int64(y) + absoluteZeroYear)
	yday = int(d)

	if !full {
		return
	}

	day = yday
	if isLeap(year) {
		switch {
		case day > 31+29-1:
			// After leap day; pretend it wasn't there.
			day--
		case day == 31+29-1:
			month = time.February
			day = 29
			return
		}
	}

	// Estimate month on assumption that every month has 31 days.
	// The estimate may be too low by at most one month, so adjust.
	month = time.Month(day / 31)
	end := daysBefore[month+1]
	var begin int
	if day >= end {
		month++
		begin = end
	} else {
		begin = daysBefore[month]
	}

	month++ // because January is 1
	day = day - begin + 1
	return year, month, day, yday
}

// weekday returns the day of the week of an internal day number.
func weekday(day int) time.Weekday {
	return (time.Monday + time.Weekday(absDay(day)%7)) % 7 // 0001-01-01 was a Monday
}

// isoWeek returns the ISO 8601 year and week number of an internal day
// number.
func isoWeek(day int) (year, week int) {
	// See this comment for an explanation:
	// https://cs.opensource.google/go/go/+/refs/tags/go1.20.6:src/time/time.go;l=544
	offset := time.Thursday - weekday(day)
	if offset == 4 {
		offset = -3
	}
	year, _, _, yday := absDate(absDay(day+int(offset)), false)
	return year, yday/7 + 1
}

// civil is an instant broken down into proleptic Gregorian calendar fields,
// as seen from a fixed zone offset.
type civil struct {
	year   int
	month  time.Month
	day    int
	yday   int // 1-based
	hour   int
	min    int
	sec    int
	nsec   int
	offset int // seconds east of UTC
	num    int // internal day number
}

// splitSeconds splits sec into a whole number of seconds, rounded towards
// negative infinity, and the remaining nanoseconds.
func splitSeconds(sec float64) (whole int64, nsec int) {
	w := math.Floor(sec)
	ns := math.Round((sec - w) * 1e9)
	if ns >= 1e9 {
		w++
		ns -= 1e9
	}
	return int64(w), int(ns)
}

// decompose breaks t down into calendar fields at the given zone offset.
func decompose(t Time, offset int) civil {
	whole, nsec := splitSeconds(t.sec)
	whole += int64(offset)

	days := whole / secondsPerDay
	rem := whole % secondsPerDay
	if rem < 0 {
		rem += secondsPerDay
		days--
	}

	c := civil{
		nsec:   nsec,
		offset: offset,
		num:    int(days) + unixToInternal,
	}
	var yday int
	c.year, c.month, c.day, yday = absDate(absDay(c.num), true)
	c.yday = yday + 1
	c.hour = int(rem / secondsPerHour)
	c.min = int(rem % secondsPerHour / secondsPerMinute)
	c.sec = int(rem % secondsPerMinute)
	return c
}

// compose is the inverse of decompose. All arguments may be outside their
// usual ranges and are normalized.
func compose(year int, month time.Month, day, hour, min, sec, nsec, offset int) Time {
	days := int64(dayNumber(year, month, day) - unixToInternal)
	s := days*secondsPerDay + int64(hour)*secondsPerHour + int64(min)*secondsPerMinute + int64(sec) - int64(offset)
	if nsec == 0 {
		return Unix(float64(s))
	}
	return Unix(float64(s) + float64(nsec)/1e9)
}
