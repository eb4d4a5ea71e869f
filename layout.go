// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"strings"

	"gonih.org/abstime/internal/memo"
)

// These are predefined layouts for use in [Time.Format], [Parse] and
// [Formatter]. The reference time used in these layouts is the specific time
// stamp:
//
//	Mon Jan 2 15:04:05 -0700 2006
//
// The format specification works the same as [time.Layout], with these
// recognized components:
//
//	Year: "2006" "06"
//	Month: "Jan" "January" "01" "1"
//	Day of the week: "Mon" "Monday"
//	Day of the month: "2" "_2" "02"
//	Day of the year: "__2" "002"
//	Hour: "15"
//	Minute: "04"
//	Second: "05"
//	Fractional second: ".000" ".999" (any number of digits up to 9, or ",")
//	Zone offset: "-0700" "-07:00" "-07" "-070000" "-07:00:00"
//	Zone offset, "Z" for UTC: "Z0700" "Z07:00" "Z07" "Z070000" "Z07:00:00"
//
// The twelve-hour clock and zone abbreviations are not supported; their
// reference values are treated as literals.
const (
	DateTime     = "2006-01-02 15:04:05"
	DateTimeZone = "2006-01-02 15:04:05 -0700" // yyyy-MM-dd HH:mm:ss Z
	DateOnly     = "2006-01-02"
	TimeOnly     = "15:04:05"
	RFC1123Z     = "Mon, 02 Jan 2006 15:04:05 -0700"
	RFC3339      = "2006-01-02T15:04:05Z07:00"
	RFC3339Nano  = "2006-01-02T15:04:05.999999999Z07:00"
	Stamp        = "Jan _2 15:04:05"
)

// inst is a single component of a layout string, either a literal string, or a
// formatting operator.
type inst struct {
	op  fmtOp
	lit string // literal text, or the separator of a fraction
	n   int    // number of fractional digits
}

// String implements fmt.Stringer, for debugging
func (i inst) String() string {
	switch i.op {
	case opLiteral:
		return i.lit
	case opFracZeros:
		return i.lit + strings.Repeat("0", i.n)
	case opFracNines:
		return i.lit + strings.Repeat("9", i.n)
	}
	return i.op.String()
}

// fmtOp is a formatting operator.
type fmtOp int

const (
	opLiteral fmtOp = iota

	// Sorted by parsing preference, do not re-order!
	opLongMonth
	opMonth
	opLongWeekDay
	opWeekDay
	opZeroYearDay
	opZeroMonth
	opZeroDay
	opYear
	opHour
	opZeroMinute
	opZeroSecond
	opNumMonth
	opLongYear
	opDay
	opUnderLongYear // package time treats this as "_"+opLongYear, but it is simpler to just handle it with an extra opcode
	opUnderDay
	opUnderYearDay
	opISO8601SecondsTZ
	opISO8601ColonSecondsTZ
	opISO8601TZ
	opISO8601ColonTZ
	opISO8601ShortTZ
	opNumSecondsTZ
	opNumColonSecondsTZ
	opNumTZ
	opNumColonTZ
	opNumShortTZ

	// Not matched by name, see nextOp.
	opFracZeros
	opFracNines

	opInvalid
)

// String implements fmt.Stringer. Except for opLiteral, it returns the layout
// component of the operator.
func (op fmtOp) String() string {
	switch op {
	case opLiteral:
		return "<literal>"
	case opLongMonth:
		return "January"
	case opMonth:
		return "Jan"
	case opLongWeekDay:
		return "Monday"
	case opWeekDay:
		return "Mon"
	case opZeroYearDay:
		return "002"
	case opZeroMonth:
		return "01"
	case opZeroDay:
		return "02"
	case opYear:
		return "06"
	case opHour:
		return "15"
	case opZeroMinute:
		return "04"
	case opZeroSecond:
		return "05"
	case opNumMonth:
		return "1"
	case opLongYear:
		return "2006"
	case opDay:
		return "2"
	case opUnderLongYear:
		return "_2006"
	case opUnderDay:
		return "_2"
	case opUnderYearDay:
		return "__2"
	case opISO8601SecondsTZ:
		return "Z070000"
	case opISO8601ColonSecondsTZ:
		return "Z07:00:00"
	case opISO8601TZ:
		return "Z0700"
	case opISO8601ColonTZ:
		return "Z07:00"
	case opISO8601ShortTZ:
		return "Z07"
	case opNumSecondsTZ:
		return "-070000"
	case opNumColonSecondsTZ:
		return "-07:00:00"
	case opNumTZ:
		return "-0700"
	case opNumColonTZ:
		return "-07:00"
	case opNumShortTZ:
		return "-07"
	case opFracZeros:
		return ".0"
	case opFracNines:
		return ".9"
	}
	panic("invalid fmtOp")
}

// endsWord returns whether op must be a full word, that is must not be
// followed by a lower-case letter.
func (op fmtOp) endsWord() bool {
	return op == opMonth || op == opWeekDay
}

// zoneStyle describes how a zone offset operator formats and parses.
func (op fmtOp) zoneStyle() (z, colon, minutes, seconds bool) {
	switch op {
	case opISO8601SecondsTZ:
		return true, false, true, true
	case opISO8601ColonSecondsTZ:
		return true, true, true, true
	case opISO8601TZ:
		return true, false, true, false
	case opISO8601ColonTZ:
		return true, true, true, false
	case opISO8601ShortTZ:
		return true, false, false, false
	case opNumSecondsTZ:
		return false, false, true, true
	case opNumColonSecondsTZ:
		return false, true, true, true
	case opNumTZ:
		return false, false, true, false
	case opNumColonTZ:
		return false, true, true, false
	}
	return false, false, false, false
}

// memoize compiled layout strings.
var programs = memo.New(memo.DefaultSize, parseLayout)

// parseLayout parses layout into a set of instructions to parse or format
// according to it.
func parseLayout(layout string) []inst {
	var prog []inst
	for len(layout) > 0 {
		prefix, in, suffix := nextOp(layout)
		if prefix != "" {
			prog = append(prog, inst{lit: prefix})
		}
		if in.op != opLiteral {
			prog = append(prog, in)
		}
		layout = suffix
	}
	return prog
}

// nextOp decomposes layout into the next operator, a literal prefix and the
// rest of the layout.
func nextOp(layout string) (prefix string, in inst, suffix string) {
	for i := 0; i < len(layout); i++ {
		if c := layout[i]; (c == '.' || c == ',') && i+1 < len(layout) && (layout[i+1] == '0' || layout[i+1] == '9') {
			digit := layout[i+1]
			j := i + 1
			for j < len(layout) && layout[j] == digit {
				j++
			}
			// String of digits must end here - only fractional second if
			// all digits are the same and nothing numeric follows.
			if !isDigit(layout, j) && j-i-1 <= 9 {
				op := opFracZeros
				if digit == '9' {
					op = opFracNines
				}
				return layout[:i], inst{op: op, lit: layout[i : i+1], n: j - i - 1}, layout[j:]
			}
		}
		for op := opLongMonth; op < opFracZeros; op++ {
			suffix, ok := strings.CutPrefix(layout[i:], op.String())
			if !ok {
				continue
			}
			if op.endsWord() && startsWithLowerCase(suffix) {
				continue
			}
			return layout[:i], inst{op: op}, suffix
		}
	}
	return layout, inst{}, ""
}

// startsWithLowerCase reports whether the string has a lower-case letter at
// the beginning. Its purpose is to prevent matching strings like "Month" when
// looking for "Mon".
func startsWithLowerCase(s string) bool {
	return len(s) > 0 && 'a' <= s[0] && s[0] <= 'z'
}
