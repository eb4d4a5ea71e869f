// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var longDayNames = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

var shortDayNames = []string{
	"Sun",
	"Mon",
	"Tue",
	"Wed",
	"Thu",
	"Fri",
	"Sat",
}

var shortMonthNames = []string{
	"Jan",
	"Feb",
	"Mar",
	"Apr",
	"May",
	"Jun",
	"Jul",
	"Aug",
	"Sep",
	"Oct",
	"Nov",
	"Dec",
}

var longMonthNames = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// Parse parses a formatted string and returns the time value it represents.
// See the documentation for the constant called DateTimeZone to see how to
// represent the format. The second argument must be parseable using the
// format string (layout) provided as the first argument.
//
// Elements omitted from the layout are assumed to be zero or, when zero is
// impossible, one. Years must be in the range 0000…9999. The day of the week
// is checked for syntax but is otherwise ignored. In the absence of a zone
// offset, Parse interprets the time as UTC; use a [Formatter] to parse in
// another timezone.
//
// For layouts specifying the two-digit year 06, a value NN >= 69 will be
// treated as 19NN and a value NN < 69 will be treated as 20NN.
func Parse(layout, value string) (Time, error) {
	return utc.parse(layout, value)
}

// format formats t according to layout, in the timezone of f.
func (f *Formatter) format(layout string, t Time) string {
	const bufSize = 64
	var b []byte
	max := len(layout) + 10
	if max < bufSize {
		var buf [bufSize]byte
		b = buf[:0]
	} else {
		b = make([]byte, 0, max)
	}
	return string(f.appendFormat(b, layout, t))
}

// appendFormat is like format but appends the textual representation to b and
// returns the extended buffer.
func (f *Formatter) appendFormat(b []byte, layout string, t Time) []byte {
	c := decompose(t, f.offsetAt(t))

	prog := programs.Get(layout)

	for _, i := range prog {
		switch i.op {
		case opLiteral:
			b = append(b, i.lit...)
		case opYear:
			y := int64(c.year) % 100
			if y < 0 {
				y = -y
			}
			b = appendInt(b, int(y), 2)
		case opUnderLongYear:
			b = append(b, '_')
			fallthrough
		case opLongYear:
			y := c.year
			if y < 0 {
				b = append(b, '-')
				y = -y
			}
			b = appendInt(b, y, 4)
		case opMonth:
			b = append(b, shortMonthNames[c.month-1]...)
		case opLongMonth:
			b = append(b, longMonthNames[c.month-1]...)
		case opNumMonth:
			b = strconv.AppendInt(b, int64(c.month), 10)
		case opZeroMonth:
			b = appendInt(b, int(c.month), 2)
		case opWeekDay:
			b = append(b, shortDayNames[weekday(c.num)]...)
		case opLongWeekDay:
			b = append(b, longDayNames[weekday(c.num)]...)
		case opDay:
			b = strconv.AppendInt(b, int64(c.day), 10)
		case opUnderDay:
			if c.day < 10 {
				b = append(b, ' ')
			}
			b = strconv.AppendInt(b, int64(c.day), 10)
		case opZeroDay:
			b = appendInt(b, c.day, 2)
		case opUnderYearDay:
			if c.yday < 100 {
				b = append(b, ' ')
				if c.yday < 10 {
					b = append(b, ' ')
				}
			}
			b = strconv.AppendInt(b, int64(c.yday), 10)
		case opZeroYearDay:
			b = appendInt(b, c.yday, 3)
		case opHour:
			b = appendInt(b, c.hour, 2)
		case opZeroMinute:
			b = appendInt(b, c.min, 2)
		case opZeroSecond:
			b = appendInt(b, c.sec, 2)
		case opFracZeros, opFracNines:
			b = appendFrac(b, c.nsec, i.lit[0], i.n, i.op == opFracNines)
		case opISO8601SecondsTZ, opISO8601ColonSecondsTZ, opISO8601TZ, opISO8601ColonTZ, opISO8601ShortTZ,
			opNumSecondsTZ, opNumColonSecondsTZ, opNumTZ, opNumColonTZ, opNumShortTZ:
			z, colon, minutes, seconds := i.op.zoneStyle()
			if z && c.offset == 0 {
				b = append(b, 'Z')
				break
			}
			zone := c.offset / 60 // minutes
			absoffset := c.offset
			if zone < 0 {
				b = append(b, '-')
				zone = -zone
				absoffset = -absoffset
			} else {
				b = append(b, '+')
			}
			b = appendInt(b, zone/60, 2)
			if minutes {
				if colon {
					b = append(b, ':')
				}
				b = appendInt(b, zone%60, 2)
			}
			if seconds {
				if colon {
					b = append(b, ':')
				}
				b = appendInt(b, absoffset%60, 2)
			}
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
	}
	return b
}

// appendInt appends the decimal form of x to b, zero-padded to at least width
// digits. x must not be negative.
func appendInt(b []byte, x int, width int) []byte {
	for n, w := 10, 1; w < width; n, w = n*10, w+1 {
		if x < n {
			b = append(b, '0')
		}
	}
	return strconv.AppendInt(b, int64(x), 10)
}

// appendFrac appends the first n digits of the fractional second nsec, led by
// sep. If trim is set, trailing zeros are removed, and nothing is appended if
// no digits remain.
func appendFrac(b []byte, nsec int, sep byte, n int, trim bool) []byte {
	var buf [9]byte
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(nsec%10) + '0'
		nsec /= 10
	}
	if n > len(buf) {
		n = len(buf)
	}
	if trim {
		for n > 0 && buf[n-1] == '0' {
			n--
		}
		if n == 0 {
			return b
		}
	}
	b = append(b, sep)
	return append(b, buf[:n]...)
}

// parse parses value according to layout. Times without a zone offset are
// interpreted in the timezone of f.
func (f *Formatter) parse(layout, value string) (Time, error) {
	p := newParser(value)
	var (
		// kept around for error reporting
		alayout, avalue = layout, value

		year  int
		month int = -1
		day   int = -1
		yday  int = -1
		hour  int
		min   int
		sec   int
		nsec  int

		offset int
		zoned  bool
	)

	prog := programs.Get(layout)

	// Execute the parsing instructions
	for n, i := range prog {
		p.setInst(i)
		switch i.op {
		case opLiteral:
			p.accept(i.lit)
		case opYear:
			year = p.atoi(2)
			if year >= 69 { // Unix time starts Dec 31 1969 in some time zones
				year += 1900
			} else {
				year += 2000
			}
		case opUnderLongYear:
			p.accept("_")
			fallthrough
		case opLongYear:
			p.peekDigit()
			year = p.atoi(4)
		case opMonth:
			month = p.lookup(shortMonthNames) + 1
		case opLongMonth:
			month = p.lookup(longMonthNames) + 1
		case opNumMonth, opZeroMonth:
			month = p.num(i.op == opZeroMonth)
			if !p.hasErr && (month <= 0 || 12 < month) {
				return Time{}, p.err(alayout, avalue, "month out of range")
			}
		case opWeekDay:
			// ignore weekday, except for parsing
			p.lookup(shortDayNames)
		case opLongWeekDay:
			// ignore weekday, except for parsing
			p.lookup(longDayNames)
		case opUnderDay:
			p.skipByte(' ')
			fallthrough
		case opDay, opZeroDay:
			day = p.num(i.op == opZeroDay)
		case opUnderYearDay:
			p.skipByte(' ')
			p.skipByte(' ')
			fallthrough
		case opZeroYearDay:
			yday = p.num3(i.op == opZeroYearDay)
		case opHour:
			hour = p.num(false)
			if !p.hasErr && (hour < 0 || 24 <= hour) {
				return Time{}, p.err(alayout, avalue, "hour out of range")
			}
		case opZeroMinute:
			min = p.num(true)
			if !p.hasErr && (min < 0 || 60 <= min) {
				return Time{}, p.err(alayout, avalue, "minute out of range")
			}
		case opZeroSecond:
			sec = p.num(true)
			if !p.hasErr && (sec < 0 || 60 <= sec) {
				return Time{}, p.err(alayout, avalue, "second out of range")
			}
			// The input may contain a fractional second, even if the
			// layout does not.
			if len(p.value) >= 2 && isSeparator(p.value[0]) && isDigit(p.value, 1) && !fracFollows(prog[n+1:]) {
				nd := 2
				for ; nd < len(p.value) && isDigit(p.value, nd); nd++ {
				}
				nsec = p.frac(nd)
			}
		case opFracZeros:
			if len(p.value) < i.n+1 {
				p.parseFailed()
				break
			}
			nsec = p.frac(i.n + 1)
		case opFracNines:
			if len(p.value) < 2 || !isSeparator(p.value[0]) || !isDigit(p.value, 1) {
				// fractional second omitted
				break
			}
			nd := 2
			for ; nd < len(p.value) && isDigit(p.value, nd); nd++ {
			}
			nsec = p.frac(nd)
		case opISO8601SecondsTZ, opISO8601ColonSecondsTZ, opISO8601TZ, opISO8601ColonTZ, opISO8601ShortTZ,
			opNumSecondsTZ, opNumColonSecondsTZ, opNumTZ, opNumColonTZ, opNumShortTZ:
			var msg string
			offset, msg = p.zone(i.op)
			if msg != "" {
				return Time{}, p.err(alayout, avalue, msg)
			}
			zoned = true
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
		if p.hasErr {
			return Time{}, p.err(alayout, avalue, "")
		}
	}
	if len(p.value) > 0 {
		return Time{}, p.err(alayout, avalue, "extra text: "+strconv.Quote(p.value))
	}
	p.finish()

	// Validate the parsed date
	if yday >= 0 {
		var (
			d int
			m int
		)
		if isLeap(year) {
			if yday == 31+29 {
				m = int(time.February)
				d = 29
			} else if yday > 31+29 {
				yday--
			}
		}
		if yday < 1 || yday > 365 {
			return Time{}, p.err(alayout, avalue, "day-of-year out of range")
		}
		if m == 0 {
			m = (yday-1)/31 + 1
			if daysBefore[m] < yday {
				m++
			}
			d = yday - daysBefore[m-1]
		}
		// If month, day already seen, yday's m, d must match.
		// Otherwise, set them from m, d.
		if month >= 0 && month != m {
			return Time{}, p.err(alayout, avalue, "day-of-year does not match month")
		}
		month = m
		if day >= 0 && day != d {
			return Time{}, p.err(alayout, avalue, "day-of-year does not match day")
		}
		day = d
	} else {
		if month < 0 {
			month = int(time.January)
		}
		if day < 0 {
			day = 1
		}
	}
	// Validate the day of the month.
	if day < 1 || day > daysIn(time.Month(month), year) {
		return Time{}, p.err(alayout, avalue, "day out of range")
	}
	if !zoned {
		offset = f.wallOffset(year, time.Month(month), day, hour, min, sec)
	}
	return compose(year, time.Month(month), day, hour, min, sec, nsec, offset), nil
}

// fracFollows reports whether the next operator in prog is a fractional
// second.
func fracFollows(prog []inst) bool {
	for _, i := range prog {
		if i.op == opLiteral {
			continue
		}
		return i.op == opFracZeros || i.op == opFracNines
	}
	return false
}

// match reports whether s1 and s2 match ignoring case.
// It is assumed s1 and s2 are the same length.
func match(s1, s2 string) bool {
	for i := 0; i < len(s1); i++ {
		c1 := s1[i]
		c2 := s2[i]
		if c1 != c2 {
			// Switch to lower-case; 'a'-'A' is known to be a single bit.
			c1 |= 'a' - 'A'
			c2 |= 'a' - 'A'
			if c1 != c2 || c1 < 'a' || c1 > 'z' {
				return false
			}
		}
	}
	return true
}

func isDigit(s string, i int) bool {
	if len(s) <= i {
		return false
	}
	return '0' <= s[i] && s[i] <= '9'
}

func isSeparator(c byte) bool {
	return c == '.' || c == ','
}

type parser struct {
	inst   inst
	hasErr bool
	value  string
	valEl  string
}

func newParser(value string) *parser {
	return &parser{
		value: value,
	}
}

// setInst sets the current instruction and input offset for error reporting.
func (p *parser) setInst(i inst) {
	p.inst = i
	p.valEl = p.value
}

// finish signals that parsing is finished and the parser is only being kept
// around for error reporting.
func (p *parser) finish() {
	p.inst = inst{op: opInvalid}
	p.valEl = ""
}

// parseFailed signals that the parse has failed at the current instruction.
func (p *parser) parseFailed() {
	p.hasErr = true
}

func (p *parser) err(layout, value, msg string) error {
	// We call strings.Clone in this function to prevent Parse from allocating
	// in the happy path. As parts of the input appear in the error message,
	// the compiler has to mark the value argument to Parse as potentially
	// escaping. Cloning them here means the input itself never escapes. This
	// means we save an allocation in the happy path, at the cost of an extra
	// allocation in the sad path.
	v := strings.Clone(value)
	if msg == "" {
		ve := strings.Clone(p.valEl)
		le := strings.Clone(p.inst.String())
		return &FormatError{
			Layout:     layout,
			Value:      v,
			LayoutElem: le,
			ValueElem:  ve,
		}
	}
	return &FormatError{
		Layout:  layout,
		Value:   v,
		Message: msg,
	}
}

// skipByte skips the given byte, if the input starts with it.
func (p *parser) skipByte(b byte) {
	if len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// expectByte accepts exactly the given byte.
func (p *parser) expectByte(b byte) {
	if len(p.value) == 0 || p.value[0] != b {
		p.parseFailed()
		return
	}
	p.value = p.value[1:]
}

// trimByte skips a run of the given byte.
func (p *parser) trimByte(b byte) {
	for len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// accept a literal string, treating runs of space characters as equivalent.
func (p *parser) accept(lit string) {
	for len(lit) > 0 {
		if lit[0] == ' ' {
			if p.value != "" && p.value[0] != ' ' {
				p.parseFailed()
				return
			}
			p.trimByte(' ')
			lit = strings.TrimLeft(lit, " ")
			continue
		}
		if p.value == "" || p.value[0] != lit[0] {
			p.parseFailed()
			return
		}
		lit, p.value = lit[1:], p.value[1:]
	}
}

// atoi accepts the next i bytes of input as an integer.
func (p *parser) atoi(i int) int {
	if len(p.value) < i {
		p.parseFailed()
		return 0
	}
	v, err := strconv.Atoi(p.value[:i])
	if err != nil {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return v
}

// getnumN parses s[0:1], …, or s[0:N] (fixed forces s[0:N])
// as a decimal integer.
func (p *parser) getnumN(N int, fixed bool) int {
	var n, i int
	for i = 0; i < N && isDigit(p.value, i); i++ {
		n = n*10 + int(p.value[i]-'0')
	}
	if i == 0 || (fixed && i != N) {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return n
}

// num parses s[:1] or s[:2] (fixed forces s[:2]) as a decimal integer.
func (p *parser) num(fixed bool) int {
	return p.getnumN(2, fixed)
}

// num3 parses s[:1], s[:2] or s[:3] (fixed forces s[:3]) as a decimal integer.
func (p *parser) num3(fixed bool) int {
	return p.getnumN(3, fixed)
}

// frac accepts a separator followed by n-1 digits as a fractional second and
// returns it in nanoseconds. Digits beyond the ninth are ignored.
func (p *parser) frac(n int) int {
	if !isSeparator(p.value[0]) {
		p.parseFailed()
		return 0
	}
	digits := p.value[1:n]
	if len(digits) > 9 {
		digits = digits[:9]
	}
	var ns int
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits, i) {
			p.parseFailed()
			return 0
		}
		ns = ns*10 + int(digits[i]-'0')
	}
	for i := len(digits); i < 9; i++ {
		ns *= 10
	}
	p.value = p.value[n:]
	return ns
}

// zone accepts a zone offset as described by op and returns it in seconds
// east of UTC. If the offset is syntactically valid but out of range, msg
// describes the problem.
func (p *parser) zone(op fmtOp) (offset int, msg string) {
	z, colon, minutes, seconds := op.zoneStyle()
	if z && len(p.value) > 0 && p.value[0] == 'Z' {
		p.value = p.value[1:]
		return 0, ""
	}
	if len(p.value) == 0 || (p.value[0] != '+' && p.value[0] != '-') {
		p.parseFailed()
		return 0, ""
	}
	sign := p.value[0]
	p.value = p.value[1:]

	var hh, mm, ss int
	hh = p.getnumN(2, true)
	if minutes && !p.hasErr {
		if colon {
			p.expectByte(':')
		}
		mm = p.getnumN(2, true)
	}
	if seconds && !p.hasErr {
		if colon {
			p.expectByte(':')
		}
		ss = p.getnumN(2, true)
	}
	if p.hasErr {
		return 0, ""
	}
	// Use > rather than >=, as some people do write offsets of 24 hours or 60
	// minutes or 60 seconds.
	switch {
	case hh > 24:
		return 0, "zone offset hour out of range"
	case mm > 60:
		return 0, "zone offset minute out of range"
	case ss > 60:
		return 0, "zone offset second out of range"
	}
	offset = (hh*60+mm)*60 + ss
	if sign == '-' {
		offset = -offset
	}
	return offset, ""
}

// peekDigit ensures that the current value starts with a digit, without
// advancing the input.
func (p *parser) peekDigit() {
	if !isDigit(p.value, 0) {
		p.parseFailed()
	}
}

// lookup a value from a table and accept a case-insensitive match.
func (p *parser) lookup(table []string) int {
	for i, v := range table {
		if len(p.value) >= len(v) && match(p.value[0:len(v)], v) {
			p.value = p.value[len(v):]
			return i
		}
	}
	p.parseFailed()
	return 0
}

// FormatError describes a problem parsing a time string: either the string
// does not match the layout, or it denotes a date or time that does not
// exist.
type FormatError struct {
	Layout     string
	Value      string
	LayoutElem string
	ValueElem  string
	Message    string
}

// Error returns the string representation of a FormatError.
func (e *FormatError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("parsing time %q as %q: cannot parse %q as %q", e.Value, e.Layout, e.ValueElem, e.LayoutElem)
	}
	return fmt.Sprintf("parsing time %q: %s", e.Value, e.Message)
}
