// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"fmt"
	"strings"

	"gonih.org/set"
)

// patternLetters are the pattern letters reserved by Unicode Technical
// Standard #35. Those without a translation in patternSymbols are rejected
// instead of being treated as literals.
var patternLetters = set.Make(
	'G', 'y', 'Y', 'u', 'U', 'r', 'Q', 'q', 'M', 'L', 'w', 'W', 'd', 'D', 'F',
	'g', 'E', 'e', 'c', 'a', 'b', 'B', 'h', 'H', 'K', 'k', 'j', 'J', 'C', 'm',
	's', 'S', 'A', 'z', 'Z', 'O', 'v', 'V', 'X', 'x',
)

// patternSymbols maps pattern symbols, given as a letter and a count, to
// layout elements.
var patternSymbols = map[patternSymbol]string{
	{'y', 1}: "2006",
	{'y', 2}: "06",
	{'y', 3}: "2006",
	{'y', 4}: "2006",
	{'M', 1}: "1",
	{'M', 2}: "01",
	{'M', 3}: "Jan",
	{'M', 4}: "January",
	{'L', 1}: "1",
	{'L', 2}: "01",
	{'L', 3}: "Jan",
	{'L', 4}: "January",
	{'d', 1}: "2",
	{'d', 2}: "02",
	{'D', 1}: "__2",
	{'D', 3}: "002",
	{'E', 1}: "Mon",
	{'E', 2}: "Mon",
	{'E', 3}: "Mon",
	{'E', 4}: "Monday",
	{'H', 1}: "15",
	{'H', 2}: "15",
	{'m', 2}: "04",
	{'s', 2}: "05",
	{'Z', 1}: "-0700",
	{'Z', 2}: "-0700",
	{'Z', 3}: "-0700",
	{'Z', 5}: "Z07:00",
	{'X', 1}: "Z07",
	{'X', 2}: "Z0700",
	{'X', 3}: "Z07:00",
	{'X', 4}: "Z070000",
	{'X', 5}: "Z07:00:00",
	{'x', 1}: "-07",
	{'x', 2}: "-0700",
	{'x', 3}: "-07:00",
	{'x', 4}: "-070000",
	{'x', 5}: "-07:00:00",
}

type patternSymbol struct {
	letter rune
	count  int
}

// PatternLayout translates a date pattern in the notation of Unicode
// Technical Standard #35 (as used by ICU and many platform date formatters)
// into a layout. For example, "yyyy-MM-dd HH:mm:ss Z" translates to
// DateTimeZone.
//
// Supported symbols are y, yy, yyyy, M to MMMM, L to LLLL, d, dd, D, DDD, E to
// EEEE, H, HH, mm, ss, S to SSSSSSSSS (following a '.' or ','), Z to ZZZ,
// ZZZZZ, X to XXXXX and x to xxxxx. Text in single quotes is literal, and ''
// is a single quote. Other letters are rejected, as are literals which would
// be read as layout elements.
func PatternLayout(pattern string) (string, error) {
	var (
		b   strings.Builder
		lit strings.Builder
	)
	flush := func() error {
		if lit.Len() == 0 {
			return nil
		}
		s := lit.String()
		lit.Reset()
		if _, in, _ := nextOp(s); in.op != opLiteral {
			return fmt.Errorf("pattern %q: literal %q contains layout element %q", pattern, s, in.String())
		}
		b.WriteString(s)
		return nil
	}

	rs := []rune(pattern)
	for i := 0; i < len(rs); {
		r := rs[i]
		if r == '\'' {
			// quoted literal, '' is an escaped quote
			if i+1 < len(rs) && rs[i+1] == '\'' {
				lit.WriteRune('\'')
				i += 2
				continue
			}
			j := i + 1
			for ; j < len(rs); j++ {
				if rs[j] != '\'' {
					lit.WriteRune(rs[j])
					continue
				}
				if j+1 < len(rs) && rs[j+1] == '\'' {
					lit.WriteRune('\'')
					j++
					continue
				}
				break
			}
			if j >= len(rs) {
				return "", fmt.Errorf("pattern %q: unterminated quote", pattern)
			}
			i = j + 1
			continue
		}
		if _, ok := patternLetters[r]; !ok {
			lit.WriteRune(r)
			i++
			continue
		}

		j := i
		for j < len(rs) && rs[j] == r {
			j++
		}
		sym := patternSymbol{r, j - i}
		i = j

		if sym.letter == 'S' {
			// Fractional seconds need the preceding separator, which the
			// layout notation treats as part of the element.
			s := lit.String()
			if s == "" || !isSeparator(s[len(s)-1]) || sym.count > 9 {
				return "", fmt.Errorf("pattern %q: fractional seconds must follow '.' or ',' and have at most 9 digits", pattern)
			}
			lit.Reset()
			lit.WriteString(s[:len(s)-1])
			if err := flush(); err != nil {
				return "", err
			}
			b.WriteByte(s[len(s)-1])
			b.WriteString(strings.Repeat("0", sym.count))
			continue
		}

		el, ok := patternSymbols[sym]
		if !ok {
			return "", fmt.Errorf("pattern %q: unsupported symbol %q", pattern, strings.Repeat(string(r), sym.count))
		}
		if err := flush(); err != nil {
			return "", err
		}
		b.WriteString(el)
	}
	if err := flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}
