// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldsEmpty(t *testing.T) {
	var fs Fields
	for f := Field(0); f < numFields; f++ {
		if v, ok := fs.Get(f); ok {
			t.Errorf("Fields{}.Get(%v) = %d, true, want absent", f, v)
		}
	}
	if n := fs.Len(); n != 0 {
		t.Errorf("Fields{}.Len() = %d, want 0", n)
	}
	if s := fs.String(); s != "" {
		t.Errorf("Fields{}.String() = %q, want \"\"", s)
	}
}

func TestFieldsOf(t *testing.T) {
	fs := FieldsOf(map[Field]int{Year: 1999})
	if v, ok := fs.Get(Day); ok {
		t.Errorf("FieldsOf({year: 1999}).Get(Day) = %d, true, want absent", v)
	}
	if v, ok := fs.Get(Year); !ok || v != 1999 {
		t.Errorf("FieldsOf({year: 1999}).Get(Year) = %d, %v, want 1999, true", v, ok)
	}

	// zero is a value, not absence
	fs = FieldsOf(map[Field]int{Hour: 0, ZoneOffset: -25200})
	if v, ok := fs.Get(Hour); !ok || v != 0 {
		t.Errorf("Get(Hour) = %d, %v, want 0, true", v, ok)
	}
	if got, want := fs.String(), "hour=0 zoneoffset=-25200"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// no field is derived from others
	fs = FieldsOf(map[Field]int{Year: 2024, YearDay: 60})
	want := map[Field]int{Year: 2024, YearDay: 60}
	if diff := cmp.Diff(want, fs.Map()); diff != "" {
		t.Errorf("FieldsOf(%v).Map() mismatch (-want +got):\n%s", want, diff)
	}
}

func TestFieldsWith(t *testing.T) {
	fs := Fields{}.With(Month, 5).With(Day, 17)
	fs2 := fs.With(Day, 18)
	if v, _ := fs.Get(Day); v != 17 {
		t.Errorf("With modified its receiver: Get(Day) = %d, want 17", v)
	}
	if v, _ := fs2.Get(Day); v != 18 {
		t.Errorf("With(Day, 18).Get(Day) = %d, want 18", v)
	}
	if fs == fs2 {
		t.Errorf("Fields with different days compare equal")
	}
	if got := fs2.Without(Day).Without(Month); got != (Fields{}) {
		t.Errorf("Without all fields = %v, want empty", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestParseField(t *testing.T) {
	for f := Field(0); f < numFields; f++ {
		got, err := ParseField(f.String())
		if err != nil || got != f {
			t.Errorf("ParseField(%q) = %v, %v, want %v, <nil>", f.String(), got, err, f)
		}
	}
	if got, err := ParseField("YEAR"); err != nil || got != Year {
		t.Errorf("ParseField(\"YEAR\") = %v, %v, want year, <nil>", got, err)
	}
	if _, err := ParseField("fortnight"); err == nil {
		t.Errorf("ParseField(\"fortnight\") succeeded")
	}
	if got, want := Field(200).String(), "Field(200)"; got != want {
		t.Errorf("Field(200).String() = %q, want %q", got, want)
	}
}
