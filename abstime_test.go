// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package abstime

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

const century = 3600.0 * 24 * 365 * 100

func TestCompare(t *testing.T) {
	t1 := Now()
	t2 := t1.Add(1)
	if !t2.After(t1) || t2.Compare(t1) != +1 {
		t.Errorf("%#v.Add(1) is not after %#v", t1, t1)
	}
	if !t1.Before(t2) || t1.Compare(t2) != -1 {
		t.Errorf("%#v is not before %#v.Add(1)", t1, t1)
	}

	t3, t4 := Unix(12345), Unix(12345)
	if t3 != t4 || !t3.Equal(t4) || t3.Compare(t4) != 0 {
		t.Errorf("Unix(12345) != Unix(12345)")
	}
	if t3.After(t4) || t4.Before(t3) {
		t.Errorf("Unix(12345) is not both <= and >= Unix(12345)")
	}
}

func TestAdd(t *testing.T) {
	t0 := Now()
	t1 := Now().Add(1)
	t2 := FromNow(10)
	if !t2.After(t1) {
		t.Errorf("FromNow(10) = %v, not after %v", t2, t1)
	}
	if t1 == t0 {
		t.Errorf("Now().Add(1) == Now()")
	}
	t3 := t1
	t1 = t1.Add(10)
	if !t1.After(t3) {
		t.Errorf("%v.Add(10) = %v, not after %v", t3, t1, t3)
	}

	tcs := []struct {
		start  float64
		s1, s2 float64
	}{
		{0, 1, 2},
		{1274132987, 0.5, 0.25},
		{-2828311813, 3600, -7200},
		{1e9, -1e9, 1e9},
	}
	for _, tc := range tcs {
		start := Unix(tc.start)
		got, want := start.Add(tc.s1).Add(tc.s2), start.Add(tc.s1+tc.s2)
		if got != want {
			t.Errorf("%#v.Add(%v).Add(%v) = %#v, want %#v", start, tc.s1, tc.s2, got, want)
		}
		if got, want := start.Add(tc.s1).Sub(start), tc.s1; got != want {
			t.Errorf("%#v.Add(%v).Sub(%#v) = %v, want %v", start, tc.s1, start, got, want)
		}
	}
}

func TestNowIncreases(t *testing.T) {
	t1 := Now()
	time.Sleep(10 * time.Millisecond)
	t2 := Now()
	if !t2.After(t1) {
		t.Errorf("Now() = %v after sleeping, want after %v", t2, t1)
	}
}

func TestDistant(t *testing.T) {
	now := Now()
	if !DistantPast.Before(now) || !now.After(DistantPast) {
		t.Errorf("DistantPast = %v is not before %v", DistantPast, now)
	}
	if d := DistantPast.Sub(now); d > -century {
		t.Errorf("DistantPast.Sub(Now()) = %v, want less than %v", d, -century)
	}
	if !now.Before(DistantFuture) || !DistantFuture.After(now) {
		t.Errorf("DistantFuture = %v is not after %v", DistantFuture, now)
	}
	if d := DistantFuture.Sub(now); d < century {
		t.Errorf("DistantFuture.Sub(Now()) = %v, want more than %v", d, century)
	}
	if got, want := DistantPast.Time(), time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("DistantPast.Time() = %v, want %v", got, want)
	}
	if got, want := DistantFuture.Time(), time.Date(4001, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("DistantFuture.Time() = %v, want %v", got, want)
	}
}

func TestHash(t *testing.T) {
	now := time.Now()
	t0 := FromTime(now)
	t1 := Unix(t0.Seconds())
	if t0.Hash() != t1.Hash() {
		t.Errorf("FromTime(%v).Hash() = %#x, Unix(%v).Hash() = %#x", now, t0.Hash(), t0.Seconds(), t1.Hash())
	}

	t2 := Unix(1274132987)
	t3 := FromTime(time.Date(2010, 5, 17, 14, 49, 47, 0, time.FixedZone("", -7*3600)))
	if t2 != t3 || t2.Hash() != t3.Hash() {
		t.Errorf("equal times %#v and %#v hash to %#x and %#x", t2, t3, t2.Hash(), t3.Hash())
	}

	if z, nz := Unix(0), Unix(math.Copysign(0, -1)); z != nz || z.Hash() != nz.Hash() {
		t.Errorf("Unix(0) and Unix(-0) hash to %#x and %#x", z.Hash(), nz.Hash())
	}
	if z, nz := Unix(0), Unix(1).Add(-1); z.Hash() != nz.Hash() {
		t.Errorf("Unix(0) and Unix(1).Add(-1) hash to %#x and %#x", z.Hash(), nz.Hash())
	}
	if Unix(1).Hash() == Unix(2).Hash() {
		t.Errorf("Unix(1).Hash() == Unix(2).Hash()")
	}
}

func TestTimeInterop(t *testing.T) {
	now := time.Now()
	t0 := FromTime(now)
	if got, want := t0.Seconds(), float64(now.Unix())+float64(now.Nanosecond())/1e9; got != want {
		t.Errorf("FromTime(%v).Seconds() = %v, want %v", now, got, want)
	}

	tcs := []time.Time{
		time.Date(2010, 5, 17, 14, 49, 47, 0, time.UTC),
		time.Date(1810, 5, 17, 14, 49, 47, 0, time.UTC),
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1969, 12, 31, 23, 59, 59, 500000000, time.UTC),
		time.Date(2024, 2, 29, 12, 0, 0, 250000000, time.UTC),
	}
	for _, want := range tcs {
		if got := FromTime(want).Time(); !got.Equal(want) {
			t.Errorf("FromTime(%v).Time() = %v", want, got)
		}
	}
}

func TestMarshalBinary(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 100; i++ {
		want := Unix((rnd.Float64() - 0.5) * 1e11)
		b, err := want.MarshalBinary()
		if err != nil {
			t.Fatalf("%#v.MarshalBinary() = _, %v", want, err)
		}
		var got Time
		if err := got.UnmarshalBinary(b); err != nil {
			t.Fatalf("UnmarshalBinary(%x) = %v", b, err)
		}
		if got != want {
			t.Errorf("UnmarshalBinary(%x) = %#v, want %#v", b, got, want)
		}
	}

	var d Time
	for _, b := range [][]byte{
		nil,
		{1, 2, 3},
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0x7f, 0xf8, 0, 0, 0, 0, 0, 1}, // NaN
		{0x7f, 0xf0, 0, 0, 0, 0, 0, 0}, // +Inf
	} {
		if err := d.UnmarshalBinary(b); err == nil {
			t.Errorf("UnmarshalBinary(%x) = <nil>, want error", b)
		}
	}
}

func TestMarshalText(t *testing.T) {
	tcs := []struct {
		t    Time
		want string
	}{
		{Unix(0), "1970-01-01T00:00:00Z"},
		{Unix(1274132987), "2010-05-17T21:49:47Z"},
		{Unix(1274132987.5), "2010-05-17T21:49:47.5Z"},
		{DistantPast, "0001-01-01T00:00:00Z"},
		{DistantFuture, "4001-01-01T00:00:00Z"},
	}
	for _, tc := range tcs {
		b, err := tc.t.MarshalText()
		if err != nil {
			t.Errorf("%#v.MarshalText() = _, %v", tc.t, err)
			continue
		}
		if string(b) != tc.want {
			t.Errorf("%#v.MarshalText() = %q, want %q", tc.t, b, tc.want)
		}
		var got Time
		if err := got.UnmarshalText(b); err != nil {
			t.Errorf("UnmarshalText(%q) = %v", b, err)
		}
		if got != tc.t {
			t.Errorf("UnmarshalText(%q) = %#v, want %#v", b, got, tc.t)
		}
	}

	if _, err := Unix(maxText.Seconds()).MarshalText(); err == nil {
		t.Errorf("MarshalText of year 10000 succeeded")
	}
	var got Time
	if err := got.UnmarshalText([]byte("2010-05-17 21:49:47")); err == nil {
		t.Errorf("UnmarshalText of non-RFC 3339 time succeeded")
	}
}

func TestString(t *testing.T) {
	if got, want := Unix(1274132987.25).String(), "2010-05-17 21:49:47.25 +0000"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Unix(-0.5).GoString(), "abstime.Unix(-0.5)"; got != want {
		t.Errorf("GoString() = %q, want %q", got, want)
	}
}

func FuzzUnmarshalText(f *testing.F) {
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 100; i++ {
		b, err := Unix(float64(rnd.Int63n(1e11)) - 5e10).MarshalText()
		if err != nil {
			f.Fatal(err)
		}
		f.Add(b)
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		var d Time
		// we only check that UnmarshalText does not panic.
		d.UnmarshalText(b)
	})
}

func FuzzUnmarshalBinary(f *testing.F) {
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 100; i++ {
		b, err := Unix(rnd.NormFloat64() * 1e10).MarshalBinary()
		if err != nil {
			f.Fatal(err)
		}
		f.Add(b)
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		var d Time
		if err := d.UnmarshalBinary(b); err != nil {
			return
		}
		b2, _ := d.MarshalBinary()
		var d2 Time
		if err := d2.UnmarshalBinary(b2); err != nil || d2 != d {
			t.Errorf("UnmarshalBinary(MarshalBinary(%#v)) = %#v, %v", d, d2, err)
		}
	})
}
