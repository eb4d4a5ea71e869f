// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetLevel(level)
	now = func() time.Time { return time.Date(2024, 1, 10, 13, 24, 42, 0, time.UTC) }
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
		now = time.Now
	})
	return buf
}

func TestLines(t *testing.T) {
	buf := capture(t, LevelInfo)
	Debug("hidden", "k", 1)
	Info("parsed", "text", "2010-05-17 14:49:47 -0700", "seconds", 1274132987.0)
	Error("parse failed", errors.New("month out of range"), "text", "x")
	Info("odd", "dangling")
	Info("nonstring", 42, "skipped", "empty", "")

	want := "" +
		"2024-01-10T13:24:42Z [INFO] parsed text=\"2010-05-17 14:49:47 -0700\" seconds=1.274132987e+09\n" +
		"2024-01-10T13:24:42Z [ERROR] parse failed err=\"month out of range\" text=x\n" +
		"2024-01-10T13:24:42Z [INFO] odd\n" +
		"2024-01-10T13:24:42Z [INFO] nonstring empty=\"\"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("log output mismatch (-want +got):\n%s", diff)
	}
}

func TestLevels(t *testing.T) {
	tcs := []struct {
		level Level
		want  int
	}{
		{LevelDebug, 3},
		{LevelInfo, 2},
		{LevelError, 1},
	}
	for _, tc := range tcs {
		buf := capture(t, tc.level)
		Debug("d")
		Info("i")
		Error("e", nil)
		if got := bytes.Count(buf.Bytes(), []byte("\n")); got != tc.want {
			t.Errorf("at level %s, %d lines written, want %d", tc.level, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, " Info ": LevelInfo, "ERROR": LevelError} {
		if got, err := ParseLevel(in); err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %q, %v, want %q, <nil>", in, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("ParseLevel(\"verbose\") succeeded")
	}
}
