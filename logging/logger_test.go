package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("site", WARN, &buf)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("page", "hidden", nil)
	l.Info("page", "hidden", nil)
	l.Warn("page", "shown", map[string]any{"k": "v"})
	l.Error("contact", "failed", errors.New("boom"), nil)

	entries := decodeEntries(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[0].Fields["k"] != "v" || entries[0].Source != "site" {
		t.Fatalf("unexpected warn entry %+v", entries[0])
	}
	if entries[1].Level != "ERROR" || entries[1].Error != "boom" || entries[1].Category != "contact" {
		t.Fatalf("unexpected error entry %+v", entries[1])
	}
	if !entries[1].Timestamp.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %s", entries[1].Timestamp)
	}
}

func TestLoggerAddWriter(t *testing.T) {
	var one, two bytes.Buffer
	l := New("site", INFO, &one)
	l.AddWriter(&two)
	l.AddWriter(nil)
	l.Info("page", "hello", nil)
	if !strings.Contains(one.String(), "hello") || !strings.Contains(two.String(), "hello") {
		t.Fatalf("expected both writers to receive the entry")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		" Info ":  INFO,
		"warning": WARN,
		"ERROR":   ERROR,
		"":        INFO,
		"loud":    INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
