// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-01-28", "2026-01-28"},
		{"1/28/2026", "2026-01-28"},
		{"11/3/2026", "2026-11-03"},
		{"Jan 28, 2026", "2026-01-28"},
		{"Date(2026,0,28)", "2026-01-28"},
		{"not a date", ""},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := ParseDate(tt.in); got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"plain", "1000", 1000, true},
		{"thousands separator", "2,000", 2000, true},
		{"embedded", "n=1,200 RV", 1200, true},
		{"float cell truncates", 997.6, 997, true},
		{"empty", "", 0, false},
		{"no digits", "unknown", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInt(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseInt(%v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParsePct(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"percent sign", "54.0%", 54.0, true},
		{"plain", "48", 48, true},
		{"separator", "1,048", 1048, true},
		{"float cell", 47.5, 47.5, true},
		{"empty", "", 0, false},
		{"text", "Acme", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePct(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParsePct(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCleanURL(t *testing.T) {
	if got := CleanURL("https://example.com/poll.pdf"); got != "https://example.com/poll.pdf" {
		t.Errorf("CleanURL(https) = %q", got)
	}
	if got := CleanURL("http://example.com"); got != "http://example.com" {
		t.Errorf("CleanURL(http) = %q", got)
	}
	for _, bad := range []string{"example.com", "ftp://example.com", "see methodology", ""} {
		if got := CleanURL(bad); got != "" {
			t.Errorf("CleanURL(%q) = %q, want empty", bad, got)
		}
	}
}
