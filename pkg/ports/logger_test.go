package ports

import "testing"

func TestLookupLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{" warn ", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"quiet", LevelQuiet, true},
		{"", LevelInfo, false},
		{"verbose", LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LookupLogLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("LookupLogLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
			if ParseLogLevel(tt.in) != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v", tt.in, ParseLogLevel(tt.in))
			}
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	for l := LevelDebug; l <= LevelQuiet; l++ {
		if back, ok := LookupLogLevel(l.String()); !ok || back != l {
			t.Errorf("%v does not round-trip", l)
		}
	}
	if LogLevel(42).String() != "unknown" {
		t.Error("out-of-range level should be unknown")
	}
}
