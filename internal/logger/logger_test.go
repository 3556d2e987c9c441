package logger

import "testing"

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		json, debug bool
	}{
		{json: false, debug: false},
		{json: true, debug: true},
	} {
		logger, err := New(tt.json, tt.debug)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := logger.Core().Enabled(level(true)); got != tt.debug {
			t.Fatalf("debug enabled = %v, want %v", got, tt.debug)
		}
	}

	if encoding(true) != "json" || encoding(false) != "console" {
		t.Fatalf("unexpected encodings")
	}
}
