package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	t.Setenv("ATS_TEST_KEY", "from-env")

	got, err := Load(Source{Name: "gemini api key", Value: "inline", File: path, Env: "ATS_TEST_KEY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file value, got %q", got)
	}
}

func TestLoadFallbacks(t *testing.T) {
	t.Setenv("ATS_TEST_KEY", " from-env ")

	tests := []struct {
		name   string
		src    Source
		expect string
	}{
		{name: "inline value", src: Source{Value: " inline ", Env: "ATS_TEST_KEY"}, expect: "inline"},
		{name: "environment", src: Source{Env: "ATS_TEST_KEY"}, expect: "from-env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	t.Setenv("ATS_TEST_EMPTY", "")

	tests := []struct {
		name string
		src  Source
		want string
	}{
		{name: "missing file", src: Source{Name: "key", File: filepath.Join(t.TempDir(), "nope")}, want: "reading key from file"},
		{name: "empty file", src: Source{Name: "key", File: empty}, want: "is empty"},
		{name: "empty env", src: Source{Name: "key", Env: "ATS_TEST_EMPTY"}, want: "set ATS_TEST_EMPTY"},
		{name: "nothing", src: Source{}, want: "secret is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestConfigured(t *testing.T) {
	t.Setenv("ATS_TEST_KEY", "x")

	if !(Source{Env: "ATS_TEST_KEY"}).Configured() {
		t.Fatal("expected env source to be configured")
	}
	if (Source{Env: "ATS_TEST_UNSET_KEY"}).Configured() {
		t.Fatal("expected unset env source to be unconfigured")
	}
}
