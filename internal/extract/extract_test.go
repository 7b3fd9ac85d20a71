package extract

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"11-10-2025": "2025-10-11",
		"5/1/26":     "2026-01-05",
		"31-02-2025": "31-02-2025",
		"12/10/202":  "12-10-202",
	}
	for in, want := range cases {
		if got := NormalizeDate(in); got != want {
			t.Fatalf("NormalizeDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	if got := NormalizeTime("9.30"); got != "09:30" {
		t.Fatalf("unexpected time %q", got)
	}
	if got := NormalizeTime("16:00"); got != "16:00" {
		t.Fatalf("unexpected time %q", got)
	}
}

func TestIsUnprocessable(t *testing.T) {
	if !IsUnprocessable(fmt.Errorf("wrapped: %w", ErrNoFixturesFound)) {
		t.Fatal("expected wrapped extraction error to be unprocessable")
	}
	if IsUnprocessable(errors.New("disk full")) {
		t.Fatal("unexpected unprocessable")
	}
}
