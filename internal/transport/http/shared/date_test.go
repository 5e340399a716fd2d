package shared

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", got)
	}

	got, err = ParseDate("2026-03-10T09:30:00Z")
	if err != nil {
		t.Fatalf("ParseDate RFC3339: %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("got %v, want 09:30", got)
	}

	if _, err := ParseDate("10/03/2026"); err == nil {
		t.Error("expected error for unsupported format")
	}

	got, err = ParseDate("")
	if err != nil || !got.IsZero() {
		t.Errorf("empty input: got %v, %v", got, err)
	}
}

func TestParseDateQuery(t *testing.T) {
	got, err := ParseDateQuery("")
	if err != nil || got != nil {
		t.Errorf("empty query: got %v, %v", got, err)
	}

	got, err = ParseDateQuery("2026-03-10")
	if err != nil {
		t.Fatalf("ParseDateQuery: %v", err)
	}
	if got == nil || got.Day() != 10 {
		t.Errorf("got %v", got)
	}

	if _, err := ParseDateQuery("bogus"); err == nil {
		t.Error("expected error for malformed filter")
	}
}

func TestFormatDate(t *testing.T) {
	at := time.Date(2026, 3, 10, 23, 30, 0, 0, time.FixedZone("plus2", 2*3600))
	if got := FormatDate(at); got != "2026-03-10" {
		t.Errorf("FormatDate = %q", got)
	}
}
