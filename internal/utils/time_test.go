package utils

import (
	"testing"
	"time"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"13:45", 825, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeToMinutes(%q) expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{825, "13:45"},
		{1439, "23:59"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatMinutesRoundtrip(t *testing.T) {
	for minutes := 0; minutes < 24*60; minutes += 7 {
		back, err := ParseTimeToMinutes(FormatMinutes(minutes))
		if err != nil {
			t.Fatalf("roundtrip failed at %d: %v", minutes, err)
		}
		if back != minutes {
			t.Fatalf("roundtrip mismatch: %d -> %d", minutes, back)
		}
	}
}

func TestValidateDateFormat(t *testing.T) {
	valid := []string{"2026-01-05", "2026-12-31"}
	invalid := []string{"01/05/2026", "2026-1-5", "2026-13-01", "tomorrow", ""}

	for _, d := range valid {
		if !ValidateDateFormat(d) {
			t.Errorf("ValidateDateFormat(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if ValidateDateFormat(d) {
			t.Errorf("ValidateDateFormat(%q) = true, want false", d)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	valid := []string{"", "Local", "UTC", "America/New_York"}
	for _, tz := range valid {
		if !ValidateTimezone(tz) {
			t.Errorf("ValidateTimezone(%q) = false, want true", tz)
		}
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("ValidateTimezone accepted a bogus zone")
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	if err != nil || loc != time.Local {
		t.Errorf("LoadLocation(\"\") = %v, %v; want Local", loc, err)
	}
	loc, err = LoadLocation("Local")
	if err != nil || loc != time.Local {
		t.Errorf("LoadLocation(\"Local\") = %v, %v; want Local", loc, err)
	}
	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Error("LoadLocation accepted a bogus zone")
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	got, err := ParseDateInLocation("2026-01-05", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 0 || got.Location() != loc {
		t.Errorf("ParseDateInLocation = %v, want midnight in %v", got, loc)
	}
	if got.Weekday() != time.Monday {
		t.Errorf("2026-01-05 should be a Monday, got %v", got.Weekday())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{45, "45m"},
		{60, "1h"},
		{90, "1h30m"},
		{180, "3h"},
		{125, "2h5m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
