package cli

import (
	"testing"
	"time"

	"github.com/jtwaugh/taskweave/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	weekdays, err := ParseWeekdays("mon,wednesday,5")
	if err != nil {
		t.Fatalf("ParseWeekdays failed: %v", err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(weekdays) != len(want) {
		t.Fatalf("got %d weekdays, want %d", len(weekdays), len(want))
	}
	for i := range want {
		if weekdays[i] != want[i] {
			t.Errorf("weekdays[%d] = %v, want %v", i, weekdays[i], want[i])
		}
	}

	if _, err := ParseWeekdays("mon, funday"); err == nil {
		t.Error("expected error for invalid weekday name")
	}
	if _, err := ParseWeekdays("7"); err == nil {
		t.Error("expected error for out-of-range weekday number")
	}
}

func TestFormatWeekdays(t *testing.T) {
	if got := FormatWeekdays(nil); got != "none" {
		t.Errorf("FormatWeekdays(nil) = %q, want none", got)
	}

	all := []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
	if got := FormatWeekdays(all); got != "every day" {
		t.Errorf("FormatWeekdays(all) = %q, want every day", got)
	}

	if got := FormatWeekdays([]time.Weekday{time.Monday, time.Friday}); got != "Mon,Fri" {
		t.Errorf("FormatWeekdays = %q, want Mon,Fri", got)
	}
}

func TestCalculateSlotDuration(t *testing.T) {
	slot := models.TimeSlot{Start: "09:00", End: "12:30"}
	if got := CalculateSlotDuration(slot); got != 210 {
		t.Errorf("CalculateSlotDuration = %d, want 210", got)
	}

	invalid := models.TimeSlot{Start: "late", End: "later"}
	if got := CalculateSlotDuration(invalid); got != 0 {
		t.Errorf("CalculateSlotDuration on invalid slot = %d, want 0", got)
	}
}
