package schedule

import (
	"testing"
	"time"
)

var testHours = BusinessHours{StartHour: 9, EndHour: 18, SlotIntervalMinutes: 30}

func allFree(Interval) (bool, error) { return true, nil }

func TestGenerateSlotsFullDay(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	now := day // midnight, everything is in the future

	slots, err := testHours.GenerateSlots(day, 30, now, allFree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 9:00 through 17:30 at 30-minute steps.
	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d", len(slots))
	}
	for i, s := range slots {
		if !s.Available {
			t.Errorf("slot %d: expected available", i)
		}
		want := day.Add(9*time.Hour + time.Duration(i)*30*time.Minute)
		if !s.StartTime.Equal(want) {
			t.Errorf("slot %d: start = %s, want %s", i, s.StartTime.Format("15:04"), want.Format("15:04"))
		}
	}

	last := slots[len(slots)-1]
	if !last.EndTime.Equal(day.Add(18 * time.Hour)) {
		t.Errorf("last slot must end exactly at closing, got %s", last.EndTime.Format("15:04"))
	}
}

func TestGenerateSlotsMasksBookedSlot(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	hours := BusinessHours{StartHour: 9, EndHour: 18, SlotIntervalMinutes: 60}

	booking := Interval{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)}
	conflictFree := func(slot Interval) (bool, error) {
		return !slot.Overlaps(booking), nil
	}

	slots, err := hours.GenerateSlots(day, 60, day, conflictFree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}

	if slots[0].Available {
		t.Error("9:00 slot must be unavailable")
	}
	if !slots[1].Available {
		t.Error("10:00 slot must be available")
	}
}

func TestGenerateSlotsOmitsPast(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	now := day.Add(11*time.Hour + 1*time.Minute)

	slots, err := testHours.GenerateSlots(day, 30, now, allFree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 9:00 through 11:00 are gone entirely, not returned as unavailable.
	if len(slots) != 13 {
		t.Fatalf("expected 13 slots, got %d", len(slots))
	}
	if !slots[0].StartTime.Equal(day.Add(11*time.Hour + 30*time.Minute)) {
		t.Fatalf("expected first slot 11:30, got %s", slots[0].StartTime.Format("15:04"))
	}
}

func TestGenerateSlotsSlotAtNowIsOmitted(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	now := day.Add(9 * time.Hour)

	slots, err := testHours.GenerateSlots(day, 30, now, allFree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slots[0].StartTime.Equal(day.Add(9*time.Hour + 30*time.Minute)) {
		t.Fatalf("a slot starting exactly now must be omitted, first slot is %s", slots[0].StartTime.Format("15:04"))
	}
}

func TestGenerateSlotsDurationLongerThanWindow(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	slots, err := testHours.GenerateSlots(day, 10*60, day, allFree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for a service longer than the window, got %d", len(slots))
	}
}

func TestBusinessHoursValidate(t *testing.T) {
	bad := []BusinessHours{
		{StartHour: -1, EndHour: 18, SlotIntervalMinutes: 30},
		{StartHour: 9, EndHour: 25, SlotIntervalMinutes: 30},
		{StartHour: 18, EndHour: 9, SlotIntervalMinutes: 30},
		{StartHour: 9, EndHour: 9, SlotIntervalMinutes: 30},
		{StartHour: 9, EndHour: 18, SlotIntervalMinutes: 0},
	}
	for i, h := range bad {
		if err := h.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}

	if err := testHours.Validate(); err != nil {
		t.Errorf("default hours must validate, got %v", err)
	}
}
