package schedule

import (
	"fmt"
	"time"
)

// AvailableSlot is one bookable candidate in a day. Unavailable slots are
// returned too, so clients can render them as disabled.
type AvailableSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

// BusinessHours is the bookable window and slot granularity, injected from
// configuration.
type BusinessHours struct {
	StartHour           int
	EndHour             int
	SlotIntervalMinutes int
}

func (h BusinessHours) Validate() error {
	if h.StartHour < 0 || h.EndHour > 24 || h.StartHour >= h.EndHour {
		return fmt.Errorf("start hour %d and end hour %d must satisfy 0 <= start < end <= 24", h.StartHour, h.EndHour)
	}
	if h.SlotIntervalMinutes <= 0 {
		return fmt.Errorf("slot interval must be positive, got %d", h.SlotIntervalMinutes)
	}
	return nil
}

// WindowFor returns the business window for the calendar day of date, in UTC.
// Any time-of-day component of date is ignored.
func (h BusinessHours) WindowFor(date time.Time) Interval {
	d := date.UTC()
	return Interval{
		Start: time.Date(d.Year(), d.Month(), d.Day(), h.StartHour, 0, 0, 0, time.UTC),
		End:   time.Date(d.Year(), d.Month(), d.Day(), h.EndHour, 0, 0, 0, time.UTC),
	}
}

// GenerateSlots walks the business window of date at the configured
// granularity, keeping every slot that still fits the service duration
// before closing time. Slots whose start is at or before now are omitted
// entirely; the rest are marked by conflictFree. Output is ascending by
// start time.
func (h BusinessHours) GenerateSlots(
	date time.Time,
	durationMinutes int,
	now time.Time,
	conflictFree func(Interval) (bool, error),
) ([]AvailableSlot, error) {

	window := h.WindowFor(date)
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(h.SlotIntervalMinutes) * time.Minute

	slots := []AvailableSlot{}

	for cur := window.Start; !cur.Add(duration).After(window.End); cur = cur.Add(step) {
		if !cur.After(now) {
			continue
		}

		slot := Interval{Start: cur, End: cur.Add(duration)}
		free, err := conflictFree(slot)
		if err != nil {
			return nil, err
		}

		slots = append(slots, AvailableSlot{
			StartTime: slot.Start,
			EndTime:   slot.End,
			Available: free,
		})
	}

	return slots, nil
}
