package schedule

import "time"

// Interval is a half-open time range [Start, End). All instants are UTC.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps tests two half-open intervals. Strict inequality on both sides:
// an interval ending exactly when the other starts does not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}
