package punch

import "time"

// byOrdinal locates the punch with the given ordinal, or nil.
func byOrdinal(punches []Punch, ordinal int) *Punch {
	for i := range punches {
		if punches[i].Ordinal == ordinal {
			return &punches[i]
		}
	}
	return nil
}

// WorkedDuration computes the worked time for one day's punches. Segment A
// runs from the entry punch to the lunch-out punch (or now while the shift is
// open); segment B from lunch-in to exit (or now). All completeness states,
// zero through four punches, are handled; the result never goes negative.
func WorkedDuration(dayPunches []Punch, now time.Time) time.Duration {
	var total time.Duration

	if p1 := byOrdinal(dayPunches, 1); p1 != nil {
		end := now
		if p2 := byOrdinal(dayPunches, 2); p2 != nil {
			end = p2.RecordedAt
		}
		total += end.Sub(p1.RecordedAt)
	}

	if p3 := byOrdinal(dayPunches, 3); p3 != nil {
		end := now
		if p4 := byOrdinal(dayPunches, 4); p4 != nil {
			end = p4.RecordedAt
		}
		total += end.Sub(p3.RecordedAt)
	}

	if total < 0 {
		return 0
	}
	return total
}

// AccountingFields holds the "as of this punch" values stored on a record at
// creation time.
type AccountingFields struct {
	AccumulatedHours *float64
	LunchHours       *float64
}

// AccountAt computes the stored accounting fields for a punch of the given
// kind being created at "at", over the punches already accepted today.
//
// The asymmetry here is deliberate and load-bearing for historical display:
// on lunch-in the accumulated value is frozen to lunchOut−entry rather than
// recomputed through the lunch break, while on exit it is cumulative,
// (lunchOut−entry)+(at−lunchIn). Do not unify the two formulas.
func AccountAt(todayPunches []Punch, kind Kind, at time.Time) AccountingFields {
	var fields AccountingFields

	entry := byOrdinal(todayPunches, 1)
	if entry == nil {
		return fields
	}

	lunchOut := firstOfKind(todayPunches, KindLunchOut)
	lunchIn := firstOfKind(todayPunches, KindLunchIn)

	switch kind {
	case KindLunchOut:
		fields.AccumulatedHours = hoursPtr(at.Sub(entry.RecordedAt))
	case KindLunchIn:
		if lunchOut != nil {
			fields.AccumulatedHours = hoursPtr(lunchOut.RecordedAt.Sub(entry.RecordedAt))
			fields.LunchHours = hoursPtr(at.Sub(lunchOut.RecordedAt))
		} else {
			fields.AccumulatedHours = hoursPtr(at.Sub(entry.RecordedAt))
		}
	case KindExit:
		if lunchOut != nil && lunchIn != nil {
			morning := lunchOut.RecordedAt.Sub(entry.RecordedAt)
			afternoon := at.Sub(lunchIn.RecordedAt)
			fields.AccumulatedHours = hoursPtr(morning + afternoon)
		} else {
			fields.AccumulatedHours = hoursPtr(at.Sub(entry.RecordedAt))
		}
	default:
		fields.AccumulatedHours = hoursPtr(at.Sub(entry.RecordedAt))
	}

	return fields
}

func firstOfKind(punches []Punch, kind Kind) *Punch {
	for i := range punches {
		if punches[i].Kind == kind {
			return &punches[i]
		}
	}
	return nil
}

// hoursPtr converts a duration to decimal hours rounded to two places, the
// precision the legacy records carry.
func hoursPtr(d time.Duration) *float64 {
	if d < 0 {
		d = 0
	}
	h := float64(int64(d.Hours()*100+0.5)) / 100
	return &h
}
