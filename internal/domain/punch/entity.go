package punch

import "time"

// Kind identifies a punch within the daily sequence. The persisted
// representation is the legacy Portuguese label; Label and KindFromLabel are
// the only two places that translate between the two.
type Kind string

const (
	KindEntry    Kind = "entry"
	KindLunchOut Kind = "lunch_out"
	KindLunchIn  Kind = "lunch_in"
	KindExit     Kind = "exit"
	KindAbsence  Kind = "absence"
	KindHoliday  Kind = "holiday"
)

const (
	labelEntry    = "Entrada"
	labelLunchOut = "Saída para almoço"
	labelLunchIn  = "Volta do almoço"
	labelExit     = "Fim de expediente"
	labelAbsence  = "Ausência"
	labelHoliday  = "Feriado"
)

// Label returns the canonical persisted label for the kind.
func (k Kind) Label() string {
	switch k {
	case KindEntry:
		return labelEntry
	case KindLunchOut:
		return labelLunchOut
	case KindLunchIn:
		return labelLunchIn
	case KindExit:
		return labelExit
	case KindAbsence:
		return labelAbsence
	case KindHoliday:
		return labelHoliday
	default:
		return labelEntry
	}
}

// KindFromLabel maps a persisted label back to its Kind. Unrecognized legacy
// values fall back to KindEntry instead of failing the read.
func KindFromLabel(label string) Kind {
	switch label {
	case labelEntry:
		return KindEntry
	case labelLunchOut:
		return KindLunchOut
	case labelLunchIn:
		return KindLunchIn
	case labelExit:
		return KindExit
	case labelAbsence:
		return KindAbsence
	case labelHoliday:
		return KindHoliday
	default:
		return KindEntry
	}
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindEntry, KindLunchOut, KindLunchIn, KindExit, KindAbsence, KindHoliday:
		return true
	}
	return false
}

// Punch is one attendance event. Records are immutable once created;
// corrections happen through the justification side channel, which may
// synthesize additional punches but never edits existing ones.
type Punch struct {
	ID               string
	UserID           string
	RecordedAt       time.Time
	Kind             Kind
	Ordinal          int // 1-based position within the day, 0 for synthetic holidays
	AccumulatedHours *float64
	LunchHours       *float64
	Justification    *string
	// JustificationApproved is nil while pending, then true/false.
	JustificationApproved *bool
	OutOfGeofence         bool
	CreatedAt             time.Time
}
