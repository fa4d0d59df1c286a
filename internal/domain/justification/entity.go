package justification

import "time"

// Kind distinguishes a late-arrival excuse from a whole-day absence.
type Kind string

const (
	KindDelay   Kind = "delay"
	KindAbsence Kind = "absence"
)

// Justification is a pending substitute for a punch recorded outside the
// geofence. Approved is nil while pending; the transition to true or false is
// terminal. Approval-side punch materialization belongs to the approver's
// tooling, not this service.
type Justification struct {
	ID             string
	UserID         string
	Kind           Kind
	Reason         string
	EvidenceURL    *string
	Approved       *bool
	AcknowledgedAt *time.Time
	CreatedAt      time.Time
}

// Pending reports whether the request still awaits a decision.
func (j Justification) Pending() bool {
	return j.Approved == nil
}
