package audit

import "context"

type AuditRepository interface {
	// Insert appends one audit entry
	Insert(ctx context.Context, e Entry) error
}

// Service records audit entries fire-and-forget: failures are logged locally
// and never propagated to the caller.
type Service interface {
	Record(ctx context.Context, userID string, action Action, text string)

	// ClearCache drops the cached display-name lookups; called at shutdown
	ClearCache()
}
