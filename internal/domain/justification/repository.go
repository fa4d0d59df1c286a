package justification

import "context"

type JustificationRepository interface {
	// Insert persists a new pending request and returns it with its ID
	Insert(ctx context.Context, j Justification) (Justification, error)

	// GetByID retrieves a request by ID
	GetByID(ctx context.Context, id string) (Justification, error)

	// Latest returns a user's most recently created request, or nil
	Latest(ctx context.Context, userID string) (*Justification, error)

	// SetDecision records the terminal approved/rejected decision.
	// Implementations must refuse to overwrite an existing decision.
	SetDecision(ctx context.Context, id string, approved bool) error

	// Acknowledge marks the request as seen by the client. A second call for
	// the same request is a no-op.
	Acknowledge(ctx context.Context, id string) error
}
