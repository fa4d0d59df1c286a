package justification

import "context"

// JustificationService defines the request/approval workflow. Decisions are
// one-way: pending to approved or pending to rejected, never reversed.
type JustificationService interface {
	// Submit creates a pending request for the authenticated user
	Submit(ctx context.Context, req SubmitRequest) (Response, error)

	// Latest returns the authenticated user's most recent request, or nil
	Latest(ctx context.Context) (*Response, error)

	// Approve marks a pending request approved (admin)
	Approve(ctx context.Context, id string) (Response, error)

	// Reject marks a pending request rejected (admin)
	Reject(ctx context.Context, req RejectRequest) (Response, error)

	// Acknowledge records that the client observed a decided request.
	// Acknowledging twice is a no-op, not an error.
	Acknowledge(ctx context.Context, id string) error
}
