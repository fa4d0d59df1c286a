package report

import "context"

// ReportService derives worked time and balances from persisted punches. It
// is read-only and safe to call concurrently for different users or ranges.
type ReportService interface {
	// Compute aggregates worked hours, business days, and the signed balance
	// for the authenticated user over the filter's period
	Compute(ctx context.Context, filter ReportFilter) (ReportResponse, error)

	// BankOfHours is Compute with the all-time period: the end of the range
	// is clamped to the user's last exit punch
	BankOfHours(ctx context.Context) (ReportResponse, error)

	// History lists punches for the period newest first, injecting a
	// synthetic holiday record for each registered holiday in range
	History(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)
}
