package holiday

import "context"

type HolidayService interface {
	// List returns all holidays ordered by date
	List(ctx context.Context) ([]HolidayResponse, error)

	// Create registers a holiday (admin)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)

	// Delete removes a holiday (admin)
	Delete(ctx context.Context, id string) error
}
