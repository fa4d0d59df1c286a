package holiday

import "github.com/gama-center/ponto-backend-go/internal/pkg/validator"

type CreateHolidayRequest struct {
	Date  string `json:"date"` // 2006-01-02
	Title string `json:"title"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Title string `json:"title"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:    h.ID,
		Date:  h.Date.Format("2006-01-02"),
		Title: h.Title,
	}
}
