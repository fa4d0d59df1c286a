package user

import "github.com/gama-center/ponto-backend-go/internal/pkg/validator"

type ProfileResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Username    *string `json:"username,omitempty"`
	ImgURL      *string `json:"img_url,omitempty"`
	Role        Role    `json:"role"`
	Birthdate   *string `json:"birthdate,omitempty"`
	DailyTarget float64 `json:"daily_target_hours"`
	QuotaMax    int     `json:"daily_punch_quota"`
}

type UpdateBirthdateRequest struct {
	Birthdate string `json:"birthdate"`
}

func (r *UpdateBirthdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Birthdate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "birthdate",
			Message: "birthdate must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
