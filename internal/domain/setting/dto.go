package setting

import "github.com/gama-center/ponto-backend-go/internal/pkg/validator"

type RadiusResponse struct {
	RadiusKm float64 `json:"radius_km"`
}

type UpdateRadiusRequest struct {
	RadiusKm float64 `json:"radius_km"`
}

func (r *UpdateRadiusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RadiusKm <= 0 || r.RadiusKm > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_km",
			Message: "radius must be greater than 0 and at most 100 km",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
