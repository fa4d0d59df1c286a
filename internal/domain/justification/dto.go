package justification

import (
	"mime/multipart"

	"github.com/gama-center/ponto-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Kind != KindDelay && r.Kind != KindAbsence {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be 'delay' or 'absence'",
		})
	}

	if validator.IsEmpty(r.Reason) && r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason text or an evidence photo is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

type Response struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Kind           Kind    `json:"kind"`
	Reason         string  `json:"reason"`
	EvidenceURL    *string `json:"evidence_url,omitempty"`
	Approved       *bool   `json:"approved"`
	Acknowledged   bool    `json:"acknowledged"`
	CreatedAt      string  `json:"created_at"`
}

func ToResponse(j Justification) Response {
	return Response{
		ID:           j.ID,
		UserID:       j.UserID,
		Kind:         j.Kind,
		Reason:       j.Reason,
		EvidenceURL:  j.EvidenceURL,
		Approved:     j.Approved,
		Acknowledged: j.AcknowledgedAt != nil,
		CreatedAt:    j.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
