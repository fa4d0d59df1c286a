package justification

import "errors"

// Justification domain errors
var (
	ErrJustificationNotFound = errors.New("justification not found")
	ErrAlreadyProcessed      = errors.New("justification has already been approved or rejected")
	ErrEmptyJustification    = errors.New("justification requires reason text or an evidence photo")
)
