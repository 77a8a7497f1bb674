package handler

import (
	"strings"

	dErrors "propertyguard/pkg/domain-errors"
)

// ImportRequest is the body for POST /enhanced-properties/{propertyID}/council-import.
// Municipality is optional; imports without one are recorded against the
// unknown municipality.
type ImportRequest struct {
	Municipality string `json:"municipality"`
}

// Validate implements httputil.Validatable.
func (r *ImportRequest) Validate() error {
	r.Municipality = strings.TrimSpace(r.Municipality)
	if len(r.Municipality) > 100 {
		return dErrors.New(dErrors.CodeValidation, "municipality must be 100 characters or less")
	}
	return nil
}
