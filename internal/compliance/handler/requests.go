package handler

import (
	"strings"
	"time"

	"propertyguard/internal/compliance/models"
	dErrors "propertyguard/pkg/domain-errors"
)

// UpdateItemRequest is the HTTP request body for
// PUT /api/enhanced-properties/{propertyID}/compliance-items/{itemID}.
// All fields are optional; absent fields leave the stored value untouched.
type UpdateItemRequest struct {
	IsCompliant        *bool   `json:"is_compliant"`
	CertificateNumber  *string `json:"certificate_number"`
	IssuingAuthority   *string `json:"issuing_authority"`
	LastInspectionDate *string `json:"last_inspection_date"`
	NextInspectionDate *string `json:"next_inspection_date"`
	DocumentPath       *string `json:"document_path"`

	// Parsed values (populated by Validate)
	parsedUpdate models.ItemUpdate
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *UpdateItemRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	update := models.ItemUpdate{
		IsCompliant:       r.IsCompliant,
		CertificateNumber: r.CertificateNumber,
		IssuingAuthority:  r.IssuingAuthority,
		DocumentPath:      r.DocumentPath,
	}

	if r.CertificateNumber != nil && len(*r.CertificateNumber) > 100 {
		return dErrors.New(dErrors.CodeValidation, "certificate_number must be at most 100 characters")
	}
	if r.IssuingAuthority != nil && len(*r.IssuingAuthority) > 200 {
		return dErrors.New(dErrors.CodeValidation, "issuing_authority must be at most 200 characters")
	}

	last, err := parseOptionalDate(r.LastInspectionDate, "last_inspection_date")
	if err != nil {
		return err
	}
	update.LastInspectionDate = last

	next, err := parseOptionalDate(r.NextInspectionDate, "next_inspection_date")
	if err != nil {
		return err
	}
	update.NextInspectionDate = next

	r.parsedUpdate = update
	return nil
}

// ParsedUpdate returns the validated item update.
func (r *UpdateItemRequest) ParsedUpdate() models.ItemUpdate {
	return r.parsedUpdate
}

// ResolveGapRequest is the HTTP request body for
// PUT /api/enhanced-properties/{propertyID}/documentation-gaps/{gapID}/resolve.
type ResolveGapRequest struct {
	ResolutionNotes     string   `json:"resolution_notes"`
	ActualCostToResolve *float64 `json:"actual_cost_to_resolve"`
}

// Validate validates the request. The body may be empty; resolution detail is
// optional.
func (r *ResolveGapRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.ResolutionNotes = strings.TrimSpace(r.ResolutionNotes)
	if len(r.ResolutionNotes) > 2000 {
		return dErrors.New(dErrors.CodeValidation, "resolution_notes must be at most 2000 characters")
	}
	if r.ActualCostToResolve != nil && *r.ActualCostToResolve < 0 {
		return dErrors.New(dErrors.CodeValidation, "actual_cost_to_resolve cannot be negative")
	}
	return nil
}

// Resolution converts the request into the domain resolution value.
func (r *ResolveGapRequest) Resolution() models.GapResolution {
	return models.GapResolution{
		ResolutionNotes:     r.ResolutionNotes,
		ActualCostToResolve: r.ActualCostToResolve,
	}
}

// parseOptionalDate accepts RFC 3339 timestamps or bare dates (2006-01-02).
func parseOptionalDate(raw *string, field string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	return nil, dErrors.New(dErrors.CodeValidation, field+" must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
