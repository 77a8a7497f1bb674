package models

import (
	"strings"
	"time"

	id "propertyguard/pkg/domain"
	dErrors "propertyguard/pkg/domain-errors"
)

// SharedResponsibility records how upkeep of one area or system is split
// between the individual owner, the body corporate, and an HOA. Percentages
// are free-form and not required to sum to 100; the original data model
// imposes no such constraint and imported records frequently do not.
type SharedResponsibility struct {
	ID         id.ResponsibilityID `json:"id"`
	PropertyID id.PropertyID       `json:"property_id"`

	AreaOrSystem string `json:"area_or_system"`
	Description  string `json:"description,omitempty"`

	IndividualPercentage    float64 `json:"individual_percentage"`
	BodyCorporatePercentage float64 `json:"body_corporate_percentage"`
	HOAPercentage           float64 `json:"hoa_percentage"`

	InsuranceProvider   string `json:"insurance_provider,omitempty"`
	MaintenanceSchedule string `json:"maintenance_schedule,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResponsibilityInput carries the caller-supplied responsibility fields.
// Everything but AreaOrSystem is optional and defaults to its zero value.
type NewResponsibilityInput struct {
	AreaOrSystem            string
	Description             string
	IndividualPercentage    float64
	BodyCorporatePercentage float64
	HOAPercentage           float64
	InsuranceProvider       string
	MaintenanceSchedule     string
}

// NewSharedResponsibility constructs a responsibility split record.
func NewSharedResponsibility(responsibilityID id.ResponsibilityID, propertyID id.PropertyID, in NewResponsibilityInput, now time.Time) (*SharedResponsibility, error) {
	area := strings.TrimSpace(in.AreaOrSystem)
	if area == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "area_or_system is required")
	}
	if len(area) > 200 {
		return nil, dErrors.New(dErrors.CodeValidation, "area_or_system must be 200 characters or less")
	}
	for _, pct := range []float64{in.IndividualPercentage, in.BodyCorporatePercentage, in.HOAPercentage} {
		if pct < 0 || pct > 100 {
			return nil, dErrors.New(dErrors.CodeValidation, "percentages must be between 0 and 100")
		}
	}

	return &SharedResponsibility{
		ID:                      responsibilityID,
		PropertyID:              propertyID,
		AreaOrSystem:            area,
		Description:             in.Description,
		IndividualPercentage:    in.IndividualPercentage,
		BodyCorporatePercentage: in.BodyCorporatePercentage,
		HOAPercentage:           in.HOAPercentage,
		InsuranceProvider:       in.InsuranceProvider,
		MaintenanceSchedule:     in.MaintenanceSchedule,
		IsActive:                true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}, nil
}
