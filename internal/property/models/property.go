package models

import (
	"strings"
	"time"

	"propertyguard/internal/compliance"
	id "propertyguard/pkg/domain"
	dErrors "propertyguard/pkg/domain-errors"
)

// Property is the aggregate compliance tracking hangs off: a physical
// property with the classification triple that drives requirement
// resolution, municipal identifiers for council data matching, and the
// persisted documentation score.
//
// Invariants:
//   - Name is non-empty and at most 200 characters
//   - Address is non-empty
//   - PropertyType and OwnershipType are valid enum values; FloorLevel may
//     be unspecified
//   - DocumentationScore is owned by the compliance engine; nothing else
//     writes it
type Property struct {
	ID     id.PropertyID `json:"id"`
	UserID id.UserID     `json:"user_id"`

	Name    string `json:"name"`
	Address string `json:"address"`

	PropertyType  id.PropertyType  `json:"property_type"`
	OwnershipType id.OwnershipType `json:"ownership_type"`
	FloorLevel    id.FloorLevel    `json:"floor_level,omitempty"`

	// Council and municipal identifiers.
	ErfNumber              string `json:"erf_number,omitempty"`
	StandNumber            string `json:"stand_number,omitempty"`
	MunicipalAccountNumber string `json:"municipal_account_number,omitempty"`
	Zoning                 string `json:"zoning,omitempty"`

	FloorArea         *float64 `json:"floor_area,omitempty"`
	LandArea          *float64 `json:"land_area,omitempty"`
	YearBuilt         *int     `json:"year_built,omitempty"`
	NumberOfBedrooms  *int     `json:"number_of_bedrooms,omitempty"`
	NumberOfBathrooms *int     `json:"number_of_bathrooms,omitempty"`

	// Sectional title detail.
	UnitNumber        string   `json:"unit_number,omitempty"`
	BodyCorporateName string   `json:"body_corporate_name,omitempty"`
	LevyAmount        *float64 `json:"levy_amount,omitempty"`

	DocumentationScore    float64    `json:"documentation_score"`
	CouncilDataImported   bool       `json:"council_data_imported"`
	CouncilDataImportDate *time.Time `json:"council_data_import_date,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPropertyInput carries the caller-supplied fields for property creation.
type NewPropertyInput struct {
	UserID        id.UserID
	Name          string
	Address       string
	PropertyType  id.PropertyType
	OwnershipType id.OwnershipType
	FloorLevel    id.FloorLevel

	ErfNumber              string
	StandNumber            string
	MunicipalAccountNumber string
	Zoning                 string

	FloorArea         *float64
	LandArea          *float64
	YearBuilt         *int
	NumberOfBedrooms  *int
	NumberOfBathrooms *int

	UnitNumber        string
	BodyCorporateName string
	LevyAmount        *float64
}

// NewProperty constructs a property, enforcing the aggregate invariants.
// The documentation score starts at zero; creation recomputes it once the
// compliance items are seeded.
func NewProperty(propertyID id.PropertyID, in NewPropertyInput, now time.Time) (*Property, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "property name is required")
	}
	if len(name) > 200 {
		return nil, dErrors.New(dErrors.CodeValidation, "property name must be 200 characters or less")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "property address is required")
	}
	if !in.PropertyType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unsupported property_type")
	}
	if !in.OwnershipType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unsupported ownership_type")
	}
	if !in.FloorLevel.IsNone() && !in.FloorLevel.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unsupported floor_level")
	}

	return &Property{
		ID:                     propertyID,
		UserID:                 in.UserID,
		Name:                   name,
		Address:                address,
		PropertyType:           in.PropertyType,
		OwnershipType:          in.OwnershipType,
		FloorLevel:             in.FloorLevel,
		ErfNumber:              in.ErfNumber,
		StandNumber:            in.StandNumber,
		MunicipalAccountNumber: in.MunicipalAccountNumber,
		Zoning:                 in.Zoning,
		FloorArea:              in.FloorArea,
		LandArea:               in.LandArea,
		YearBuilt:              in.YearBuilt,
		NumberOfBedrooms:       in.NumberOfBedrooms,
		NumberOfBathrooms:      in.NumberOfBathrooms,
		UnitNumber:             in.UnitNumber,
		BodyCorporateName:      in.BodyCorporateName,
		LevyAmount:             in.LevyAmount,
		DocumentationScore:     0,
		IsActive:               true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}, nil
}

// Classification returns the rule-table key for this property.
func (p *Property) Classification() compliance.Classification {
	return compliance.Classification{
		PropertyType:  p.PropertyType,
		OwnershipType: p.OwnershipType,
		FloorLevel:    p.FloorLevel,
	}
}
