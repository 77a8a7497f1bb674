package handler

import (
	"propertyguard/internal/property/models"
	id "propertyguard/pkg/domain"
)

// CreatePropertyRequest is the body for POST /enhanced-properties.
// Classification values are validated here; name and address rules live on
// the aggregate.
type CreatePropertyRequest struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	PropertyType  string `json:"property_type"`
	OwnershipType string `json:"ownership_type"`
	FloorLevel    string `json:"floor_level"`

	ErfNumber              string `json:"erf_number"`
	StandNumber            string `json:"stand_number"`
	MunicipalAccountNumber string `json:"municipal_account_number"`
	Zoning                 string `json:"zoning"`

	FloorArea         *float64 `json:"floor_area"`
	LandArea          *float64 `json:"land_area"`
	YearBuilt         *int     `json:"year_built"`
	NumberOfBedrooms  *int     `json:"number_of_bedrooms"`
	NumberOfBathrooms *int     `json:"number_of_bathrooms"`

	UnitNumber        string   `json:"unit_number"`
	BodyCorporateName string   `json:"body_corporate_name"`
	LevyAmount        *float64 `json:"levy_amount"`

	parsed models.NewPropertyInput
}

// Validate implements httputil.Validatable.
func (r *CreatePropertyRequest) Validate() error {
	propertyType, err := id.ParsePropertyType(r.PropertyType)
	if err != nil {
		return err
	}
	ownershipType, err := id.ParseOwnershipType(r.OwnershipType)
	if err != nil {
		return err
	}
	floorLevel, err := id.ParseFloorLevel(r.FloorLevel)
	if err != nil {
		return err
	}

	var userID id.UserID
	if r.UserID != "" {
		userID, err = id.ParseUserID(r.UserID)
		if err != nil {
			return err
		}
	}

	r.parsed = models.NewPropertyInput{
		UserID:                 userID,
		Name:                   r.Name,
		Address:                r.Address,
		PropertyType:           propertyType,
		OwnershipType:          ownershipType,
		FloorLevel:             floorLevel,
		ErfNumber:              r.ErfNumber,
		StandNumber:            r.StandNumber,
		MunicipalAccountNumber: r.MunicipalAccountNumber,
		Zoning:                 r.Zoning,
		FloorArea:              r.FloorArea,
		LandArea:               r.LandArea,
		YearBuilt:              r.YearBuilt,
		NumberOfBedrooms:       r.NumberOfBedrooms,
		NumberOfBathrooms:      r.NumberOfBathrooms,
		UnitNumber:             r.UnitNumber,
		BodyCorporateName:      r.BodyCorporateName,
		LevyAmount:             r.LevyAmount,
	}
	return nil
}

// ParsedInput returns the validated creation input. Only meaningful after
// Validate succeeds.
func (r *CreatePropertyRequest) ParsedInput() models.NewPropertyInput {
	return r.parsed
}

// AddResponsibilityRequest is the body for
// POST /enhanced-properties/{propertyID}/shared-responsibilities.
// Field rules live on the model.
type AddResponsibilityRequest struct {
	AreaOrSystem            string  `json:"area_or_system"`
	Description             string  `json:"description"`
	IndividualPercentage    float64 `json:"individual_percentage"`
	BodyCorporatePercentage float64 `json:"body_corporate_percentage"`
	HOAPercentage           float64 `json:"hoa_percentage"`
	InsuranceProvider       string  `json:"insurance_provider"`
	MaintenanceSchedule     string  `json:"maintenance_schedule"`
}

// Input maps the request onto the model input.
func (r *AddResponsibilityRequest) Input() models.NewResponsibilityInput {
	return models.NewResponsibilityInput{
		AreaOrSystem:            r.AreaOrSystem,
		Description:             r.Description,
		IndividualPercentage:    r.IndividualPercentage,
		BodyCorporatePercentage: r.BodyCorporatePercentage,
		HOAPercentage:           r.HOAPercentage,
		InsuranceProvider:       r.InsuranceProvider,
		MaintenanceSchedule:     r.MaintenanceSchedule,
	}
}
