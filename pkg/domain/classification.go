package domain

import dErrors "propertyguard/pkg/domain-errors"

// PropertyType classifies a property for compliance requirement resolution.
// Invariant: the value must be one of the supported types.
//
// Usage: construct via ParsePropertyType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type PropertyType string

// Supported property types.
const (
	PropertyTypeFreestandingHouse       PropertyType = "freestanding_house"
	PropertyTypeSectionalTitleApartment PropertyType = "sectional_title_apartment"
	PropertyTypeSectionalTitleTownhouse PropertyType = "sectional_title_townhouse"
	PropertyTypeClusterHome             PropertyType = "cluster_home"
	PropertyTypeCommercialOffice        PropertyType = "commercial_office"
	PropertyTypeRetailSpace             PropertyType = "retail_space"
	PropertyTypeShoppingMall            PropertyType = "shopping_mall"
	PropertyTypeSchool                  PropertyType = "school"
	PropertyTypeHospital                PropertyType = "hospital"
	PropertyTypeIndustrial              PropertyType = "industrial"
	PropertyTypeVacantLand              PropertyType = "vacant_land"
)

// propertyTypeOrder is the single source of truth for valid property types.
// The order drives catalog listings.
var propertyTypeOrder = []PropertyType{
	PropertyTypeFreestandingHouse,
	PropertyTypeSectionalTitleApartment,
	PropertyTypeSectionalTitleTownhouse,
	PropertyTypeClusterHome,
	PropertyTypeCommercialOffice,
	PropertyTypeRetailSpace,
	PropertyTypeShoppingMall,
	PropertyTypeSchool,
	PropertyTypeHospital,
	PropertyTypeIndustrial,
	PropertyTypeVacantLand,
}

var validPropertyTypes = func() map[PropertyType]bool {
	m := make(map[PropertyType]bool, len(propertyTypeOrder))
	for _, t := range propertyTypeOrder {
		m[t] = true
	}
	return m
}()

// ParsePropertyType constructs a PropertyType from external input.
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParsePropertyType(s string) (PropertyType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "property_type is required")
	}
	t := PropertyType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported property_type")
	}
	return t, nil
}

// IsValid checks if the property type is one of the supported enum values.
func (t PropertyType) IsValid() bool {
	return validPropertyTypes[t]
}

// String returns the string representation of the property type.
func (t PropertyType) String() string {
	return string(t)
}

// PropertyTypes returns all supported property types in catalog order.
func PropertyTypes() []PropertyType {
	out := make([]PropertyType, len(propertyTypeOrder))
	copy(out, propertyTypeOrder)
	return out
}

// OwnershipType describes how a property is held. It travels with the
// classification triple but does not currently influence requirement
// resolution; responsibility splits and responsible-party naming use it.
type OwnershipType string

// Supported ownership types.
const (
	OwnershipTypeIndividual     OwnershipType = "individual"
	OwnershipTypeSectionalTitle OwnershipType = "sectional_title"
	OwnershipTypeShareBlock     OwnershipType = "share_block"
	OwnershipTypeCompany        OwnershipType = "company"
	OwnershipTypeTrust          OwnershipType = "trust"
	OwnershipTypeBodyCorporate  OwnershipType = "body_corporate"
)

var ownershipTypeOrder = []OwnershipType{
	OwnershipTypeIndividual,
	OwnershipTypeSectionalTitle,
	OwnershipTypeShareBlock,
	OwnershipTypeCompany,
	OwnershipTypeTrust,
	OwnershipTypeBodyCorporate,
}

var validOwnershipTypes = func() map[OwnershipType]bool {
	m := make(map[OwnershipType]bool, len(ownershipTypeOrder))
	for _, t := range ownershipTypeOrder {
		m[t] = true
	}
	return m
}()

// ParseOwnershipType constructs an OwnershipType from external input.
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseOwnershipType(s string) (OwnershipType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "ownership_type is required")
	}
	t := OwnershipType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported ownership_type")
	}
	return t, nil
}

// IsValid checks if the ownership type is one of the supported enum values.
func (t OwnershipType) IsValid() bool {
	return validOwnershipTypes[t]
}

// String returns the string representation of the ownership type.
func (t OwnershipType) String() string {
	return string(t)
}

// OwnershipTypes returns all supported ownership types in catalog order.
func OwnershipTypes() []OwnershipType {
	return append([]OwnershipType(nil), ownershipTypeOrder...)
}

// FloorLevel locates a unit within a building. The zero value means
// unspecified, which is valid for properties where floor level does not
// apply (freestanding houses, vacant land).
type FloorLevel string

// Supported floor levels. FloorLevelNone marks the unspecified case.
const (
	FloorLevelNone   FloorLevel = ""
	FloorLevelGround FloorLevel = "ground_floor"
	FloorLevelMiddle FloorLevel = "middle_floor"
	FloorLevelTop    FloorLevel = "top_floor"
	FloorLevelPent   FloorLevel = "penthouse"
	FloorLevelBase   FloorLevel = "basement"
)

var floorLevelOrder = []FloorLevel{
	FloorLevelGround,
	FloorLevelMiddle,
	FloorLevelTop,
	FloorLevelPent,
	FloorLevelBase,
}

var validFloorLevels = func() map[FloorLevel]bool {
	m := make(map[FloorLevel]bool, len(floorLevelOrder))
	for _, l := range floorLevelOrder {
		m[l] = true
	}
	return m
}()

// ParseFloorLevel constructs a FloorLevel from external input.
// Empty input is valid and yields FloorLevelNone.
// Errors: CodeInvalidInput when a non-empty value is unsupported.
func ParseFloorLevel(s string) (FloorLevel, error) {
	if s == "" {
		return FloorLevelNone, nil
	}
	l := FloorLevel(s)
	if !l.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported floor_level")
	}
	return l, nil
}

// IsValid checks if the floor level is one of the supported enum values.
// FloorLevelNone is not a listed value; use IsNone for the unspecified case.
func (l FloorLevel) IsValid() bool {
	return validFloorLevels[l]
}

// IsNone reports whether the floor level is unspecified.
func (l FloorLevel) IsNone() bool {
	return l == FloorLevelNone
}

// String returns the string representation of the floor level.
func (l FloorLevel) String() string {
	return string(l)
}

// FloorLevels returns all supported floor levels in catalog order.
func FloorLevels() []FloorLevel {
	return append([]FloorLevel(nil), floorLevelOrder...)
}
