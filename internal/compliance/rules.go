package compliance

import "propertyguard/pkg/domain"

// Requirement is one certificate or inspection a property configuration must
// hold. IndividualResponsibility decides who carries it: the owner directly,
// or a body corporate on behalf of all owners.
type Requirement struct {
	Name                     string
	Category                 string
	IndividualResponsibility bool
}

// Requirements resolves the compliance requirements for a property
// configuration. This is pure domain logic - no I/O, no side effects.
//
// Unmapped property types (cluster homes, retail, industrial, vacant land and
// future additions) resolve to an empty set rather than an error: such
// properties are vacuously compliant until rules for them are introduced.
//
// ownershipType is part of the resolution signature but no current rule keys
// on it; responsibility assignment downstream does.
func Requirements(propertyType domain.PropertyType, ownershipType domain.OwnershipType, floorLevel domain.FloorLevel) []Requirement {
	var base []Requirement

	switch propertyType {
	case domain.PropertyTypeFreestandingHouse:
		base = []Requirement{
			{Name: "Electrical COC", Category: "electrical", IndividualResponsibility: true},
			{Name: "Plumbing COC", Category: "plumbing", IndividualResponsibility: true},
			{Name: "Gas COC", Category: "gas", IndividualResponsibility: true},
			{Name: "Roof Inspection", Category: "structural", IndividualResponsibility: true},
			{Name: "Pool COC", Category: "safety", IndividualResponsibility: true},
		}

	case domain.PropertyTypeSectionalTitleApartment, domain.PropertyTypeSectionalTitleTownhouse:
		base = []Requirement{
			{Name: "Unit Electrical COC", Category: "electrical", IndividualResponsibility: true},
			{Name: "Unit Plumbing COC", Category: "plumbing", IndividualResponsibility: true},
			{Name: "Common Area Electrical", Category: "electrical", IndividualResponsibility: false},
			{Name: "Building Structural", Category: "structural", IndividualResponsibility: false},
		}

		// Floor-specific requirements
		switch floorLevel {
		case domain.FloorLevelTop:
			base = append(base, Requirement{Name: "Roof Access COC", Category: "structural", IndividualResponsibility: true})
		case domain.FloorLevelGround:
			base = append(base, Requirement{Name: "Foundation Inspection", Category: "structural", IndividualResponsibility: false})
		}

	case domain.PropertyTypeCommercialOffice:
		base = []Requirement{
			{Name: "Fire Safety COC", Category: "safety", IndividualResponsibility: true},
			{Name: "Occupancy Certificate", Category: "legal", IndividualResponsibility: true},
			{Name: "HVAC System COC", Category: "mechanical", IndividualResponsibility: true},
			{Name: "Accessibility Compliance", Category: "accessibility", IndividualResponsibility: true},
		}

	case domain.PropertyTypeSchool:
		base = []Requirement{
			{Name: "Fire Safety COC", Category: "safety", IndividualResponsibility: true},
			{Name: "Playground Safety", Category: "safety", IndividualResponsibility: true},
			{Name: "Food Service COC", Category: "health", IndividualResponsibility: true},
			{Name: "Transportation Safety", Category: "safety", IndividualResponsibility: true},
			{Name: "Accessibility Compliance", Category: "accessibility", IndividualResponsibility: true},
		}

	case domain.PropertyTypeHospital:
		base = []Requirement{
			{Name: "Medical Gas Systems", Category: "medical", IndividualResponsibility: true},
			{Name: "Emergency Power Systems", Category: "electrical", IndividualResponsibility: true},
			{Name: "Infection Control Systems", Category: "health", IndividualResponsibility: true},
			{Name: "Waste Management COC", Category: "environmental", IndividualResponsibility: true},
			{Name: "Radiation Safety", Category: "safety", IndividualResponsibility: true},
		}
	}

	return base
}

// ResponsibleParty names who answers for a requirement. Shared requirements
// always fall to the body corporate regardless of how the unit is held.
func ResponsibleParty(req Requirement) string {
	if req.IndividualResponsibility {
		return "Owner"
	}
	return "Body Corporate"
}

// GapSeverity grades a missing requirement. Individually held requirements
// are the owner's to fix and surface as high; shared ones depend on the body
// corporate and surface as medium.
func GapSeverity(req Requirement) string {
	if req.IndividualResponsibility {
		return "high"
	}
	return "medium"
}
