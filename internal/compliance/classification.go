package compliance

import "propertyguard/pkg/domain"

// Classification is the rule-table key for one property: what it is, how it
// is held, and where in the building it sits.
type Classification struct {
	PropertyType  domain.PropertyType
	OwnershipType domain.OwnershipType
	FloorLevel    domain.FloorLevel
}

// RequirementsFor resolves the rule table for a classification.
func RequirementsFor(c Classification) []Requirement {
	return Requirements(c.PropertyType, c.OwnershipType, c.FloorLevel)
}
