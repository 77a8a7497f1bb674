package models

import id "propertyguard/pkg/domain"

// PropertyCreated is the audit payload for a successful property creation.
type PropertyCreated struct {
	PropertyID  id.PropertyID
	Name        string
	ItemsSeeded int
}

// ResponsibilityAdded is the audit payload for a new shared responsibility.
type ResponsibilityAdded struct {
	PropertyID       id.PropertyID
	ResponsibilityID id.ResponsibilityID
	AreaOrSystem     string
}
