package models

import id "propertyguard/pkg/domain"

// Audit payloads for compliance mutations.

// ItemUpdated is recorded when an owner updates a compliance item.
type ItemUpdated struct {
	PropertyID id.PropertyID
	ItemID     id.ItemID
}

// GapsDetected is recorded when a detection pass inserts new gap rows.
type GapsDetected struct {
	PropertyID id.PropertyID
	Count      int
}

// GapResolved is recorded when an owner closes a documentation gap.
type GapResolved struct {
	PropertyID id.PropertyID
	GapID      id.GapID
}
