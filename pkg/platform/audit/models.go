package audit

import (
	"time"

	id "propertyguard/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// These require tamper-proof storage and long retention (e.g., 7 years).
	// Examples: property registration, certificate status changes, gap resolutions.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring and forensics.
	// Reserved for future use; no property events map here today.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational visibility.
	// These can be sampled or aggregated with shorter retention.
	// Examples: gap detection runs, council imports.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category   EventCategory
	Timestamp  time.Time
	UserID     id.UserID
	PropertyID id.PropertyID
	// Subject is a human-readable identifier for what was acted on
	// (property name, compliance item name, gap description).
	Subject string
	Action  string
	// Detail carries the action-specific summary (e.g. the new score).
	Detail string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
}

type AuditEvent string

const (
	// Property events
	EventPropertyCreated     AuditEvent = "property_created"
	EventResponsibilityAdded AuditEvent = "shared_responsibility_added"

	// Compliance events
	EventComplianceItemUpdated AuditEvent = "compliance_item_updated"
	EventGapDetected           AuditEvent = "documentation_gap_detected"
	EventGapResolved           AuditEvent = "documentation_gap_resolved"

	// Council events
	EventCouncilDataImported AuditEvent = "council_data_imported"
)

// eventCategories maps each audit event to its category.
// Compliance: legal/regulatory significance, long retention required.
// Operations: debugging, operational visibility, can be sampled.
var eventCategories = map[AuditEvent]EventCategory{
	// Compliance events - require tamper-proof storage
	EventPropertyCreated:       CategoryCompliance,
	EventComplianceItemUpdated: CategoryCompliance,
	EventGapResolved:           CategoryCompliance,

	// Operations events - routine activity, can be sampled
	EventResponsibilityAdded: CategoryOperations,
	EventGapDetected:         CategoryOperations,
	EventCouncilDataImported: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
