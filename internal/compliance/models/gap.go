package models

import (
	"fmt"
	"time"

	id "propertyguard/pkg/domain"
)

// Gap types. Only missing_compliance is produced by detection today; the
// column is wider than the current vocabulary on purpose.
const (
	GapTypeMissingCompliance = "missing_compliance"
)

// Gap severities.
const (
	GapSeverityLow      = "low"
	GapSeverityMedium   = "medium"
	GapSeverityHigh     = "high"
	GapSeverityCritical = "critical"
)

// DocumentationGap records a required certificate the property has no
// compliance item for.
//
// Invariants:
//   - Gaps are append-only: detection inserts, resolution mutates the
//     resolution fields, nothing deletes
//   - Detection does not dedupe against history; re-detecting a gap whose
//     earlier record was resolved produces a second record
type DocumentationGap struct {
	ID                     id.GapID      `json:"id"`
	PropertyID             id.PropertyID `json:"property_id"`
	GapType                string        `json:"gap_type"`
	Description            string        `json:"description"`
	Severity               string        `json:"severity"`
	IsResolved             bool          `json:"is_resolved"`
	ResolutionDate         *time.Time    `json:"resolution_date,omitempty"`
	ResolutionNotes        string        `json:"resolution_notes,omitempty"`
	EstimatedCostToResolve *float64      `json:"estimated_cost_to_resolve,omitempty"`
	ActualCostToResolve    *float64      `json:"actual_cost_to_resolve,omitempty"`
	IdentifiedAt           time.Time     `json:"identified_date"`
	CreatedAt              time.Time     `json:"created_at"`
}

// NewMissingComplianceGap constructs the gap record for one missing
// requirement.
func NewMissingComplianceGap(gapID id.GapID, propertyID id.PropertyID, requirementName, category, severity string, now time.Time) *DocumentationGap {
	return &DocumentationGap{
		ID:           gapID,
		PropertyID:   propertyID,
		GapType:      GapTypeMissingCompliance,
		Description:  fmt.Sprintf("Missing %s for %s compliance", requirementName, category),
		Severity:     severity,
		IsResolved:   false,
		IdentifiedAt: now,
		CreatedAt:    now,
	}
}

// GapResolution carries the fields recorded when an owner closes a gap.
type GapResolution struct {
	ResolutionNotes     string
	ActualCostToResolve *float64
}

// ApplyResolution marks the gap resolved. Resolving an already-resolved gap
// overwrites the resolution fields; detection may later record the same gap
// again as a fresh row.
func (g *DocumentationGap) ApplyResolution(res GapResolution, now time.Time) {
	g.IsResolved = true
	g.ResolutionDate = &now
	g.ResolutionNotes = res.ResolutionNotes
	g.ActualCostToResolve = res.ActualCostToResolve
}
