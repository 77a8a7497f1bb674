package handler

import (
	"time"

	"propertyguard/internal/compliance/service"
)

// MutationResponse is the shared envelope for item updates and gap
// resolutions: confirmation plus the freshly persisted score.
type MutationResponse struct {
	Success               bool    `json:"success"`
	Message               string  `json:"message"`
	NewDocumentationScore float64 `json:"new_documentation_score"`
}

// ScoreResponse is the HTTP response for
// GET /api/enhanced-properties/{propertyID}/documentation-score.
type ScoreResponse struct {
	PropertyID          string                      `json:"property_id"`
	DocumentationScore  float64                     `json:"documentation_score"`
	ComplianceBreakdown ComplianceBreakdownResponse `json:"compliance_breakdown"`
	GapsBreakdown       GapsBreakdownResponse       `json:"gaps_breakdown"`
	CouncilDataImported bool                        `json:"council_data_imported"`
	LastUpdated         time.Time                   `json:"last_updated"`
}

// ComplianceBreakdownResponse tallies the persisted compliance items.
type ComplianceBreakdownResponse struct {
	TotalItems           int     `json:"total_items"`
	CompliantItems       int     `json:"compliant_items"`
	CompliancePercentage float64 `json:"compliance_percentage"`
}

// GapsBreakdownResponse tallies the persisted documentation gaps.
type GapsBreakdownResponse struct {
	TotalGaps            int     `json:"total_gaps"`
	ResolvedGaps         int     `json:"resolved_gaps"`
	ResolutionPercentage float64 `json:"resolution_percentage"`
}

// FromReport converts a score report to its HTTP shape.
func FromReport(report *service.ScoreReport) *ScoreResponse {
	return &ScoreResponse{
		PropertyID:         report.PropertyID.String(),
		DocumentationScore: report.DocumentationScore,
		ComplianceBreakdown: ComplianceBreakdownResponse{
			TotalItems:           report.Compliance.TotalItems,
			CompliantItems:       report.Compliance.CompliantItems,
			CompliancePercentage: report.Compliance.CompliancePercentage,
		},
		GapsBreakdown: GapsBreakdownResponse{
			TotalGaps:            report.Gaps.TotalGaps,
			ResolvedGaps:         report.Gaps.ResolvedGaps,
			ResolutionPercentage: report.Gaps.ResolutionPercentage,
		},
		CouncilDataImported: report.CouncilDataImported,
		LastUpdated:         report.LastUpdated,
	}
}
