package models

import (
	"time"

	id "propertyguard/pkg/domain"
	dErrors "propertyguard/pkg/domain-errors"
)

// ComplianceItem is one certificate or inspection tracked against a property.
//
// Invariants:
//   - Name is non-empty and at most 200 characters
//   - PropertyID is set; items never move between properties
//   - Items are never deleted once created, even when the rule set that
//     produced them changes; scoring reads them as-is
//
// IsCompliant is the only field the documentation score reads. Certificate
// metadata (number, authority, inspection dates, document path) is evidence
// attached by owners as they close items out.
type ComplianceItem struct {
	ID                         id.ItemID     `json:"id"`
	PropertyID                 id.PropertyID `json:"property_id"`
	Name                       string        `json:"name"`
	Description                string        `json:"description,omitempty"`
	Category                   string        `json:"category"`
	IsIndividualResponsibility bool          `json:"is_individual_responsibility"`
	ResponsibleParty           string        `json:"responsible_party"`
	IsRequired                 bool          `json:"is_required"`
	IsCompliant                bool          `json:"is_compliant"`
	DueDate                    *time.Time    `json:"due_date,omitempty"`
	LastInspectionDate         *time.Time    `json:"last_inspection_date,omitempty"`
	NextInspectionDate         *time.Time    `json:"next_inspection_date,omitempty"`
	CertificateNumber          string        `json:"certificate_number,omitempty"`
	IssuingAuthority           string        `json:"issuing_authority,omitempty"`
	DocumentPath               string        `json:"document_path,omitempty"`
	CreatedAt                  time.Time     `json:"created_at"`
	UpdatedAt                  time.Time     `json:"updated_at"`
}

// NewComplianceItem constructs a seeded item. Seeded items start required and
// non-compliant; owners flip IsCompliant as certificates come in.
func NewComplianceItem(itemID id.ItemID, propertyID id.PropertyID, name, category, responsibleParty string, individual bool, now time.Time) (*ComplianceItem, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "compliance item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "compliance item name must be 200 characters or less")
	}
	return &ComplianceItem{
		ID:                         itemID,
		PropertyID:                 propertyID,
		Name:                       name,
		Category:                   category,
		IsIndividualResponsibility: individual,
		ResponsibleParty:           responsibleParty,
		IsRequired:                 true,
		IsCompliant:                false,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}, nil
}

// ItemUpdate carries the owner-editable fields of a compliance item.
// Nil pointers leave the stored value untouched.
type ItemUpdate struct {
	IsCompliant        *bool
	CertificateNumber  *string
	IssuingAuthority   *string
	LastInspectionDate *time.Time
	NextInspectionDate *time.Time
	DocumentPath       *string
}

// Apply merges the update into the item and stamps UpdatedAt.
func (i *ComplianceItem) Apply(update ItemUpdate, now time.Time) {
	if update.IsCompliant != nil {
		i.IsCompliant = *update.IsCompliant
	}
	if update.CertificateNumber != nil {
		i.CertificateNumber = *update.CertificateNumber
	}
	if update.IssuingAuthority != nil {
		i.IssuingAuthority = *update.IssuingAuthority
	}
	if update.LastInspectionDate != nil {
		i.LastInspectionDate = update.LastInspectionDate
	}
	if update.NextInspectionDate != nil {
		i.NextInspectionDate = update.NextInspectionDate
	}
	if update.DocumentPath != nil {
		i.DocumentPath = *update.DocumentPath
	}
	i.UpdatedAt = now
}
