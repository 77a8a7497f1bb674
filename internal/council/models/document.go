package models

import (
	"time"

	id "propertyguard/pkg/domain"
)

// Document types produced by council imports.
const (
	DocumentTypeBuildingPlan = "Building Plan"
	DocumentTypeStandPlan    = "Stand Plan"
)

// Import methods. Only manual exists today; api and scraping are reserved
// for municipalities that expose machine-readable records.
const (
	ImportMethodManual   = "manual"
	ImportMethodAPI      = "api"
	ImportMethodScraping = "scraping"
)

// CouncilDocument is a municipal record attached to a property. File fields
// are plain metadata; the service stores no file content.
type CouncilDocument struct {
	ID         id.DocumentID `json:"id"`
	PropertyID id.PropertyID `json:"property_id"`

	DocumentType string `json:"document_type"`
	DocumentName string `json:"document_name"`
	Description  string `json:"description,omitempty"`

	Municipality    string     `json:"municipality,omitempty"`
	ReferenceNumber string     `json:"reference_number,omitempty"`
	ApprovalDate    *time.Time `json:"approval_date,omitempty"`

	FilePath string `json:"file_path,omitempty"`
	FileSize *int   `json:"file_size,omitempty"`
	FileType string `json:"file_type,omitempty"`

	ImportMethod string    `json:"import_method,omitempty"`
	ImportDate   time.Time `json:"import_date"`
	Verified     bool      `json:"verified"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
