package handler

import (
	"strings"
	"time"

	compliancemodels "propertyguard/internal/compliance/models"
	councilmodels "propertyguard/internal/council/models"
	"propertyguard/internal/property/models"
	"propertyguard/internal/property/service"
	id "propertyguard/pkg/domain"
)

// CatalogEntry is one classification value. Name is the constant-style form
// clients use for display keys.
type CatalogEntry struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// CatalogResponse is the body for GET /property-types.
type CatalogResponse struct {
	PropertyTypes  []CatalogEntry `json:"property_types"`
	OwnershipTypes []CatalogEntry `json:"ownership_types"`
	FloorLevels    []CatalogEntry `json:"floor_levels"`
}

// ClassificationCatalog lists every supported classification value.
func ClassificationCatalog() *CatalogResponse {
	resp := &CatalogResponse{}
	for _, t := range id.PropertyTypes() {
		resp.PropertyTypes = append(resp.PropertyTypes, catalogEntry(t.String()))
	}
	for _, t := range id.OwnershipTypes() {
		resp.OwnershipTypes = append(resp.OwnershipTypes, catalogEntry(t.String()))
	}
	for _, l := range id.FloorLevels() {
		resp.FloorLevels = append(resp.FloorLevels, catalogEntry(l.String()))
	}
	return resp
}

func catalogEntry(value string) CatalogEntry {
	return CatalogEntry{Value: value, Name: strings.ToUpper(value)}
}

// CreateResponse is the body for a successful property creation.
type CreateResponse struct {
	Success                bool   `json:"success"`
	PropertyID             string `json:"property_id"`
	Message                string `json:"message"`
	ComplianceItemsCreated int    `json:"compliance_items_created"`
}

// ResponsibilityResponse is the body for a successful responsibility add.
type ResponsibilityResponse struct {
	Success                bool   `json:"success"`
	Message                string `json:"message"`
	SharedResponsibilityID string `json:"shared_responsibility_id"`
}

// DetailResponse is the body for GET /enhanced-properties/{propertyID}.
// documentation_gaps carries only unresolved gaps, without resolution fields;
// the gap resolve endpoint is where resolution state travels.
type DetailResponse struct {
	Property               PropertyBody            `json:"property"`
	ComplianceItems        []ComplianceItemEntry   `json:"compliance_items"`
	SharedResponsibilities []ResponsibilityEntry   `json:"shared_responsibilities"`
	CouncilDocuments       []CouncilDocumentEntry  `json:"council_documents"`
	DocumentationGaps      []DocumentationGapEntry `json:"documentation_gaps"`
}

// PropertyBody is the property block of the detail response.
type PropertyBody struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Address                string    `json:"address"`
	PropertyType           string    `json:"property_type"`
	OwnershipType          string    `json:"ownership_type"`
	FloorLevel             *string   `json:"floor_level"`
	ErfNumber              string    `json:"erf_number"`
	StandNumber            string    `json:"stand_number"`
	MunicipalAccountNumber string    `json:"municipal_account_number"`
	Zoning                 string    `json:"zoning"`
	FloorArea              *float64  `json:"floor_area"`
	LandArea               *float64  `json:"land_area"`
	YearBuilt              *int      `json:"year_built"`
	NumberOfBedrooms       *int      `json:"number_of_bedrooms"`
	NumberOfBathrooms      *int      `json:"number_of_bathrooms"`
	UnitNumber             string    `json:"unit_number"`
	BodyCorporateName      string    `json:"body_corporate_name"`
	LevyAmount             *float64  `json:"levy_amount"`
	DocumentationScore     float64   `json:"documentation_score"`
	CouncilDataImported    bool      `json:"council_data_imported"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// ComplianceItemEntry is one compliance item row of the detail response.
type ComplianceItemEntry struct {
	ID                         string     `json:"id"`
	Name                       string     `json:"name"`
	Description                string     `json:"description"`
	Category                   string     `json:"category"`
	IsIndividualResponsibility bool       `json:"is_individual_responsibility"`
	ResponsibleParty           string     `json:"responsible_party"`
	IsRequired                 bool       `json:"is_required"`
	IsCompliant                bool       `json:"is_compliant"`
	DueDate                    *time.Time `json:"due_date"`
	LastInspectionDate         *time.Time `json:"last_inspection_date"`
	NextInspectionDate         *time.Time `json:"next_inspection_date"`
	CertificateNumber          string     `json:"certificate_number"`
	IssuingAuthority           string     `json:"issuing_authority"`
}

// ResponsibilityEntry is one shared responsibility row of the detail response.
type ResponsibilityEntry struct {
	ID                      string  `json:"id"`
	AreaOrSystem            string  `json:"area_or_system"`
	Description             string  `json:"description"`
	IndividualPercentage    float64 `json:"individual_percentage"`
	BodyCorporatePercentage float64 `json:"body_corporate_percentage"`
	HOAPercentage           float64 `json:"hoa_percentage"`
	InsuranceProvider       string  `json:"insurance_provider"`
	MaintenanceSchedule     string  `json:"maintenance_schedule"`
}

// CouncilDocumentEntry is one council document row of the detail response.
type CouncilDocumentEntry struct {
	ID              string     `json:"id"`
	DocumentType    string     `json:"document_type"`
	DocumentName    string     `json:"document_name"`
	Description     string     `json:"description"`
	Municipality    string     `json:"municipality"`
	ReferenceNumber string     `json:"reference_number"`
	ApprovalDate    *time.Time `json:"approval_date"`
	ImportMethod    string     `json:"import_method"`
	Verified        bool       `json:"verified"`
}

// DocumentationGapEntry is one unresolved gap row of the detail response.
type DocumentationGapEntry struct {
	ID                     string    `json:"id"`
	GapType                string    `json:"gap_type"`
	Description            string    `json:"description"`
	Severity               string    `json:"severity"`
	EstimatedCostToResolve *float64  `json:"estimated_cost_to_resolve"`
	IdentifiedDate         time.Time `json:"identified_date"`
}

// DetailResponseFrom shapes the service detail into the wire response.
func DetailResponseFrom(detail *service.Detail) *DetailResponse {
	resp := &DetailResponse{
		Property:               propertyBody(detail.Property),
		ComplianceItems:        make([]ComplianceItemEntry, 0, len(detail.ComplianceItems)),
		SharedResponsibilities: make([]ResponsibilityEntry, 0, len(detail.SharedResponsibilities)),
		CouncilDocuments:       make([]CouncilDocumentEntry, 0, len(detail.CouncilDocuments)),
		DocumentationGaps:      make([]DocumentationGapEntry, 0, len(detail.DocumentationGaps)),
	}
	for _, item := range detail.ComplianceItems {
		resp.ComplianceItems = append(resp.ComplianceItems, complianceItemEntry(item))
	}
	for _, responsibility := range detail.SharedResponsibilities {
		resp.SharedResponsibilities = append(resp.SharedResponsibilities, responsibilityEntry(responsibility))
	}
	for _, document := range detail.CouncilDocuments {
		resp.CouncilDocuments = append(resp.CouncilDocuments, councilDocumentEntry(document))
	}
	for _, gap := range detail.DocumentationGaps {
		resp.DocumentationGaps = append(resp.DocumentationGaps, documentationGapEntry(gap))
	}
	return resp
}

func propertyBody(p *models.Property) PropertyBody {
	var floorLevel *string
	if !p.FloorLevel.IsNone() {
		level := p.FloorLevel.String()
		floorLevel = &level
	}
	return PropertyBody{
		ID:                     p.ID.String(),
		Name:                   p.Name,
		Address:                p.Address,
		PropertyType:           p.PropertyType.String(),
		OwnershipType:          p.OwnershipType.String(),
		FloorLevel:             floorLevel,
		ErfNumber:              p.ErfNumber,
		StandNumber:            p.StandNumber,
		MunicipalAccountNumber: p.MunicipalAccountNumber,
		Zoning:                 p.Zoning,
		FloorArea:              p.FloorArea,
		LandArea:               p.LandArea,
		YearBuilt:              p.YearBuilt,
		NumberOfBedrooms:       p.NumberOfBedrooms,
		NumberOfBathrooms:      p.NumberOfBathrooms,
		UnitNumber:             p.UnitNumber,
		BodyCorporateName:      p.BodyCorporateName,
		LevyAmount:             p.LevyAmount,
		DocumentationScore:     p.DocumentationScore,
		CouncilDataImported:    p.CouncilDataImported,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func complianceItemEntry(item *compliancemodels.ComplianceItem) ComplianceItemEntry {
	return ComplianceItemEntry{
		ID:                         item.ID.String(),
		Name:                       item.Name,
		Description:                item.Description,
		Category:                   item.Category,
		IsIndividualResponsibility: item.IsIndividualResponsibility,
		ResponsibleParty:           item.ResponsibleParty,
		IsRequired:                 item.IsRequired,
		IsCompliant:                item.IsCompliant,
		DueDate:                    item.DueDate,
		LastInspectionDate:         item.LastInspectionDate,
		NextInspectionDate:         item.NextInspectionDate,
		CertificateNumber:          item.CertificateNumber,
		IssuingAuthority:           item.IssuingAuthority,
	}
}

func responsibilityEntry(responsibility *models.SharedResponsibility) ResponsibilityEntry {
	return ResponsibilityEntry{
		ID:                      responsibility.ID.String(),
		AreaOrSystem:            responsibility.AreaOrSystem,
		Description:             responsibility.Description,
		IndividualPercentage:    responsibility.IndividualPercentage,
		BodyCorporatePercentage: responsibility.BodyCorporatePercentage,
		HOAPercentage:           responsibility.HOAPercentage,
		InsuranceProvider:       responsibility.InsuranceProvider,
		MaintenanceSchedule:     responsibility.MaintenanceSchedule,
	}
}

func councilDocumentEntry(document *councilmodels.CouncilDocument) CouncilDocumentEntry {
	return CouncilDocumentEntry{
		ID:              document.ID.String(),
		DocumentType:    document.DocumentType,
		DocumentName:    document.DocumentName,
		Description:     document.Description,
		Municipality:    document.Municipality,
		ReferenceNumber: document.ReferenceNumber,
		ApprovalDate:    document.ApprovalDate,
		ImportMethod:    document.ImportMethod,
		Verified:        document.Verified,
	}
}

func documentationGapEntry(gap *compliancemodels.DocumentationGap) DocumentationGapEntry {
	return DocumentationGapEntry{
		ID:                     gap.ID.String(),
		GapType:                gap.GapType,
		Description:            gap.Description,
		Severity:               gap.Severity,
		EstimatedCostToResolve: gap.EstimatedCostToResolve,
		IdentifiedDate:         gap.IdentifiedAt,
	}
}
