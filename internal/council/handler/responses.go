package handler

import (
	"fmt"
	"time"

	"propertyguard/internal/council/models"
	"propertyguard/internal/council/service"
)

// ImportResponse is the body for a successful council import.
type ImportResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	DocumentsImported int    `json:"documents_imported"`
}

func ImportResponseFrom(result *service.ImportResult) *ImportResponse {
	return &ImportResponse{
		Success:           true,
		Message:           fmt.Sprintf("Council data imported successfully for %s", result.Municipality),
		DocumentsImported: result.DocumentsImported,
	}
}

// MunicipalityEntry is one directory row. Contact details and the rates and
// zoning capability flags are internal operational data and stay out of the
// listing.
type MunicipalityEntry struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Province          string     `json:"province"`
	IntegrationStatus string     `json:"integration_status"`
	HasAPIAccess      bool       `json:"has_api_access"`
	HasBuildingPlans  bool       `json:"has_building_plans"`
	HasStandPlans     bool       `json:"has_stand_plans"`
	HasCOCRecords     bool       `json:"has_coc_records"`
	LastSyncDate      *time.Time `json:"last_sync_date"`
}

// MunicipalitiesResponse is the body for GET /municipalities.
type MunicipalitiesResponse struct {
	Municipalities []MunicipalityEntry `json:"municipalities"`
}

func MunicipalitiesResponseFrom(municipalities []*models.Municipality) *MunicipalitiesResponse {
	entries := make([]MunicipalityEntry, 0, len(municipalities))
	for _, m := range municipalities {
		entries = append(entries, MunicipalityEntry{
			ID:                m.ID.String(),
			Name:              m.Name,
			Province:          m.Province,
			IntegrationStatus: m.IntegrationStatus,
			HasAPIAccess:      m.HasAPIAccess,
			HasBuildingPlans:  m.HasBuildingPlans,
			HasStandPlans:     m.HasStandPlans,
			HasCOCRecords:     m.HasCOCRecords,
			LastSyncDate:      m.LastSyncDate,
		})
	}
	return &MunicipalitiesResponse{Municipalities: entries}
}
