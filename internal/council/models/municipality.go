package models

import (
	"time"

	id "propertyguard/pkg/domain"
)

// Integration statuses for a municipality. Advancing a municipality along
// this scale is an operational process, not an API.
const (
	IntegrationStatusNotIntegrated  = "not_integrated"
	IntegrationStatusManual         = "manual"
	IntegrationStatusSemiAutomated  = "semi_automated"
	IntegrationStatusFullyAutomated = "fully_automated"
)

// Municipality describes one municipal authority and what property data it
// can supply. Names are unique.
type Municipality struct {
	ID   id.MunicipalityID `json:"id"`
	Name string            `json:"name"`

	Province     string `json:"province,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`

	HasAPIAccess   bool   `json:"has_api_access"`
	APIEndpoint    string `json:"api_endpoint,omitempty"`
	APIKeyRequired bool   `json:"api_key_required"`

	HasBuildingPlans bool `json:"has_building_plans"`
	HasStandPlans    bool `json:"has_stand_plans"`
	HasCOCRecords    bool `json:"has_coc_records"`
	HasRatesData     bool `json:"has_rates_data"`
	HasZoningData    bool `json:"has_zoning_data"`

	IntegrationStatus string     `json:"integration_status"`
	LastSyncDate      *time.Time `json:"last_sync_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
