package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"propertyguard/internal/council/models"
	id "propertyguard/pkg/domain"
)

// MunicipalityDirectory is the write surface seeding needs.
type MunicipalityDirectory interface {
	Upsert(ctx context.Context, municipality *models.Municipality) error
}

// SeedMunicipalities loads the metro municipalities into the directory so
// the listing endpoint is useful before any operational onboarding has
// happened. Names already present are left untouched, so running the seed on
// every boot is safe. None of the metros expose a machine-readable records
// API today; the ones we have a manual retrieval process for are marked
// accordingly.
func SeedMunicipalities(ctx context.Context, directory MunicipalityDirectory) error {
	now := time.Now()

	seeds := []*models.Municipality{
		{
			Name:              "City of Cape Town",
			Province:          "Western Cape",
			HasBuildingPlans:  true,
			HasStandPlans:     true,
			HasCOCRecords:     true,
			HasRatesData:      true,
			IntegrationStatus: models.IntegrationStatusManual,
		},
		{
			Name:              "City of Johannesburg",
			Province:          "Gauteng",
			HasBuildingPlans:  true,
			HasStandPlans:     true,
			HasRatesData:      true,
			IntegrationStatus: models.IntegrationStatusManual,
		},
		{
			Name:              "City of Tshwane",
			Province:          "Gauteng",
			HasBuildingPlans:  true,
			HasStandPlans:     true,
			IntegrationStatus: models.IntegrationStatusManual,
		},
		{
			Name:              "eThekwini Municipality",
			Province:          "KwaZulu-Natal",
			HasBuildingPlans:  true,
			IntegrationStatus: models.IntegrationStatusNotIntegrated,
		},
		{
			Name:              "Nelson Mandela Bay Municipality",
			Province:          "Eastern Cape",
			IntegrationStatus: models.IntegrationStatusNotIntegrated,
		},
	}

	for _, m := range seeds {
		m.ID = id.MunicipalityID(uuid.New())
		m.CreatedAt = now
		m.UpdatedAt = now
		if err := directory.Upsert(ctx, m); err != nil {
			return fmt.Errorf("seed municipality %q: %w", m.Name, err)
		}
	}
	return nil
}
