package municipality

import (
	"context"
	"database/sql"
	"fmt"

	"propertyguard/internal/council/models"
	id "propertyguard/pkg/domain"
	txcontext "propertyguard/pkg/platform/tx"
)

// PostgresStore persists municipality integration records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) q(ctx context.Context) dbtx {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const municipalityColumns = `
	id, name, province, contact_email, contact_phone,
	has_api_access, api_endpoint, api_key_required,
	has_building_plans, has_stand_plans, has_coc_records, has_rates_data, has_zoning_data,
	integration_status, last_sync_date,
	created_at, updated_at
`

// Upsert inserts a municipality, leaving any existing row with the same name
// untouched so operational edits survive re-seeding on restart.
func (s *PostgresStore) Upsert(ctx context.Context, municipality *models.Municipality) error {
	query := `
		INSERT INTO municipality_integrations (` + municipalityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (name) DO NOTHING
	`

	_, err := s.q(ctx).ExecContext(ctx, query,
		municipality.ID.String(),
		municipality.Name,
		municipality.Province,
		municipality.ContactEmail,
		municipality.ContactPhone,
		municipality.HasAPIAccess,
		municipality.APIEndpoint,
		municipality.APIKeyRequired,
		municipality.HasBuildingPlans,
		municipality.HasStandPlans,
		municipality.HasCOCRecords,
		municipality.HasRatesData,
		municipality.HasZoningData,
		municipality.IntegrationStatus,
		municipality.LastSyncDate,
		municipality.CreatedAt,
		municipality.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert municipality: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Municipality, error) {
	query := `SELECT ` + municipalityColumns + ` FROM municipality_integrations ORDER BY name`

	rows, err := s.q(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list municipalities: %w", err)
	}
	defer rows.Close()

	var municipalities []*models.Municipality
	for rows.Next() {
		municipality, err := scanMunicipality(rows)
		if err != nil {
			return nil, fmt.Errorf("scan municipality: %w", err)
		}
		municipalities = append(municipalities, municipality)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate municipalities: %w", err)
	}
	return municipalities, nil
}

func scanMunicipality(rows *sql.Rows) (*models.Municipality, error) {
	var (
		municipality   models.Municipality
		municipalityID string
	)
	err := rows.Scan(
		&municipalityID,
		&municipality.Name,
		&municipality.Province,
		&municipality.ContactEmail,
		&municipality.ContactPhone,
		&municipality.HasAPIAccess,
		&municipality.APIEndpoint,
		&municipality.APIKeyRequired,
		&municipality.HasBuildingPlans,
		&municipality.HasStandPlans,
		&municipality.HasCOCRecords,
		&municipality.HasRatesData,
		&municipality.HasZoningData,
		&municipality.IntegrationStatus,
		&municipality.LastSyncDate,
		&municipality.CreatedAt,
		&municipality.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedID, err := id.ParseMunicipalityID(municipalityID)
	if err != nil {
		return nil, fmt.Errorf("stored municipality id: %w", err)
	}
	municipality.ID = parsedID
	return &municipality, nil
}
