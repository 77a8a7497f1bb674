package responsibility

import (
	"context"
	"database/sql"
	"fmt"

	"propertyguard/internal/property/models"
	id "propertyguard/pkg/domain"
	txcontext "propertyguard/pkg/platform/tx"
)

// PostgresStore persists shared responsibilities in PostgreSQL.
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

const responsibilityColumns = `
	id, property_id, area_or_system, description,
	individual_percentage, body_corporate_percentage, hoa_percentage,
	insurance_provider, maintenance_schedule,
	is_active, created_at, updated_at
`

func (s *PostgresStore) Create(ctx context.Context, responsibility *models.SharedResponsibility) error {
	query := `
		INSERT INTO shared_responsibilities (` + responsibilityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.q(ctx).ExecContext(ctx, query,
		responsibility.ID.String(),
		responsibility.PropertyID.String(),
		responsibility.AreaOrSystem,
		responsibility.Description,
		responsibility.IndividualPercentage,
		responsibility.BodyCorporatePercentage,
		responsibility.HOAPercentage,
		responsibility.InsuranceProvider,
		responsibility.MaintenanceSchedule,
		responsibility.IsActive,
		responsibility.CreatedAt,
		responsibility.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shared responsibility: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.SharedResponsibility, error) {
	query := `
		SELECT ` + responsibilityColumns + `
		FROM shared_responsibilities
		WHERE property_id = $1
		ORDER BY created_at, id
	`

	rows, err := s.q(ctx).QueryContext(ctx, query, propertyID.String())
	if err != nil {
		return nil, fmt.Errorf("list shared responsibilities: %w", err)
	}
	defer rows.Close()

	var responsibilities []*models.SharedResponsibility
	for rows.Next() {
		responsibility, err := scanResponsibility(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shared responsibility: %w", err)
		}
		responsibilities = append(responsibilities, responsibility)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shared responsibilities: %w", err)
	}
	return responsibilities, nil
}

func scanResponsibility(rows *sql.Rows) (*models.SharedResponsibility, error) {
	var (
		responsibility   models.SharedResponsibility
		responsibilityID string
		propertyID       string
	)
	err := rows.Scan(
		&responsibilityID,
		&propertyID,
		&responsibility.AreaOrSystem,
		&responsibility.Description,
		&responsibility.IndividualPercentage,
		&responsibility.BodyCorporatePercentage,
		&responsibility.HOAPercentage,
		&responsibility.InsuranceProvider,
		&responsibility.MaintenanceSchedule,
		&responsibility.IsActive,
		&responsibility.CreatedAt,
		&responsibility.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedResponsibilityID, err := id.ParseResponsibilityID(responsibilityID)
	if err != nil {
		return nil, fmt.Errorf("stored responsibility id: %w", err)
	}
	parsedPropertyID, err := id.ParsePropertyID(propertyID)
	if err != nil {
		return nil, fmt.Errorf("stored property id: %w", err)
	}
	responsibility.ID = parsedResponsibilityID
	responsibility.PropertyID = parsedPropertyID
	return &responsibility, nil
}
