package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	complianceservice "propertyguard/internal/compliance/service"
	councilservice "propertyguard/internal/council/service"
	"propertyguard/internal/property/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
	txcontext "propertyguard/pkg/platform/tx"
)

// PostgresStore persists properties in PostgreSQL. All statements run through
// the context transaction when one is present, so creation commits the
// property row atomically with its seeded compliance items and score.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) q(ctx context.Context) dbtx {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const propertyColumns = `
	id, user_id, name, address,
	property_type, ownership_type, floor_level,
	erf_number, stand_number, municipal_account_number, zoning,
	floor_area, land_area, year_built, number_of_bedrooms, number_of_bathrooms,
	unit_number, body_corporate_name, levy_amount,
	documentation_score, council_data_imported, council_data_import_date,
	is_active, created_at, updated_at
`

func (s *PostgresStore) Create(ctx context.Context, property *models.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err := s.q(ctx).ExecContext(ctx, query,
		property.ID.String(),
		nullableUserID(property.UserID),
		property.Name,
		property.Address,
		property.PropertyType.String(),
		property.OwnershipType.String(),
		property.FloorLevel.String(),
		property.ErfNumber,
		property.StandNumber,
		property.MunicipalAccountNumber,
		property.Zoning,
		property.FloorArea,
		property.LandArea,
		property.YearBuilt,
		property.NumberOfBedrooms,
		property.NumberOfBathrooms,
		property.UnitNumber,
		property.BodyCorporateName,
		property.LevyAmount,
		property.DocumentationScore,
		property.CouncilDataImported,
		property.CouncilDataImportDate,
		property.IsActive,
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, propertyID id.PropertyID) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	property, err := scanProperty(s.q(ctx).QueryRowContext(ctx, query, propertyID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return property, nil
}

// Snapshot returns the compliance view of the property row.
func (s *PostgresStore) Snapshot(ctx context.Context, propertyID id.PropertyID) (complianceservice.PropertySnapshot, error) {
	query := `
		SELECT property_type, ownership_type, floor_level, council_data_imported, updated_at
		FROM properties
		WHERE id = $1
	`

	var (
		snapshot      complianceservice.PropertySnapshot
		propertyType  string
		ownershipType string
		floorLevel    string
	)
	err := s.q(ctx).QueryRowContext(ctx, query, propertyID.String()).Scan(
		&propertyType,
		&ownershipType,
		&floorLevel,
		&snapshot.CouncilDataImported,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return complianceservice.PropertySnapshot{}, sentinel.ErrNotFound
		}
		return complianceservice.PropertySnapshot{}, fmt.Errorf("snapshot property: %w", err)
	}
	snapshot.Classification.PropertyType = id.PropertyType(propertyType)
	snapshot.Classification.OwnershipType = id.OwnershipType(ownershipType)
	snapshot.Classification.FloorLevel = id.FloorLevel(floorLevel)
	return snapshot, nil
}

// UpdateDocumentationScore persists a recomputed documentation score.
func (s *PostgresStore) UpdateDocumentationScore(ctx context.Context, propertyID id.PropertyID, score float64, updatedAt time.Time) error {
	query := `UPDATE properties SET documentation_score = $2, updated_at = $3 WHERE id = $1`

	result, err := s.q(ctx).ExecContext(ctx, query, propertyID.String(), score, updatedAt)
	if err != nil {
		return fmt.Errorf("update documentation score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update documentation score: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// CouncilProfile returns the council view of the property row.
func (s *PostgresStore) CouncilProfile(ctx context.Context, propertyID id.PropertyID) (councilservice.CouncilProfile, error) {
	query := `SELECT erf_number, year_built, council_data_imported FROM properties WHERE id = $1`

	var profile councilservice.CouncilProfile
	err := s.q(ctx).QueryRowContext(ctx, query, propertyID.String()).Scan(
		&profile.ErfNumber,
		&profile.YearBuilt,
		&profile.CouncilDataImported,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return councilservice.CouncilProfile{}, sentinel.ErrNotFound
		}
		return councilservice.CouncilProfile{}, fmt.Errorf("council profile: %w", err)
	}
	return profile, nil
}

// MarkCouncilImported stamps the property as having council data.
func (s *PostgresStore) MarkCouncilImported(ctx context.Context, propertyID id.PropertyID, importedAt time.Time) error {
	query := `
		UPDATE properties
		SET council_data_imported = TRUE, council_data_import_date = $2, updated_at = $2
		WHERE id = $1
	`

	result, err := s.q(ctx).ExecContext(ctx, query, propertyID.String(), importedAt)
	if err != nil {
		return fmt.Errorf("mark council imported: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark council imported: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// nullableUserID maps the nil UserID to SQL NULL; properties created without
// an authenticated owner carry no user reference.
func nullableUserID(userID id.UserID) any {
	if userID.IsNil() {
		return nil
	}
	return userID.String()
}

func scanProperty(row rowScanner) (*models.Property, error) {
	var (
		property      models.Property
		propertyID    string
		userID        sql.NullString
		propertyType  string
		ownershipType string
		floorLevel    string
	)
	err := row.Scan(
		&propertyID,
		&userID,
		&property.Name,
		&property.Address,
		&propertyType,
		&ownershipType,
		&floorLevel,
		&property.ErfNumber,
		&property.StandNumber,
		&property.MunicipalAccountNumber,
		&property.Zoning,
		&property.FloorArea,
		&property.LandArea,
		&property.YearBuilt,
		&property.NumberOfBedrooms,
		&property.NumberOfBathrooms,
		&property.UnitNumber,
		&property.BodyCorporateName,
		&property.LevyAmount,
		&property.DocumentationScore,
		&property.CouncilDataImported,
		&property.CouncilDataImportDate,
		&property.IsActive,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedPropertyID, err := id.ParsePropertyID(propertyID)
	if err != nil {
		return nil, fmt.Errorf("stored property id: %w", err)
	}
	property.ID = parsedPropertyID
	if userID.Valid {
		parsedUserID, err := id.ParseUserID(userID.String)
		if err != nil {
			return nil, fmt.Errorf("stored user id: %w", err)
		}
		property.UserID = parsedUserID
	}
	property.PropertyType = id.PropertyType(propertyType)
	property.OwnershipType = id.OwnershipType(ownershipType)
	property.FloorLevel = id.FloorLevel(floorLevel)
	return &property, nil
}
