package gap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"propertyguard/internal/compliance/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
	txcontext "propertyguard/pkg/platform/tx"
)

// PostgresStore persists documentation gaps in PostgreSQL. Statements join
// the context transaction when one is present.
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

const gapColumns = `
	id, property_id, gap_type, description, severity,
	is_resolved, resolution_date, resolution_notes,
	estimated_cost_to_resolve, actual_cost_to_resolve,
	identified_date, created_at
`

func (s *PostgresStore) CreateBatch(ctx context.Context, gaps []*models.DocumentationGap) error {
	if len(gaps) == 0 {
		return nil
	}

	query := `
		INSERT INTO documentation_gaps (` + gapColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, gap := range gaps {
		_, err := s.q(ctx).ExecContext(ctx, query,
			gap.ID.String(),
			gap.PropertyID.String(),
			gap.GapType,
			gap.Description,
			gap.Severity,
			gap.IsResolved,
			gap.ResolutionDate,
			gap.ResolutionNotes,
			gap.EstimatedCostToResolve,
			gap.ActualCostToResolve,
			gap.IdentifiedAt,
			gap.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert documentation gap: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, gapID id.GapID) (*models.DocumentationGap, error) {
	query := `SELECT ` + gapColumns + ` FROM documentation_gaps WHERE id = $1`

	gap, err := scanGap(s.q(ctx).QueryRowContext(ctx, query, gapID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find documentation gap: %w", err)
	}
	return gap, nil
}

func (s *PostgresStore) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.DocumentationGap, error) {
	query := `
		SELECT ` + gapColumns + `
		FROM documentation_gaps
		WHERE property_id = $1
		ORDER BY created_at, id
	`

	rows, err := s.q(ctx).QueryContext(ctx, query, propertyID.String())
	if err != nil {
		return nil, fmt.Errorf("list documentation gaps: %w", err)
	}
	defer rows.Close()

	var gaps []*models.DocumentationGap
	for rows.Next() {
		gap, err := scanGap(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documentation gap: %w", err)
		}
		gaps = append(gaps, gap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documentation gaps: %w", err)
	}
	return gaps, nil
}

func (s *PostgresStore) Update(ctx context.Context, gap *models.DocumentationGap) error {
	query := `
		UPDATE documentation_gaps SET
			is_resolved = $2,
			resolution_date = $3,
			resolution_notes = $4,
			actual_cost_to_resolve = $5
		WHERE id = $1
	`

	result, err := s.q(ctx).ExecContext(ctx, query,
		gap.ID.String(),
		gap.IsResolved,
		gap.ResolutionDate,
		gap.ResolutionNotes,
		gap.ActualCostToResolve,
	)
	if err != nil {
		return fmt.Errorf("update documentation gap: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update documentation gap: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGap(row rowScanner) (*models.DocumentationGap, error) {
	var (
		gap        models.DocumentationGap
		gapID      string
		propertyID string
	)
	err := row.Scan(
		&gapID,
		&propertyID,
		&gap.GapType,
		&gap.Description,
		&gap.Severity,
		&gap.IsResolved,
		&gap.ResolutionDate,
		&gap.ResolutionNotes,
		&gap.EstimatedCostToResolve,
		&gap.ActualCostToResolve,
		&gap.IdentifiedAt,
		&gap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedGapID, err := id.ParseGapID(gapID)
	if err != nil {
		return nil, fmt.Errorf("stored gap id: %w", err)
	}
	parsedPropertyID, err := id.ParsePropertyID(propertyID)
	if err != nil {
		return nil, fmt.Errorf("stored property id: %w", err)
	}
	gap.ID = parsedGapID
	gap.PropertyID = parsedPropertyID
	return &gap, nil
}
