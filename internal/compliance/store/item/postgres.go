package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"propertyguard/internal/compliance/models"
	id "propertyguard/pkg/domain"
	"propertyguard/pkg/platform/sentinel"
	txcontext "propertyguard/pkg/platform/tx"
)

// PostgresStore persists compliance items in PostgreSQL. All statements run
// through the context transaction when one is present, so property creation
// commits its seeded items atomically with the property row.
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

const itemColumns = `
	id, property_id, name, description, category,
	is_individual_responsibility, responsible_party, is_required, is_compliant,
	due_date, last_inspection_date, next_inspection_date,
	certificate_number, issuing_authority, document_path,
	created_at, updated_at
`

func (s *PostgresStore) CreateBatch(ctx context.Context, items []*models.ComplianceItem) error {
	if len(items) == 0 {
		return nil
	}

	// Batch insert using unnest for one round trip instead of one per row.
	n := len(items)
	var (
		ids             = make([]string, n)
		propertyIDs     = make([]string, n)
		names           = make([]string, n)
		descriptions    = make([]string, n)
		categories      = make([]string, n)
		individual      = make([]bool, n)
		parties         = make([]string, n)
		required        = make([]bool, n)
		compliant       = make([]bool, n)
		dueDates        = make([]*time.Time, n)
		lastInspections = make([]*time.Time, n)
		nextInspections = make([]*time.Time, n)
		certificates    = make([]string, n)
		authorities     = make([]string, n)
		documentPaths   = make([]string, n)
		createdAts      = make([]time.Time, n)
		updatedAts      = make([]time.Time, n)
	)
	for i, item := range items {
		ids[i] = item.ID.String()
		propertyIDs[i] = item.PropertyID.String()
		names[i] = item.Name
		descriptions[i] = item.Description
		categories[i] = item.Category
		individual[i] = item.IsIndividualResponsibility
		parties[i] = item.ResponsibleParty
		required[i] = item.IsRequired
		compliant[i] = item.IsCompliant
		dueDates[i] = item.DueDate
		lastInspections[i] = item.LastInspectionDate
		nextInspections[i] = item.NextInspectionDate
		certificates[i] = item.CertificateNumber
		authorities[i] = item.IssuingAuthority
		documentPaths[i] = item.DocumentPath
		createdAts[i] = item.CreatedAt
		updatedAts[i] = item.UpdatedAt
	}

	query := `
		INSERT INTO compliance_items (` + itemColumns + `)
		SELECT * FROM unnest(
			$1::uuid[], $2::uuid[], $3::text[], $4::text[], $5::text[],
			$6::boolean[], $7::text[], $8::boolean[], $9::boolean[],
			$10::timestamptz[], $11::timestamptz[], $12::timestamptz[],
			$13::text[], $14::text[], $15::text[],
			$16::timestamptz[], $17::timestamptz[]
		)
	`
	_, err := s.q(ctx).ExecContext(ctx, query,
		pq.Array(ids),
		pq.Array(propertyIDs),
		pq.Array(names),
		pq.Array(descriptions),
		pq.Array(categories),
		pq.Array(individual),
		pq.Array(parties),
		pq.Array(required),
		pq.Array(compliant),
		pq.Array(dueDates),
		pq.Array(lastInspections),
		pq.Array(nextInspections),
		pq.Array(certificates),
		pq.Array(authorities),
		pq.Array(documentPaths),
		pq.Array(createdAts),
		pq.Array(updatedAts),
	)
	if err != nil {
		return fmt.Errorf("insert compliance items: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, itemID id.ItemID) (*models.ComplianceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM compliance_items WHERE id = $1`

	item, err := scanItem(s.q(ctx).QueryRowContext(ctx, query, itemID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find compliance item: %w", err)
	}
	return item, nil
}

func (s *PostgresStore) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.ComplianceItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM compliance_items
		WHERE property_id = $1
		ORDER BY created_at, id
	`

	rows, err := s.q(ctx).QueryContext(ctx, query, propertyID.String())
	if err != nil {
		return nil, fmt.Errorf("list compliance items: %w", err)
	}
	defer rows.Close()

	var items []*models.ComplianceItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compliance item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compliance items: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) Update(ctx context.Context, item *models.ComplianceItem) error {
	query := `
		UPDATE compliance_items SET
			is_compliant = $2,
			certificate_number = $3,
			issuing_authority = $4,
			last_inspection_date = $5,
			next_inspection_date = $6,
			document_path = $7,
			due_date = $8,
			updated_at = $9
		WHERE id = $1
	`

	result, err := s.q(ctx).ExecContext(ctx, query,
		item.ID.String(),
		item.IsCompliant,
		item.CertificateNumber,
		item.IssuingAuthority,
		item.LastInspectionDate,
		item.NextInspectionDate,
		item.DocumentPath,
		item.DueDate,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update compliance item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update compliance item: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.ComplianceItem, error) {
	var (
		item       models.ComplianceItem
		itemID     string
		propertyID string
	)
	err := row.Scan(
		&itemID,
		&propertyID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.IsIndividualResponsibility,
		&item.ResponsibleParty,
		&item.IsRequired,
		&item.IsCompliant,
		&item.DueDate,
		&item.LastInspectionDate,
		&item.NextInspectionDate,
		&item.CertificateNumber,
		&item.IssuingAuthority,
		&item.DocumentPath,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedItemID, err := id.ParseItemID(itemID)
	if err != nil {
		return nil, fmt.Errorf("stored item id: %w", err)
	}
	parsedPropertyID, err := id.ParsePropertyID(propertyID)
	if err != nil {
		return nil, fmt.Errorf("stored property id: %w", err)
	}
	item.ID = parsedItemID
	item.PropertyID = parsedPropertyID
	return &item, nil
}
