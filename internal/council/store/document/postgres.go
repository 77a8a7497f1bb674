package document

import (
	"context"
	"database/sql"
	"fmt"

	"propertyguard/internal/council/models"
	id "propertyguard/pkg/domain"
	txcontext "propertyguard/pkg/platform/tx"
)

// PostgresStore persists council documents in PostgreSQL. Statements run
// through the context transaction when one is present, so an import commits
// its documents atomically with the property stamp.
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

const documentColumns = `
	id, property_id, document_type, document_name, description,
	municipality, reference_number, approval_date,
	file_path, file_size, file_type,
	import_method, import_date, verified,
	is_active, created_at, updated_at
`

func (s *PostgresStore) CreateBatch(ctx context.Context, documents []*models.CouncilDocument) error {
	if len(documents) == 0 {
		return nil
	}

	query := `
		INSERT INTO council_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	for _, document := range documents {
		_, err := s.q(ctx).ExecContext(ctx, query,
			document.ID.String(),
			document.PropertyID.String(),
			document.DocumentType,
			document.DocumentName,
			document.Description,
			document.Municipality,
			document.ReferenceNumber,
			document.ApprovalDate,
			document.FilePath,
			document.FileSize,
			document.FileType,
			document.ImportMethod,
			document.ImportDate,
			document.Verified,
			document.IsActive,
			document.CreatedAt,
			document.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert council document: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]*models.CouncilDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM council_documents
		WHERE property_id = $1
		ORDER BY created_at, id
	`

	rows, err := s.q(ctx).QueryContext(ctx, query, propertyID.String())
	if err != nil {
		return nil, fmt.Errorf("list council documents: %w", err)
	}
	defer rows.Close()

	var documents []*models.CouncilDocument
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan council document: %w", err)
		}
		documents = append(documents, document)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate council documents: %w", err)
	}
	return documents, nil
}

func scanDocument(rows *sql.Rows) (*models.CouncilDocument, error) {
	var (
		document   models.CouncilDocument
		documentID string
		propertyID string
	)
	err := rows.Scan(
		&documentID,
		&propertyID,
		&document.DocumentType,
		&document.DocumentName,
		&document.Description,
		&document.Municipality,
		&document.ReferenceNumber,
		&document.ApprovalDate,
		&document.FilePath,
		&document.FileSize,
		&document.FileType,
		&document.ImportMethod,
		&document.ImportDate,
		&document.Verified,
		&document.IsActive,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedDocumentID, err := id.ParseDocumentID(documentID)
	if err != nil {
		return nil, fmt.Errorf("stored document id: %w", err)
	}
	parsedPropertyID, err := id.ParsePropertyID(propertyID)
	if err != nil {
		return nil, fmt.Errorf("stored property id: %w", err)
	}
	document.ID = parsedDocumentID
	document.PropertyID = parsedPropertyID
	return &document, nil
}
