package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jlaglobal/pangea-api/internal/domain"
	"github.com/jlaglobal/pangea-api/internal/domain/entity"
	"github.com/jlaglobal/pangea-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, kind, status, COALESCE(client_id, ''), payload, created_at, updated_at`

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// GetByID obtiene un documento por tipo e ID.
func (r *DocumentRepo) GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE kind = $1 AND id = $2`
	d, err := scanDocument(r.q.QueryRow(ctx, query, string(kind), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// ListByKind lista documentos de un tipo, más recientes primero.
func (r *DocumentRepo) ListByKind(ctx context.Context, kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents WHERE kind = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return collectDocuments(rows)
}

// ListByKindBetween lista documentos de un tipo creados en [from, to).
func (r *DocumentRepo) ListByKindBetween(ctx context.Context, kind entity.DocumentKind, from, to time.Time) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents WHERE kind = $1 AND created_at >= $2 AND created_at < $3 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, string(kind), from, to)
	if err != nil {
		return nil, fmt.Errorf("list documents between: %w", err)
	}
	return collectDocuments(rows)
}

// UpdateStatus cambia el estado si el documento sigue en from.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id string, from, to entity.DocumentStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE documents SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check document: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: el documento %s ya no está %s", domain.ErrConflict, id, from)
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		d            entity.Document
		kind, status string
	)
	if err := row.Scan(&d.ID, &kind, &status, &d.ClientID, &d.Payload, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Kind = entity.DocumentKind(kind)
	d.Status = entity.DocumentStatus(status)
	return &d, nil
}

func collectDocuments(rows pgx.Rows) ([]*entity.Document, error) {
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
