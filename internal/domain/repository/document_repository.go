package repository

import (
	"context"
	"time"

	"github.com/jlaglobal/pangea-api/internal/domain/entity"
)

// DocumentRepository puerto de lectura de documentos comerciales y cambio de
// estado de pedidos.
type DocumentRepository interface {
	// GetByID devuelve nil, nil si no existe un documento de ese tipo con ese id.
	GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error)
	ListByKind(ctx context.Context, kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error)
	// ListByKindBetween documentos creados en [from, to).
	ListByKindBetween(ctx context.Context, kind entity.DocumentKind, from, to time.Time) ([]*entity.Document, error)
	// UpdateStatus cambia el estado solo si sigue siendo from. ErrNotFound si
	// el documento no existe; ErrConflict si otro cambio llegó antes.
	UpdateStatus(ctx context.Context, id string, from, to entity.DocumentStatus) error
}
