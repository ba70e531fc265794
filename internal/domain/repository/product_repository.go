package repository

import (
	"context"

	"github.com/jlaglobal/pangea-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
