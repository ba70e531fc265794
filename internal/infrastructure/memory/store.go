// Package memory implementa los repositorios en memoria. Lo usan las pruebas y
// el arranque sin base de datos (STORAGE=memory).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jlaglobal/pangea-api/internal/domain"
	"github.com/jlaglobal/pangea-api/internal/domain/entity"
	"github.com/jlaglobal/pangea-api/internal/domain/repository"
)

var (
	_ repository.DocumentRepository = (*DocumentStore)(nil)
	_ repository.ProductRepository  = (*ProductStore)(nil)
	_ repository.ClientRepository   = (*ClientStore)(nil)
)

// DocumentStore documentos en memoria, seguros para uso concurrente.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*entity.Document
	// Err, si no es nil, lo devuelven todas las operaciones.
	Err error
}

// NewDocumentStore crea el store con los documentos dados.
func NewDocumentStore(docs ...*entity.Document) *DocumentStore {
	s := &DocumentStore{docs: make(map[string]*entity.Document)}
	for _, d := range docs {
		s.Put(d)
	}
	return s
}

// Put inserta o reemplaza un documento.
func (s *DocumentStore) Put(d *entity.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	s.docs[d.ID] = &cp
}

// GetByID implementa repository.DocumentRepository.
func (s *DocumentStore) GetByID(_ context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	if !ok || d.Kind != kind {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

// ListByKind implementa repository.DocumentRepository (más recientes primero).
func (s *DocumentStore) ListByKind(_ context.Context, kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	list := s.filter(func(d *entity.Document) bool { return d.Kind == kind })
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return []*entity.Document{}, nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}

// ListByKindBetween implementa repository.DocumentRepository.
func (s *DocumentStore) ListByKindBetween(_ context.Context, kind entity.DocumentKind, from, to time.Time) ([]*entity.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	list := s.filter(func(d *entity.Document) bool {
		return d.Kind == kind && !d.CreatedAt.Before(from) && d.CreatedAt.Before(to)
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// UpdateStatus implementa repository.DocumentRepository.
func (s *DocumentStore) UpdateStatus(_ context.Context, id string, from, to entity.DocumentStatus) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if d.Status != from {
		return fmt.Errorf("%w: el documento %s ya no está %s", domain.ErrConflict, id, from)
	}
	d.Status = to
	d.UpdatedAt = time.Now()
	return nil
}

func (s *DocumentStore) filter(keep func(*entity.Document) bool) []*entity.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Document
	for _, d := range s.docs {
		if keep(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out
}

// ProductStore catálogo en memoria.
type ProductStore struct {
	Products []*entity.Product
	Err      error
}

// ListAll implementa repository.ProductRepository.
func (s *ProductStore) ListAll(context.Context) ([]*entity.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Products, nil
}

// ClientStore clientes en memoria por ID.
type ClientStore struct {
	Clients map[string]*entity.Client
	Err     error
}

// GetByID implementa repository.ClientRepository.
func (s *ClientStore) GetByID(_ context.Context, id string) (*entity.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Clients[id], nil
}
