package product

import (
	"context"

	"github.com/logisoltech/hitek-store/internal/domain"
)

type Repository interface {
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetByID(ctx context.Context, category, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
