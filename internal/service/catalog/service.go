package catalog

import (
	"context"

	"github.com/logisoltech/hitek-store/internal/domain"
	productrepo "github.com/logisoltech/hitek-store/internal/repository/product"
)

// Service serves the printer and laptop catalog pages.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) Get(ctx context.Context, category, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, category, id)
}
