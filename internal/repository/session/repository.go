package session

import (
	"context"

	"github.com/logisoltech/hitek-store/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
