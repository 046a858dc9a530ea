package user

import (
	"context"
	"errors"
	"strings"

	"github.com/logisoltech/hitek-store/internal/domain"
	userrepo "github.com/logisoltech/hitek-store/internal/repository/user"
)

// ErrNoFields is returned when a profile update carries nothing to change.
var ErrNoFields = errors.New("no fields to update")

// Service is a thin layer over the user repository: profile reads and writes
// carry no business rules beyond field trimming.
type Service struct {
	repo userrepo.Repository
}

func New(repo userrepo.Repository) *Service {
	return &Service{repo: repo}
}

type ProfileInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ShippingInput struct {
	Phone           string `json:"phone"`
	ShipmentAddress string `json:"shipment_address"`
	Province        string `json:"province"`
	City            string `json:"city"`
	Address         string `json:"address"`
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*domain.User, error) {
	upd := userrepo.ProfileUpdate{
		Email:     strings.TrimSpace(in.Email),
		Username:  strings.TrimSpace(in.Username),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	if upd == (userrepo.ProfileUpdate{}) {
		return nil, ErrNoFields
	}
	return s.repo.UpdateProfile(ctx, id, upd)
}

func (s *Service) UpdateShipping(ctx context.Context, id string, in ShippingInput) (*domain.User, error) {
	return s.repo.UpdateShipping(ctx, id, domain.ShippingInfo{
		Phone:           strings.TrimSpace(in.Phone),
		ShipmentAddress: strings.TrimSpace(in.ShipmentAddress),
		Province:        strings.TrimSpace(in.Province),
		City:            strings.TrimSpace(in.City),
		Address:         strings.TrimSpace(in.Address),
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
