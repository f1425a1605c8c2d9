package service

import (
	"context"
	"strings"

	"github.com/fizzbo19/dealercommand/internal/profile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

type ServiceParam struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:  p.Log.Named("profile.service"),
		repo: p.Repo,
	}
}

// Get implements domain.Service.
func (s *Service) Get(ctx context.Context, email string) (*domain.DealershipProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	return s.repo.FindByEmail(ctx, email), nil
}

// Save implements domain.Service.
func (s *Service) Save(ctx context.Context, profile domain.DealershipProfile) (bool, error) {
	profile.Email = strings.TrimSpace(profile.Email)
	if profile.Email == "" {
		return false, domain.ErrInvalidEmail
	}
	return s.repo.Save(ctx, profile), nil
}
