package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fizzbo19/dealercommand/internal/clock"
	"github.com/fizzbo19/dealercommand/internal/inventory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  domain.Repository
}

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("inventory.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// List implements domain.Service.
func (s *Service) List(ctx context.Context, email string) ([]domain.InventoryItem, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	return s.repo.ListByEmail(ctx, email), nil
}

// Upsert implements domain.Service.
func (s *Service) Upsert(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, bool, error) {
	item.Email = strings.ToLower(strings.TrimSpace(item.Email))
	if item.Email == "" {
		return domain.InventoryItem{}, false, domain.ErrInvalidEmail
	}
	if item.Make == "" && item.Model == "" {
		return domain.InventoryItem{}, false, domain.ErrInvalidItem
	}

	now := s.clock.Now()
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		item.ID = s.genID.Generate().String()
		item.CreatedAt = now
	} else if existing := s.repo.FindByID(ctx, item.ID); existing != nil {
		item.CreatedAt = existing.CreatedAt
	} else {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	ok := s.repo.Save(ctx, item)
	return item, ok, nil
}
