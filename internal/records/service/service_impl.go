package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fizzbo19/dealercommand/internal/clock"
	"github.com/fizzbo19/dealercommand/internal/records/domain"
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
		log:   p.Log.Named("records.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Save implements domain.Service.
func (s *Service) Save(ctx context.Context, email string, recordType domain.RecordType, payload map[string]string) (domain.Record, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Record{}, false, domain.ErrInvalidEmail
	}
	if _, err := domain.ParseRecordType(string(recordType)); err != nil {
		return domain.Record{}, false, err
	}
	if len(payload) == 0 {
		return domain.Record{}, false, domain.ErrEmptyPayload
	}

	record := domain.Record{
		ID:        s.genID.Generate().String(),
		Email:     email,
		Type:      recordType,
		Payload:   payload,
		CreatedAt: s.clock.Now(),
	}
	ok := s.repo.Save(ctx, record)
	return record, ok, nil
}

// List implements domain.Service.
func (s *Service) List(ctx context.Context, email string, recordType domain.RecordType) ([]domain.Record, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if _, err := domain.ParseRecordType(string(recordType)); err != nil {
		return nil, err
	}
	return s.repo.ListByEmail(ctx, email, recordType), nil
}
