package content

import (
	"context"
	"errors"
	"strings"

	"github.com/fizzbo19/dealercommand/internal/config"
	inventorydomain "github.com/fizzbo19/dealercommand/internal/inventory/domain"
	"github.com/fizzbo19/dealercommand/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service generates dealership copy, falling back to a cheaper model when
// the primary call fails.
type Service struct {
	log           *zap.Logger
	provider      Provider
	primaryModel  string
	fallbackModel string
	metrics       *metrics.Metrics
}

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Cfg      config.Config
	Provider Provider
	Metrics  *metrics.Metrics
}

func NewService(p ServiceParam) *Service {
	return &Service{
		log:           p.Log.Named("content.service"),
		provider:      p.Provider,
		primaryModel:  p.Cfg.OpenAIModel,
		fallbackModel: p.Cfg.OpenAIFallbackModel,
		metrics:       p.Metrics,
	}
}

// ListingDescription writes the long-form listing text for a vehicle.
func (s *Service) ListingDescription(ctx context.Context, item inventorydomain.InventoryItem) (string, error) {
	return s.generate(ctx, "listing", listingPrompt(item), item)
}

// SocialCaption writes a short caption for the given platform.
func (s *Service) SocialCaption(ctx context.Context, item inventorydomain.InventoryItem, platform string) (string, error) {
	return s.generate(ctx, "caption", captionPrompt(item, platform), item)
}

// VideoScript writes a short video script in the given style.
func (s *Service) VideoScript(ctx context.Context, item inventorydomain.InventoryItem, style string) (string, error) {
	return s.generate(ctx, "script", scriptPrompt(item, style), item)
}

func (s *Service) generate(ctx context.Context, kind, prompt string, item inventorydomain.InventoryItem) (string, error) {
	if strings.TrimSpace(item.Make) == "" && strings.TrimSpace(item.Model) == "" {
		return "", ErrEmptyVehicle
	}

	resp, err := s.provider.Chat(ctx, ChatRequest{
		Model:       s.primaryModel,
		System:      systemPrompt,
		Prompt:      prompt,
		MaxTokens:   600,
		Temperature: 0.7,
	})
	if err == nil {
		s.metrics.RecordContentGeneration(ctx, kind, resp.Model)
		return resp.Content, nil
	}
	if errors.Is(err, ErrNotConfigured) {
		return "", err
	}

	s.log.Warn("primary model failed, trying fallback",
		zap.String("kind", kind),
		zap.String("model", s.primaryModel),
		zap.Error(err),
	)

	resp, err = s.provider.Chat(ctx, ChatRequest{
		Model:       s.fallbackModel,
		System:      systemPrompt,
		Prompt:      prompt,
		MaxTokens:   600,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	s.metrics.RecordContentGeneration(ctx, kind, resp.Model)
	return resp.Content, nil
}

func provideProvider(cfg config.Config) Provider {
	return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
}

// Module wires the content generation service.
var Module = fx.Module("content",
	fx.Provide(provideProvider),
	fx.Provide(NewService),
)
