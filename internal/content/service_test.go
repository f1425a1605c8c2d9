package content

import (
	"context"
	"errors"
	"testing"

	inventorydomain "github.com/fizzbo19/dealercommand/internal/inventory/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubProvider struct {
	failModels map[string]error
	requests   []ChatRequest
}

func (p *stubProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	_ = ctx
	p.requests = append(p.requests, req)
	if err, ok := p.failModels[req.Model]; ok {
		return nil, err
	}
	return &ChatResponse{Content: "generated copy", Model: req.Model}, nil
}

func newTestContentService(t *testing.T, provider Provider) *Service {
	return &Service{
		log:           zaptest.NewLogger(t).Named("content.service"),
		provider:      provider,
		primaryModel:  "gpt-4o",
		fallbackModel: "gpt-4o-mini",
	}
}

func testVehicle() inventorydomain.InventoryItem {
	return inventorydomain.InventoryItem{
		Make:    "Toyota",
		Model:   "Camry",
		Year:    2021,
		Price:   21500,
		Mileage: 40000,
	}
}

func TestListingDescriptionUsesPrimaryModel(t *testing.T) {
	provider := &stubProvider{}
	svc := newTestContentService(t, provider)

	text, err := svc.ListingDescription(context.Background(), testVehicle())
	require.NoError(t, err)
	assert.Equal(t, "generated copy", text)

	require.Len(t, provider.requests, 1)
	assert.Equal(t, "gpt-4o", provider.requests[0].Model)
	assert.Contains(t, provider.requests[0].Prompt, "Toyota")
}

func TestGenerateFallsBackOnPrimaryFailure(t *testing.T) {
	provider := &stubProvider{
		failModels: map[string]error{"gpt-4o": errors.New("rate_limited")},
	}
	svc := newTestContentService(t, provider)

	text, err := svc.SocialCaption(context.Background(), testVehicle(), "instagram")
	require.NoError(t, err)
	assert.Equal(t, "generated copy", text)

	require.Len(t, provider.requests, 2)
	assert.Equal(t, "gpt-4o-mini", provider.requests[1].Model)
}

func TestGenerateRequiresVehicle(t *testing.T) {
	svc := newTestContentService(t, &stubProvider{})

	_, err := svc.ListingDescription(context.Background(), inventorydomain.InventoryItem{})
	assert.ErrorIs(t, err, ErrEmptyVehicle)
}

func TestMissingKeyIsNotRetried(t *testing.T) {
	provider := &stubProvider{
		failModels: map[string]error{"gpt-4o": ErrNotConfigured},
	}
	svc := newTestContentService(t, provider)

	_, err := svc.VideoScript(context.Background(), testVehicle(), "walkaround")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Len(t, provider.requests, 1)
}
