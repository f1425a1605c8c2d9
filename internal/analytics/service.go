// Package analytics aggregates inventory and social-media rows into
// dashboard summaries.
package analytics

import (
	"context"
	"sort"
	"strconv"
	"strings"

	inventorydomain "github.com/fizzbo19/dealercommand/internal/inventory/domain"
	recordsdomain "github.com/fizzbo19/dealercommand/internal/records/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const topN = 5

type Params struct {
	fx.In

	Log       *zap.Logger
	Inventory inventorydomain.Repository
	Records   recordsdomain.Repository
}

type Service struct {
	log       *zap.Logger
	inventory inventorydomain.Repository
	records   recordsdomain.Repository
}

func NewService(p Params) *Service {
	return &Service{
		log:       p.Log.Named("analytics"),
		inventory: p.Inventory,
		records:   p.Records,
	}
}

// ModelCount is one entry of the top-models ranking.
type ModelCount struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

// PlatformStat aggregates social posts per platform.
type PlatformStat struct {
	Platform        string  `json:"platform"`
	Posts           int     `json:"posts"`
	TotalEngagement int     `json:"total_engagement"`
	AvgEngagement   float64 `json:"avg_engagement"`
}

// DashboardSummary is the aggregate view rendered on the performance page.
type DashboardSummary struct {
	Email          string         `json:"email"`
	TotalListings  int            `json:"total_listings"`
	AveragePrice   float64        `json:"average_price"`
	AverageMileage float64        `json:"average_mileage"`
	StatusCounts   map[string]int `json:"status_counts"`
	TopModels      []ModelCount   `json:"top_models"`
	SocialPosts    int            `json:"social_posts"`
	Platforms      []PlatformStat `json:"platforms"`
}

// DealerDashboard aggregates everything stored for the email. Unreachable
// tables come back as empty slices from the store, so the summary degrades
// to zeros rather than failing.
func (s *Service) DealerDashboard(ctx context.Context, email string) DashboardSummary {
	email = strings.ToLower(strings.TrimSpace(email))
	summary := DashboardSummary{
		Email:        email,
		StatusCounts: map[string]int{},
	}

	items := s.inventory.ListByEmail(ctx, email)
	summary.TotalListings = len(items)

	var priceSum, mileageSum float64
	modelCounts := map[string]int{}
	for _, item := range items {
		priceSum += item.Price
		mileageSum += float64(item.Mileage)
		if status := strings.ToLower(strings.TrimSpace(item.Status)); status != "" {
			summary.StatusCounts[status]++
		}
		if model := strings.TrimSpace(item.Model); model != "" {
			modelCounts[model]++
		}
	}
	if len(items) > 0 {
		summary.AveragePrice = priceSum / float64(len(items))
		summary.AverageMileage = mileageSum / float64(len(items))
	}
	summary.TopModels = rankModels(modelCounts)

	posts := s.records.ListByEmail(ctx, email, recordsdomain.RecordTypeSocialMedia)
	summary.SocialPosts = len(posts)
	summary.Platforms = rankPlatforms(posts)

	return summary
}

func rankModels(counts map[string]int) []ModelCount {
	ranked := make([]ModelCount, 0, len(counts))
	for model, count := range counts {
		ranked = append(ranked, ModelCount{Model: model, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Model < ranked[j].Model
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func rankPlatforms(posts []recordsdomain.Record) []PlatformStat {
	byPlatform := map[string]*PlatformStat{}
	for _, post := range posts {
		platform := strings.ToLower(strings.TrimSpace(post.Payload["platform"]))
		if platform == "" {
			platform = "unknown"
		}
		stat, ok := byPlatform[platform]
		if !ok {
			stat = &PlatformStat{Platform: platform}
			byPlatform[platform] = stat
		}
		stat.Posts++
		if engagement, err := strconv.Atoi(strings.TrimSpace(post.Payload["engagement"])); err == nil {
			stat.TotalEngagement += engagement
		}
	}

	ranked := make([]PlatformStat, 0, len(byPlatform))
	for _, stat := range byPlatform {
		if stat.Posts > 0 {
			stat.AvgEngagement = float64(stat.TotalEngagement) / float64(stat.Posts)
		}
		ranked = append(ranked, *stat)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalEngagement != ranked[j].TotalEngagement {
			return ranked[i].TotalEngagement > ranked[j].TotalEngagement
		}
		return ranked[i].Platform < ranked[j].Platform
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Module wires the analytics service.
var Module = fx.Module("analytics",
	fx.Provide(NewService),
)
