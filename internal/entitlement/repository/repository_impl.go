package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fizzbo19/dealercommand/internal/entitlement/domain"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
	"go.uber.org/zap"
)

// TableName is the spreadsheet tab holding activity records.
const TableName = "Dealership_Activity"

const (
	colEmail      = "Email"
	colStartDate  = "Start_Date"
	colExpiryDate = "Expiry_Date"
	colStatus     = "Status"
	colUsageCount = "Usage_Count"
	colPlan       = "Plan"
)

// dateLayouts are tried in order when loading stored dates. Older rows were
// written by tooling that used bare dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type sheetRepository struct {
	store sheetstore.Store
	log   *zap.Logger
}

func Provide(store sheetstore.Store, log *zap.Logger) domain.Repository {
	return &sheetRepository{
		store: store,
		log:   log.Named("entitlement.repository"),
	}
}

// FindByEmail implements domain.Repository.
func (r *sheetRepository) FindByEmail(ctx context.Context, email string, fallbackStart, fallbackExpiry time.Time) (*domain.DealershipActivity, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, row := range r.store.GetTable(ctx, TableName) {
		if strings.ToLower(strings.TrimSpace(row[colEmail])) != normalized {
			continue
		}

		status, err := domain.ParseTrialStatus(row[colStatus])
		if err != nil {
			return nil, err
		}

		// A blank plan cell means the row predates the plan column; the
		// service substitutes its default. Anything else must parse.
		var plan domain.Plan
		if raw := strings.TrimSpace(row[colPlan]); raw != "" {
			plan, err = domain.ParsePlan(raw)
			if err != nil {
				return nil, err
			}
		}

		return &domain.DealershipActivity{
			Email:      normalized,
			StartDate:  r.parseDate(row[colStartDate], fallbackStart, normalized),
			ExpiryDate: r.parseDate(row[colExpiryDate], fallbackExpiry, normalized),
			Status:     status,
			UsageCount: parseCount(row[colUsageCount]),
			Plan:       plan,
		}, nil
	}
	return nil, nil
}

// Save implements domain.Repository.
func (r *sheetRepository) Save(ctx context.Context, activity domain.DealershipActivity) bool {
	ok := r.store.Upsert(ctx, TableName, colEmail, sheetstore.Row{
		colEmail:      strings.ToLower(strings.TrimSpace(activity.Email)),
		colStartDate:  activity.StartDate.UTC().Format(time.RFC3339),
		colExpiryDate: activity.ExpiryDate.UTC().Format(time.RFC3339),
		colStatus:     string(activity.Status),
		colUsageCount: strconv.Itoa(activity.UsageCount),
		colPlan:       string(activity.Plan),
	})
	if !ok {
		r.log.Warn("activity write lost", zap.String("email", activity.Email))
	}
	return ok
}

func (r *sheetRepository) parseDate(raw string, fallback time.Time, email string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	r.log.Warn("unparseable stored date, using fallback",
		zap.String("email", email),
		zap.String("value", raw),
	)
	return fallback
}

func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
