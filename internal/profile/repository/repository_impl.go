package repository

import (
	"context"
	"strings"

	"github.com/fizzbo19/dealercommand/internal/profile/domain"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
	"go.uber.org/zap"
)

// TableName is the spreadsheet tab holding dealership profiles.
const TableName = "Dealership_Profile"

const (
	colEmail       = "Email"
	colName        = "Name"
	colPhone       = "Phone"
	colLocation    = "Location"
	colPlan        = "Plan"
	colTrialStatus = "Trial_Status"
)

type sheetRepository struct {
	store sheetstore.Store
	log   *zap.Logger
}

func Provide(store sheetstore.Store, log *zap.Logger) domain.Repository {
	return &sheetRepository{
		store: store,
		log:   log.Named("profile.repository"),
	}
}

func (r *sheetRepository) FindByEmail(ctx context.Context, email string) *domain.DealershipProfile {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, row := range r.store.GetTable(ctx, TableName) {
		if strings.ToLower(strings.TrimSpace(row[colEmail])) == normalized {
			profile := fromRow(row)
			return &profile
		}
	}
	return nil
}

func (r *sheetRepository) List(ctx context.Context) []domain.DealershipProfile {
	rows := r.store.GetTable(ctx, TableName)
	profiles := make([]domain.DealershipProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, fromRow(row))
	}
	return profiles
}

func (r *sheetRepository) Save(ctx context.Context, profile domain.DealershipProfile) bool {
	ok := r.store.Upsert(ctx, TableName, colEmail, toRow(profile))
	if !ok {
		r.log.Warn("profile write lost", zap.String("email", profile.Email))
	}
	return ok
}

func fromRow(row sheetstore.Row) domain.DealershipProfile {
	return domain.DealershipProfile{
		Email:       strings.TrimSpace(row[colEmail]),
		Name:        row[colName],
		Phone:       row[colPhone],
		Location:    row[colLocation],
		Plan:        row[colPlan],
		TrialStatus: row[colTrialStatus],
	}
}

func toRow(profile domain.DealershipProfile) sheetstore.Row {
	return sheetstore.Row{
		colEmail:       strings.TrimSpace(profile.Email),
		colName:        profile.Name,
		colPhone:       profile.Phone,
		colLocation:    profile.Location,
		colPlan:        profile.Plan,
		colTrialStatus: profile.TrialStatus,
	}
}
