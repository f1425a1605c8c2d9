package sheetstore

import (
	"context"

	"github.com/fizzbo19/dealercommand/internal/config"
	"github.com/fizzbo19/dealercommand/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func provideStore(cfg config.Config, log *zap.Logger, m *metrics.Metrics) (Store, error) {
	if cfg.GoogleCredentialsFile == "" {
		log.Warn("no spreadsheet credentials configured, using in-memory store")
		return NewMemoryStore(), nil
	}

	spreadsheetID := cfg.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID = cfg.SpreadsheetName
	}

	return NewGoogleStore(context.Background(), cfg.GoogleCredentialsFile, spreadsheetID, log, m)
}

// Module wires the spreadsheet-backed store.
var Module = fx.Module("sheetstore",
	fx.Provide(provideStore),
)
