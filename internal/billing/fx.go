package billing

import (
	"github.com/fizzbo19/dealercommand/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(service.New),
)
