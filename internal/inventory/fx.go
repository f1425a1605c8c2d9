package inventory

import (
	"github.com/fizzbo19/dealercommand/internal/inventory/repository"
	"github.com/fizzbo19/dealercommand/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
