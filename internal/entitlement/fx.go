package entitlement

import (
	"github.com/fizzbo19/dealercommand/internal/entitlement/repository"
	"github.com/fizzbo19/dealercommand/internal/entitlement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("entitlement.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
