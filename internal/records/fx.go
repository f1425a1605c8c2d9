package records

import (
	"github.com/fizzbo19/dealercommand/internal/records/repository"
	"github.com/fizzbo19/dealercommand/internal/records/service"
	"go.uber.org/fx"
)

var Module = fx.Module("records.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
