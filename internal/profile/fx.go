package profile

import (
	"github.com/fizzbo19/dealercommand/internal/profile/repository"
	"github.com/fizzbo19/dealercommand/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
