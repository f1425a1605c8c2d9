package lock

import (
	"github.com/fizzbo19/dealercommand/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func provideRedis(cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	log.Info("redis lock enabled", zap.String("addr", cfg.RedisAddr))
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// Module wires both lock flavors; consumers pick the redis locker when it is
// configured and fall back to the keyed mutex otherwise.
var Module = fx.Module("lock",
	fx.Provide(provideRedis),
	fx.Provide(NewLocker),
	fx.Provide(NewKeyedMutex),
)
