package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/fizzbo19/dealercommand/internal/clock"
	"github.com/fizzbo19/dealercommand/internal/logger"
	"github.com/fizzbo19/dealercommand/internal/observability"
	"github.com/fizzbo19/dealercommand/internal/server"
)

func main() {
	app := fx.New(
		logger.Module,
		observability.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
