package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ledgerdesk/internal/clock"
	"github.com/smallbiznis/ledgerdesk/internal/config"
	"github.com/smallbiznis/ledgerdesk/internal/migration"
	"github.com/smallbiznis/ledgerdesk/internal/observability"
	"github.com/smallbiznis/ledgerdesk/internal/scheduler"
	"github.com/smallbiznis/ledgerdesk/internal/server"
	"github.com/smallbiznis/ledgerdesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface; pulls in the store and the reconciliation services.
		server.Module,

		// Background refresh loop keeping the snapshot warm.
		scheduler.Module,
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
