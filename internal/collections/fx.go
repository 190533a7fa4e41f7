package collections

import (
	"github.com/smallbiznis/ledgerdesk/internal/collections/service"
	"go.uber.org/fx"
)

var Module = fx.Module("collections.service",
	fx.Provide(service.NewService),
)
