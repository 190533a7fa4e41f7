package ledgerstore

import (
	"github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	"github.com/smallbiznis/ledgerdesk/internal/ledgerstore/gormstore"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("ledgerstore",
	fx.Provide(func(db *gorm.DB) domain.Store {
		return gormstore.New(db)
	}),
)
