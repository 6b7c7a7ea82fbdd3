package termtable

import (
	"context"

	"github.com/bitfunnel-go/termtable/pkg/health"
	"github.com/bitfunnel-go/termtable/pkg/postgres"
	pkgredis "github.com/bitfunnel-go/termtable/pkg/redis"
)

// RegisterHealthChecks registers component checks for Postgres, Redis, and
// the build trigger's freshness on checker.
func RegisterHealthChecks(checker *health.Checker, db *postgres.Client, cache *pkgredis.Client, trigger *Trigger) {
	if db != nil {
		checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
			if err := db.DB.PingContext(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}
	if cache != nil {
		checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
			if err := cache.Ping(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}
	checker.Register("termtable", func(ctx context.Context) health.ComponentHealth {
		if trigger.Latest() == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "no build has completed yet"}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
}
