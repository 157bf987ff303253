// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/volunteerhub/internal/app/store/authsessions"
	"github.com/dalemusser/volunteerhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// sessionSweep runs for the life of the process; Shutdown stops it.
var sessionSweep *workers.SessionSweep

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// VolunteerHub sweeps expired refresh sessions once here, then keeps a
// background sweep running so deployments without a TTL monitor do not
// accumulate dead records.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	sessions := authsessions.New(deps.VolunteerHubMongoDatabase)

	n, err := sessions.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("purged expired auth sessions", zap.Int64("count", n))
	}

	if appCfg.SessionSweepInterval > 0 {
		sessionSweep = workers.NewSessionSweep(sessions, logger, appCfg.SessionSweepInterval)
		sessionSweep.Start()
	}
	return nil
}
