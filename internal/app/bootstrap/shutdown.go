// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if sessionSweep != nil {
		sessionSweep.Stop()
		sessionSweep = nil
	}
	if loginLimiter != nil {
		loginLimiter.Stop()
		loginLimiter = nil
	}
	if deps.VolunteerHubMongoClient != nil {
		logger.Info("disconnecting VolunteerHub MongoDB client")
		if err := deps.VolunteerHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
