package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/primecut/storefront/internal/backup"
)

// initJobs registers scheduled tasks. Only the orders backup exists
// today; it is skipped entirely when the backup drop is not configured.
func (a *Application) initJobs() {
	cfg := a.appConfig.Backup
	if !cfg.Enabled {
		return
	}
	runner := backup.NewRunner(a.gormDB, cfg)
	_, err := a.sched.AddFunc(cfg.Cron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := runner.Run(ctx); err != nil {
			zap.L().Error("scheduled orders backup failed", zap.Error(err))
		}
	})
	if err != nil {
		zap.L().Error("failed to register backup job", zap.Error(err))
		return
	}
	zap.L().Info("orders backup scheduled", zap.String("cron", cfg.Cron))
}

// RunBackupNow triggers a backup outside the schedule (admin API).
func (a *Application) RunBackupNow(ctx context.Context) error {
	return backup.NewRunner(a.gormDB, a.appConfig.Backup).Run(ctx)
}
