package cron

import (
	"context"
	"time"

	"citaflow/config"
	notificationRepo "citaflow/database/repository/notification"
	"citaflow/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeNotificationCleanup = "notifications:cleanup"

// InitCleanupWorker runs the async worker and its schedule in background.
// Read notifications older than the configured retention get purged nightly.
func InitCleanupWorker(repo notificationRepo.NotificationRepository) {
	logger := utils.GetLogger()
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCronDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotificationCleanup, handleCleanupTask(repo))

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Error("cleanup worker stopped", zap.Error(err))
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: config.AgendaLocation()})
	if _, err := scheduler.Register("0 3 * * *", asynq.NewTask(TypeNotificationCleanup, nil)); err != nil {
		logger.Error("registering cleanup schedule failed", zap.Error(err))
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("cleanup scheduler stopped", zap.Error(err))
		}
	}()
}

func handleCleanupTask(repo notificationRepo.NotificationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		retention := config.AppConfig.NotificationRetentionDays
		if retention <= 0 {
			retention = 90
		}
		cutoff := time.Now().AddDate(0, 0, -retention)

		deleted, err := repo.DeleteReadBefore(ctx, cutoff)
		if err != nil {
			utils.GetLogger().Error("notification cleanup failed", zap.Error(err))
			return err
		}
		utils.GetLogger().Info("notification cleanup done",
			zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
		return nil
	}
}
