// Command cmd runs only the notification worker, for deployments that start
// the API with OUTBOX_WORKER=false.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"isml_backend/internal/config"
	"isml_backend/internal/logger"
	"isml_backend/internal/notify"
	"isml_backend/internal/storage"
	"isml_backend/internal/tasks"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}
	if err := logger.Init(cfg.Debug); err != nil {
		log.Fatal("logger: ", err)
	}
	defer logger.Sync()

	rdb, err := storage.InitRedis(cfg)
	if err != nil {
		logger.L().Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := notify.NewRedisQueue(rdb)
	if n, err := queue.Restore(ctx); err != nil {
		logger.Error("outbox restore failed", err)
	} else if n > 0 {
		logger.Info("outbox messages restored", zap.Int("count", n))
	}

	worker := notify.NewWorker(queue, notify.NewSMTPSender(cfg), cfg.OutboxBatch, cfg.OutboxMaxAttempts)
	scheduler, err := tasks.InitScheduler(ctx, tasks.Schedule{Outbox: cfg.OutboxSchedule}, worker, nil)
	if err != nil {
		logger.L().Fatal("scheduler setup failed", zap.Error(err))
	}

	<-ctx.Done()
	<-scheduler.Stop().Done()
	logger.Info("notification worker stopped")
}
