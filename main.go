package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "isml_backend/docs"
	"isml_backend/internal/auth"
	"isml_backend/internal/config"
	"isml_backend/internal/handlers"
	"isml_backend/internal/logger"
	"isml_backend/internal/notify"
	"isml_backend/internal/registry"
	"isml_backend/internal/storage"
	"isml_backend/internal/tasks"
	"isml_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Title						ISML back office API
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}
	if err := logger.Init(cfg.Debug); err != nil {
		log.Fatal("logger: ", err)
	}
	defer logger.Sync()
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.ConnectDatabase(cfg)
	if err != nil {
		logger.L().Fatal("database connection failed", zap.Error(err))
	}
	if err := storage.Migrate(db); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
	rdb, err := storage.InitRedis(cfg)
	if err != nil {
		logger.L().Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	if err := handlers.RegisterValidators(); err != nil {
		logger.L().Fatal("validator registration failed", zap.Error(err))
	}
	if !cfg.JWTVerify {
		logger.Warn("JWT_VERIFY=false: tokens are decoded without signature checks")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := notify.NewRedisQueue(rdb)
	batchRepo := storage.NewBatchRepository(db)
	batches := registry.NewBatches(batchRepo)
	students := registry.NewStudents(storage.NewStudentRepository(db), notify.NewOutbox(queue))

	var drainer tasks.Drainer
	if cfg.OutboxWorker {
		restoreOutbox(ctx, queue)
		drainer = notify.NewWorker(queue, notify.NewSMTPSender(cfg), cfg.OutboxBatch, cfg.OutboxMaxAttempts)
	}
	scheduler, err := tasks.InitScheduler(ctx, tasks.Schedule{
		Outbox:    cfg.OutboxSchedule,
		Reconcile: cfg.ReconcileSchedule,
	}, drainer, batches)
	if err != nil {
		logger.L().Fatal("scheduler setup failed", zap.Error(err))
	}
	defer scheduler.Stop()

	hub := ws.NewHub()
	go hub.Run(ctx)

	h := &handlers.Handler{
		DB:       db,
		Batches:  batches,
		Catalog:  batchRepo,
		Students: students,
		Cache:    rdb,
		CacheTTL: cfg.CourseCacheTTL,
		Hub:      hub,
	}
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.NewRouter(h, auth.NewDecoder(cfg.SecretKey, cfg.JWTVerify)),
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", err)
	}
}

// restoreOutbox requeues messages a previous worker popped but never finished.
func restoreOutbox(ctx context.Context, queue *notify.RedisQueue) {
	n, err := queue.Restore(ctx)
	if err != nil {
		logger.Error("outbox restore failed", err)
		return
	}
	if n > 0 {
		logger.Info("outbox messages restored", zap.Int("count", n))
	}
}
