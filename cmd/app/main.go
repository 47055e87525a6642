package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/towercard/backend/internal/api/http"
	"github.com/towercard/backend/internal/cache"
	"github.com/towercard/backend/internal/config"
	"github.com/towercard/backend/internal/queue/asynqserver"
	queueClient "github.com/towercard/backend/internal/queue/client"
	"github.com/towercard/backend/internal/server"
	"github.com/towercard/backend/internal/service"
	"github.com/towercard/backend/internal/service/codesender"
	"github.com/towercard/backend/internal/worker"
	emailProvider "github.com/towercard/backend/pkg/email"
	"github.com/towercard/backend/pkg/email/resend"
	"github.com/towercard/backend/pkg/email/smtp"
	"github.com/towercard/backend/pkg/logger"
	"github.com/towercard/backend/pkg/otp"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting tower card api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init redis
	var cooldown service.Cooldown
	if cache.Enabled(cfg.Cache) {
		redisClient, err := cache.NewRedis(cfg.Cache)
		if err != nil {
			logger.Fatal("redis connect problem", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("error when closing redis", zap.Error(err))
			}
		}()
		cooldown = cache.NewCooldown(redisClient)
		logger.Info("redis connection done")
	}

	emailSender, err := newEmailSender(cfg)
	if err != nil {
		logger.Fatal("email sender creation failed", zap.Error(err))
	}

	if cfg.Queue.Enabled {
		asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
		defer asynqClient.Close()
		restore := queueClient.SetClient(asynqClient)
		defer restore()
	}

	// Services, Workers & API Handlers
	services := service.NewServices(service.Deps{
		Context:      ctx,
		Config:       cfg,
		Sender:       codesender.NewClient(cfg.Dispatch.Endpoint, cfg.Dispatch.Timeout),
		OtpGenerator: otp.NewGOTPGenerator(),
		EmailSender:  emailSender,
		Cooldown:     cooldown,
	})
	go services.Flows.RunJanitor(ctx, cfg.Flow.SweepEvery)

	var queueServer *asynq.Server
	if cfg.Queue.Enabled {
		workers := worker.NewWorkers(worker.Deps{Services: services})
		srv, mux := asynqserver.New(cfg, workers)
		if err := srv.Start(mux); err != nil {
			logger.Fatal("queue server start failed", zap.Error(err))
		}
		queueServer = srv
		logger.Info("queue server started")
	}

	handlers := apiHttp.NewHandlers(services, cfg)

	// HTTP Server
	srv := server.NewServer(cfg.HttpServer, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", srv.Addr()))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	shutdownCtx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	// in-flight dispatches call back into this server, so they end after it
	cancel()
	services.Flows.Wait()

	if queueServer != nil {
		queueServer.Shutdown()
	}

	logger.Info("app stopped")
}

func newEmailSender(cfg *config.Config) (emailProvider.Sender, error) {
	if !cfg.Email.Enabled {
		return nil, nil
	}

	switch cfg.Email.Provider {
	case "smtp":
		return smtp.NewSMTPSender(cfg.Email.From, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	case "resend":
		return resend.NewSender(cfg.Resend.APIKey, cfg.Email.From)
	default:
		return nil, errors.New("unknown email provider " + cfg.Email.Provider)
	}
}
