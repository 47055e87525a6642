package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/towercard/backend/internal/config"
	"github.com/towercard/backend/internal/queue/asynqserver"
	"github.com/towercard/backend/internal/service"
	"github.com/towercard/backend/internal/worker"
	emailProvider "github.com/towercard/backend/pkg/email"
	"github.com/towercard/backend/pkg/email/resend"
	"github.com/towercard/backend/pkg/email/smtp"
	"github.com/towercard/backend/pkg/logger"
	"github.com/towercard/backend/pkg/otp"
)

// Processes send code tasks when the api runs with QUEUE_ENABLED but
// delivery should happen on separate hosts.
func main() {
	cfg := config.MustLoad()

	logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	emailSender, err := newEmailSender(cfg)
	if err != nil {
		logger.Fatal("email sender creation failed", zap.Error(err))
	}

	services := service.NewServices(service.Deps{
		Config:       cfg,
		OtpGenerator: otp.NewGOTPGenerator(),
		EmailSender:  emailSender,
	})
	workers := worker.NewWorkers(worker.Deps{Services: services})

	srv, mux := asynqserver.New(cfg, workers)
	if err := srv.Start(mux); err != nil {
		logger.Fatal("queue server start failed", zap.Error(err))
	}
	logger.Info("worker started", zap.Int("concurrency", cfg.Queue.Concurrency))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	srv.Shutdown()
	logger.Info("worker stopped")
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
