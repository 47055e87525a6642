package service

import (
	"context"
	"time"

	"github.com/towercard/backend/internal/config"
	"github.com/towercard/backend/internal/domain"
	"github.com/towercard/backend/internal/flow"
	emailProvider "github.com/towercard/backend/pkg/email"
	"github.com/towercard/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Flows  Flows
	Codes  Codes
	Emails *EmailService
}

type Deps struct {
	// Context bounds the dispatches started by flows.
	Context      context.Context
	Config       *config.Config
	Sender       flow.NotificationSender
	OtpGenerator otp.Generator
	EmailSender  emailProvider.Sender
	Cooldown     Cooldown
}

func NewServices(deps Deps) *Services {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}

	emails := newEmailsService(deps.EmailSender, deps.Config.Email, deps.Config.Codes)

	return &Services{
		Flows:  newFlowService(ctx, deps.Sender, deps.Config.Flow, deps.Config.Card),
		Codes:  newCodeService(deps.OtpGenerator, deps.Cooldown, emails, deps.Config.Codes, deps.Config.Queue),
		Emails: emails,
	}
}

type Flows interface {
	Create(ctx context.Context) (uuid.UUID, flow.Snapshot, error)
	Get(ctx context.Context, id uuid.UUID) (flow.Snapshot, error)
	SubmitIdentity(ctx context.Context, id uuid.UUID, email string) (flow.Snapshot, error)
	SubmitCode(ctx context.Context, id uuid.UUID, code flow.Code) (flow.Snapshot, error)
	Reset(ctx context.Context, id uuid.UUID) (flow.Snapshot, error)
	Card(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	Subscribe(ctx context.Context, id uuid.UUID) (<-chan flow.Snapshot, func(), error)
	Delete(ctx context.Context, id uuid.UUID) error
	Sweep(now time.Time) int
	RunJanitor(ctx context.Context, interval time.Duration)
	Wait()
}

type Codes interface {
	Send(ctx context.Context, email string) error
}
