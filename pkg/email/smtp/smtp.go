package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gomail/gomail"
	"github.com/towercard/backend/pkg/email"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	from   string
	dialer dialer
}

func NewSMTPSender(from, user, pass, host string, port int) (*SMTPSender, error) {
	if !validFrom(from) {
		return nil, errors.New("invalid from email")
	}
	if host == "" {
		return nil, errors.New("empty smtp host")
	}
	if user == "" {
		user = from
	}

	return &SMTPSender{from: from, dialer: gomail.NewDialer(host, port, user, pass)}, nil
}

func (s *SMTPSender) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", input.To)
	msg.SetHeader("Subject", input.Subject)
	msg.SetBody("text/html", input.Body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	return nil
}

func validFrom(from string) bool {
	probe := email.SendEmailInput{To: from, Subject: "-", Body: "-"}
	return probe.Validate() == nil
}
