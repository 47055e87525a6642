package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/towercard/backend/pkg/validator"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
	// IdempotencyKey lets providers that support it drop duplicate sends.
	IdempotencyKey string
}

type Sender interface {
	Send(ctx context.Context, input SendEmailInput) error
}

func (e *SendEmailInput) GenerateBodyFromHTML(templatesDir string, templateFileName string, data interface{}) error {
	t, err := template.ParseFiles(filepath.Join(templatesDir, templateFileName))
	if err != nil {
		return fmt.Errorf("parse file failed: %w", err)
	}

	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}

	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || e.Body == "" {
		return errors.New("empty subject/body")
	}

	if !validator.IsEmail(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}
