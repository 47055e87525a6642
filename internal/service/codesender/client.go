package codesender

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/towercard/backend/internal/flow"
	"github.com/towercard/backend/pkg/logger"

	"go.uber.org/zap"
)

// ErrUnexpectedStatus is returned for any response other than 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// SendCodeRequest is the body posted to the dispatch endpoint.
type SendCodeRequest struct {
	Email string `json:"email"`
}

// Client asks the dispatch endpoint to email a verification code.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendCode implements flow.NotificationSender.
func (c *Client) SendCode(ctx context.Context, identity flow.Identity) error {
	jsonData, err := json.Marshal(SendCodeRequest{Email: identity.String()})
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	req.Header.Set("Content-Type", "application/json")

	logger.Debug("requesting verification code", zap.String("url", c.endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	// the body is not used, drain it so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(ErrUnexpectedStatus, "status %d", resp.StatusCode)
	}

	return nil
}
