package codesender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towercard/backend/internal/flow"
)

var _ flow.NotificationSender = (*Client)(nil)

func TestClient_SendCode(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/dispatch", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"email": "user@sjsu.edu"}, body)

		_, _ = w.Write([]byte(`{"id":"ignored"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/dispatch", time.Second)

	require.NoError(t, c.SendCode(context.Background(), "user@sjsu.edu"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_SendCodeNonOK(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusBadRequest, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		err := NewClient(srv.URL, time.Second).SendCode(context.Background(), "user@sjsu.edu")

		assert.True(t, errors.Is(err, ErrUnexpectedStatus), "status %d", status)
		srv.Close()
	}
}

func TestClient_SendCodeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, time.Second).SendCode(context.Background(), "user@sjsu.edu")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestClient_SendCodeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	err := NewClient(srv.URL, 20*time.Millisecond).SendCode(context.Background(), "user@sjsu.edu")

	assert.Error(t, err)
}
