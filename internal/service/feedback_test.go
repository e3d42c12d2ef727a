package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "character-studio/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackForwardsToWebhook(t *testing.T) {
	var received FeedbackRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewFeedbackService(server.URL, 5*time.Second, testLogger())
	err := svc.Send(context.Background(), FeedbackRequest{Message: "love it", Email: "a@b.c", Page: "/stats"})
	require.NoError(t, err)
	assert.Equal(t, "love it", received.Message)
	assert.Equal(t, "/stats", received.Page)
}

func TestFeedbackRequiresMessage(t *testing.T) {
	svc := NewFeedbackService("http://unused", time.Second, testLogger())

	err := svc.Send(context.Background(), FeedbackRequest{Message: "   "})
	assert.True(t, apperrors.IsValidation(err))
}

func TestFeedbackWebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewFeedbackService(server.URL, time.Second, testLogger())
	err := svc.Send(context.Background(), FeedbackRequest{Message: "hi"})
	assert.Error(t, err)
}

func TestFeedbackUnconfigured(t *testing.T) {
	svc := NewFeedbackService("", time.Second, testLogger())

	err := svc.Send(context.Background(), FeedbackRequest{Message: "hi"})
	assert.Error(t, err)
}
