package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "character-studio/backend/pkg/errors"
	"character-studio/backend/pkg/logger"
	"character-studio/backend/pkg/resilience"
)

// FeedbackRequest is the payload relayed to the feedback webhook.
type FeedbackRequest struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
	Page    string `json:"page,omitempty"`
}

// FeedbackService relays user feedback to a configured webhook. One shot:
// no retry, no queue; a failed relay surfaces a generic error. A circuit
// breaker fails fast while the webhook is known to be down.
type FeedbackService struct {
	webhookURL string
	client     *http.Client
	breaker    *resilience.CircuitBreaker
	log        *logger.Logger
}

func NewFeedbackService(webhookURL string, timeout time.Duration, log *logger.Logger) *FeedbackService {
	return &FeedbackService{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		breaker:    resilience.New(resilience.DefaultConfig("feedback-webhook"), log),
		log:        log,
	}
}

// Send posts the feedback to the webhook.
func (s *FeedbackService) Send(ctx context.Context, req FeedbackRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("feedback message is required")
	}
	if s.webhookURL == "" {
		return apperrors.NewInternalServerError(apperrors.CodeInternal, "feedback relay is not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return apperrors.NewInternalServerError(apperrors.CodeInternal, err.Error())
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewInternalServerError(apperrors.CodeInternal, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	err = s.breaker.Execute(func() error {
		resp, err := s.client.Do(httpReq)
		if err != nil {
			s.log.LogError(err, "feedback relay failed")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			s.log.Error("feedback relay rejected", "status", resp.StatusCode)
			return fmt.Errorf("feedback relay returned status %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		return apperrors.NewInternalServerError(apperrors.CodeInternal, "feedback could not be delivered")
	}
	return nil
}
