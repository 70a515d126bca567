package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/joserrivase/Accountability-Buddy-sub000/config"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/notification"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/logger"
)

// PushSink entrega notificações a um gateway externo de push via webhook.
// Quando desabilitado na configuração, o envio vira no-op.
type PushSink struct {
	cfg    config.PushConfig
	client *http.Client
}

func NewPushSink(cfg *config.Config) *PushSink {
	return &PushSink{
		cfg: cfg.Push,
		client: &http.Client{
			Timeout: cfg.Push.Timeout,
		},
	}
}

type pushPayload struct {
	UserId  string `json:"userId"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (s *PushSink) Send(ctx context.Context, n *notification.Notification) error {
	if !s.cfg.Enabled || s.cfg.GatewayURL == "" {
		logger.Debug().
			Str("notification_id", n.Id.String()).
			Msg("Push desabilitado; notificação registrada apenas no banco")
		return nil
	}

	payload := pushPayload{
		UserId:  n.UserId.String(),
		Type:    string(n.Type),
		Title:   n.Title,
		Message: n.Message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return appErrors.ErrInternalServer.WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return appErrors.ErrInternalServer.WithError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return appErrors.NewExternalServiceError("push gateway", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return appErrors.NewExternalServiceError("push gateway",
			fmt.Errorf("status inesperado: %d", resp.StatusCode))
	}

	logger.Debug().
		Str("notification_id", n.Id.String()).
		Str("user_id", payload.UserId).
		Msg("Notificação enviada ao gateway de push")
	return nil
}
