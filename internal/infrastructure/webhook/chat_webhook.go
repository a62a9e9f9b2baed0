// Package webhook adaptador HTTP del webhook de automatización que responde el chat.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/cutman-web/internal/application/ports"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/infrastructure/transport"
	"github.com/jhoicas/cutman-web/pkg/config"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// Verificar en tiempo de compilación que ChatWebhook implementa ports.ChatWebhook.
var _ ports.ChatWebhook = (*ChatWebhook)(nil)

// ChatWebhook envía cada mensaje a POST <url>?sessionId=<id>.
type ChatWebhook struct {
	url        string
	httpClient *http.Client
}

// NewChatWebhook construye el adaptador. Con url vacía las llamadas devuelven error
// descriptivo (el chat queda sin respuestas pero la página funciona).
func NewChatWebhook(cfg config.ChatConfig, log *logger.Logger) *ChatWebhook {
	return &ChatWebhook{
		url: cfg.WebhookURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport.NewLoggingRoundTripper(nil, log.Named("webhook")),
		},
	}
}

type sendMessageRequest struct {
	SessionID string `json:"sessionId"`
	Action    string `json:"action"`
	ChatInput string `json:"chatInput"`
	UserName  string `json:"userName"`
}

type sendMessageResponse struct {
	Output *string `json:"output"`
}

// SendMessage implementa ports.ChatWebhook.
func (w *ChatWebhook) SendMessage(ctx context.Context, msg ports.ChatMessage) (string, error) {
	if w.url == "" {
		return "", fmt.Errorf("webhook: WEBHOOK_URL no configurado")
	}
	endpoint, err := url.Parse(w.url)
	if err != nil {
		return "", fmt.Errorf("webhook: URL inválida: %w", err)
	}
	q := endpoint.Query()
	q.Set("sessionId", msg.SessionID)
	endpoint.RawQuery = q.Encode()

	body, err := json.Marshal(sendMessageRequest{
		SessionID: msg.SessionID,
		Action:    "sendMessage",
		ChatInput: msg.ChatInput,
		UserName:  msg.UserName,
	})
	if err != nil {
		return "", fmt.Errorf("webhook: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("webhook: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: webhook: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("%w: webhook: leer respuesta: %v", domain.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var out sendMessageResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: webhook: %v (cuerpo: %s)", domain.ErrUnexpectedShape, err, truncate(string(raw), 200))
	}
	if out.Output == nil || *out.Output == "" {
		return "", fmt.Errorf("%w: webhook: respuesta sin output", domain.ErrUnexpectedShape)
	}
	return *out.Output, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
