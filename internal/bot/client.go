package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/scrimhub/scrimhub/internal/model"
)

// SecretHeader authenticates server-to-server webhook calls in lieu of user
// authentication.
const SecretHeader = "x-webhook-secret"

// WebhookClient posts tournament-created events to the bot's webhook
// endpoint. It satisfies api.Notifier.
type WebhookClient struct {
	url    string
	secret string
	client *http.Client
}

func NewWebhookClient(url, secret string) *WebhookClient {
	return &WebhookClient{url: url, secret: secret, client: http.DefaultClient}
}

func (c *WebhookClient) TournamentCreated(ctx context.Context, t *model.Tournament) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, c.secret)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook call returned status %d", resp.StatusCode)
	}
	return nil
}
