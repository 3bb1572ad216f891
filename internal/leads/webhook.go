package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Webhook forwards accepted leads to an external collector.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type webhookPayload struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Comment     string `json:"comment"`
	SubmittedAt string `json:"submittedAt"`
}

// Send posts l as JSON. Transport errors and non-2xx answers are returned.
func (w *Webhook) Send(ctx context.Context, l Lead) error {
	body, err := json.Marshal(webhookPayload{
		Email:       l.Email,
		Name:        l.Name,
		Company:     l.Company,
		Role:        l.Role,
		Comment:     l.Comment,
		SubmittedAt: l.SubmittedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leads: webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("leads: webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("leads: webhook answered %s", resp.Status)
	}
	return nil
}
