// Package telegram отправляет сообщения через Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ParseModeMarkdown разметка текста сообщения.
const ParseModeMarkdown = "Markdown"

// ErrRejected Bot API отклонил запрос: неверный токен, чат или текст. Повтор не поможет.
var ErrRejected = errors.New("telegram: request rejected")

// Client клиент Bot API.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создает клиента для apiURL, обычно https://api.telegram.org.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendMessageRequest тело метода sendMessage.
type SendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage вызывает метод sendMessage бота token.
// Ответы 4xx, кроме 429, оборачивают ErrRejected.
func (c *Client) SendMessage(ctx context.Context, token string, msg SendMessageRequest) error {
	const op = "telegram.SendMessage"

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	endpoint := c.apiURL + "/bot" + token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url содержит токен бота
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var body apiResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w: %d %s", op, ErrRejected, resp.StatusCode, body.Description)
	}
	return fmt.Errorf("%s: unexpected status %d %s", op, resp.StatusCode, body.Description)
}
