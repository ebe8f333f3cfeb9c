package notify

import (
	"context"
	"fmt"
	"strings"

	"resty.dev/v3"

	"github.com/rs/zerolog"
)

// Telegram forwards messages to a chat channel. It backs both the
// deployment relay endpoint and the internal failure alert side channel.
// With no bot token configured it degrades to log-only.
type Telegram struct {
	client   *resty.Client
	apiURL   string
	botToken string
	chatID   string
	log      zerolog.Logger
}

func NewTelegram(client *resty.Client, apiURL, botToken, chatID string, log zerolog.Logger) *Telegram {
	return &Telegram{
		client:   client,
		apiURL:   apiURL,
		botToken: botToken,
		chatID:   chatID,
		log:      log.With().Str("component", "telegram-notifier").Logger(),
	}
}

// Send forwards a text message to the configured chat.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if t.botToken == "" {
		return fmt.Errorf("notifier is not configured")
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"text":    text,
			"chat_id": t.chatID,
		}).
		Get(fmt.Sprintf("%s%s/sendMessage", t.apiURL, t.botToken))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("send message: status %d", resp.StatusCode())
	}
	return nil
}

// Alert raises a failure notification. Alerting is best effort and never
// fails the operation that raised it.
func (t *Telegram) Alert(ctx context.Context, caller string, err error) {
	t.log.Error().Err(err).Str("caller", caller).Msg("raising failure alert")
	content := fmt.Sprintf("Error Notification.\n Raised by: %s\n Error: %v", caller, err)
	if sendErr := t.Send(ctx, content); sendErr != nil {
		t.log.Error().Err(sendErr).Msg("failed to deliver alert")
	}
}

// RelayToken is the bearer value the deployment relay endpoint expects:
// the secret half of the bot token, lowercased.
func (t *Telegram) RelayToken() string {
	parts := strings.SplitN(t.botToken, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}
