package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"StockPulse/internal/httpclient"
)

// DefaultTelegramAPI is the Telegram Bot API host.
const DefaultTelegramAPI = "https://api.telegram.org"

// maxMessageLen is Telegram's limit for a single message.
const maxMessageLen = 4096

// Notifier delivers text messages to the user.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	APIBase  string
	Client   *httpclient.Client
	// PollClient has a longer timeout for getUpdates long polling.
	PollClient *http.Client
}

// NewTelegramNotifier creates a notifier on top of the shared HTTP client.
func NewTelegramNotifier(botToken, chatID string, client *httpclient.Client) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken:   botToken,
		ChatID:     chatID,
		APIBase:    DefaultTelegramAPI,
		Client:     client,
		PollClient: &http.Client{Timeout: 35 * time.Second},
	}
}

func (t *TelegramNotifier) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.APIBase, t.BotToken, name)
}

// Send sends a message to the configured chat. Long messages are split.
// Retries are handled by the HTTP client.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLen) {
		payload := map[string]string{
			"chat_id":    t.ChatID,
			"text":       chunk,
			"parse_mode": "HTML",
		}
		body, err := t.Client.PostJSON(ctx, t.method("sendMessage"), payload)
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		var resp struct {
			OK          bool   `json:"ok"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("decode telegram response: %w", err)
		}
		if !resp.OK {
			return fmt.Errorf("telegram API error: %s", resp.Description)
		}
	}
	return nil
}

// splitMessage cuts text into chunks of at most n bytes, preferring line breaks.
// Without a line break the cut never lands inside a rune or an HTML tag.
func splitMessage(text string, n int) []string {
	var chunks []string
	for len(text) > n {
		cut := 0
		for i := n; i > n/2; i-- {
			if text[i-1] == '\n' {
				cut = i
				break
			}
		}
		if cut == 0 {
			cut = safeCut(text, n)
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	return append(chunks, text)
}

func safeCut(text string, n int) int {
	cut := n
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if open := strings.LastIndexByte(text[:cut], '<'); open > 0 && open > strings.LastIndexByte(text[:cut], '>') {
		cut = open
	}
	if cut == 0 {
		return n
	}
	return cut
}
