package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/service/notification"
	"github.com/bernhardbrugger/deepstock-bot/pkg/textx"
	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.telegram.org"

// maxMessageLength stays under the Bot API's 4096 hard cap to leave room
// for entity expansion.
const maxMessageLength = 4000

type sendMessageReq struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

type Service struct {
	cli            *resty.Client
	token          string
	chatID         string
	parseMode      string
	disablePreview bool
}

type Option func(service *Service)

func WithBaseURL(url string) Option {
	return func(service *Service) {
		service.cli.SetBaseURL(url)
	}
}

func WithParseMode(mode string) Option {
	return func(service *Service) {
		service.parseMode = mode
	}
}

func NewService(token, chatID string, opts ...Option) notification.Channel {
	svc := &Service{
		cli: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(4 * time.Second),
		token:          token,
		chatID:         chatID,
		parseMode:      "HTML",
		disablePreview: true,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) Name() string {
	return "telegram"
}

// Send splits oversized messages into ordered chunks and pushes each one.
// A failed chunk does not stop the remaining chunks; the send as a whole
// reports failure if any chunk failed.
func (s *Service) Send(ctx context.Context, msg notification.Message) error {
	chunks := textx.SplitMessage(msg.HTML, maxMessageLength)

	failed := 0
	for i, chunk := range chunks {
		if chunk == "" {
			continue
		}
		if err := s.sendChunk(ctx, chunk); err != nil {
			slog.Error("failed to send telegram chunk",
				"chat_id", s.chatID, "chunk", i+1, "total", len(chunks), "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("telegram: %d/%d chunks failed", failed, len(chunks))
	}
	slog.Info("sent telegram alert", "chat_id", s.chatID, "chunks", len(chunks))
	return nil
}

func (s *Service) sendChunk(ctx context.Context, text string) error {
	var result apiResponse
	resp, err := s.cli.R().
		SetContext(ctx).
		SetBody(sendMessageReq{
			ChatID:                s.chatID,
			Text:                  text,
			ParseMode:             s.parseMode,
			DisableWebPagePreview: s.disablePreview,
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/bot%s/sendMessage", s.token))
	if err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return fmt.Errorf("auth: %s", result.Description)
	}
	if resp.IsError() || !result.OK {
		return fmt.Errorf("api: %s", orStatus(result.Description, resp.StatusCode()))
	}
	return nil
}

func orStatus(description string, status int) string {
	if description != "" {
		return description
	}
	return fmt.Sprintf("http %d", status)
}
