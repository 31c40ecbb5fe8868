package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/service/llm"
	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.openai.com/v1"

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type Service struct {
	cli   *resty.Client
	model string
}

type Option func(service *Service)

func WithBaseURL(url string) Option {
	return func(service *Service) {
		service.cli.SetBaseURL(url)
	}
}

func NewService(apiKey, model string, opts ...Option) llm.Service {
	svc := &Service{
		cli: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second).
			SetAuthToken(apiKey),
		model: model,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) AskOnce(ctx context.Context, q llm.Question) (llm.Answer, error) {
	var result chatResponse
	resp, err := s.cli.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       s.model,
			Messages:    []chatMessage{{Role: "user", Content: q.Content}},
			Temperature: 0.3,
			MaxTokens:   1000,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/chat/completions")
	if err != nil {
		return llm.Answer{}, fmt.Errorf("openai request failed: %w", err)
	}
	if resp.IsError() {
		if result.Error != nil {
			return llm.Answer{}, fmt.Errorf("openai api error: %s", result.Error.Message)
		}
		return llm.Answer{}, fmt.Errorf("openai api error: http %d", resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return llm.Answer{}, fmt.Errorf("openai returned no choices")
	}
	return llm.Answer{
		Content: result.Choices[0].Message.Content,
	}, nil
}
