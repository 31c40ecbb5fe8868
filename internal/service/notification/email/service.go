package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/service/notification"
	"github.com/bernhardbrugger/deepstock-bot/pkg/textx"
	"gopkg.in/gomail.v2"
)

const sendTimeout = 30 * time.Second

type Service struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewService(host string, port int, user, password, to string) notification.Channel {
	return &Service{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   user,
		to:     to,
	}
}

func (s *Service) Name() string {
	return "email"
}

// Send delivers a multipart message: plain-text part first (derived from
// the HTML body when no explicit text is supplied), HTML alternative second.
func (s *Service) Send(ctx context.Context, msg notification.Message) error {
	text := msg.Text
	if text == "" {
		text = textx.StripTags(msg.HTML)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", msg.HTML)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	// gomail has no context support, so the dial+send runs in a goroutine
	// and the timeout is enforced here.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			if isAuthError(err) {
				slog.Error("smtp authentication failed, check credentials", "host", s.dialer.Host)
			} else {
				slog.Error("smtp send failed", "host", s.dialer.Host, "error", err)
			}
			return fmt.Errorf("smtp: %w", err)
		}
	case <-ctx.Done():
		slog.Error("smtp send timed out", "host", s.dialer.Host)
		return fmt.Errorf("smtp: %w", ctx.Err())
	}

	slog.Info("sent email alert", "to", s.to, "subject", msg.Subject)
	return nil
}

func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "auth") || strings.Contains(msg, "535")
}
