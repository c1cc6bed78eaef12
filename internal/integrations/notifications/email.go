package notifications

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailConfig параметры SMTP
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
	TimeZone *time.Location
}

// EmailSender отправляет уведомления администраторам академии по почте
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
	to     []string
	loc    *time.Location
}

// NewEmailSender создает отправителя по конфигурации SMTP
func NewEmailSender(cfg EmailConfig) *EmailSender {
	loc := cfg.TimeZone
	if loc == nil {
		loc = time.UTC
	}
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
		loc:    loc,
	}
}

// Name имя канала для логов
func (s *EmailSender) Name() string {
	return "email"
}

// Send отправляет письмо. gomail не принимает контекст, поэтому
// отменённый контекст проверяется только перед соединением.
func (s *EmailSender) Send(ctx context.Context, notice *CancellationNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(s.to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to...)
	m.SetHeader("Subject", subject(notice))
	m.SetBody("text/plain", body(notice, s.loc))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("email: send: %w", err)
	}
	return nil
}

func subject(n *CancellationNotice) string {
	return fmt.Sprintf("Booking #%d cancelled (%s)", n.BookingID, n.Kind)
}

func body(n *CancellationNotice, loc *time.Location) string {
	text := fmt.Sprintf(
		"Booking #%d for user %d at location %d was cancelled.\nSession: %s - %s\nService: %s\n",
		n.BookingID,
		n.UserID,
		n.LocationID,
		n.StartTime.In(loc).Format("2006-01-02 15:04"),
		n.EndTime.In(loc).Format("15:04"),
		n.ServiceName,
	)
	if n.Reason != "" {
		text += fmt.Sprintf("Reason: %s\n", n.Reason)
	}
	if n.RefundAmount > 0 {
		if n.RefundPending {
			text += fmt.Sprintf("Refund of %.2f credits FAILED and needs manual follow-up.\n", n.RefundAmount)
		} else {
			text += fmt.Sprintf("Refunded %.2f credits.\n", n.RefundAmount)
		}
	}
	return text
}
