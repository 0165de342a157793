package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"lumarise-backend/config"
	"lumarise-backend/logger"
)

// Mail is one plain-text outbound message.
type Mail struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// NewMailer returns an SMTP mailer, or a logging mock when SMTP is not
// configured.
func NewMailer(cfg config.SMTPConfig, logg *logger.Logger) Mailer {
	if logg == nil {
		logg = logger.Nop()
	}
	if !cfg.Configured() {
		return &MockMailer{log: logg}
	}
	return &SMTPMailer{cfg: cfg, log: logg}
}

type SMTPMailer struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

func (s *SMTPMailer) Send(ctx context.Context, m Mail) error {
	msg, err := s.message(m)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client (host=%s port=%d): %w", s.cfg.Host, s.cfg.Port, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail (host=%s port=%d): %w", s.cfg.Host, s.cfg.Port, err)
	}

	s.log.Info(s.log.WithFields(ctx, map[string]any{
		"to":      m.To,
		"subject": m.Subject,
	}), "mail.sent")
	return nil
}

func (s *SMTPMailer) message(m Mail) (*mail.Msg, error) {
	from := s.cfg.FromEmail
	if from == "" {
		from = s.cfg.Username
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, from); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, fmt.Errorf("set reply-to: %w", err)
		}
	}
	msg.Subject(headerSafe(m.Subject))
	msg.SetBodyString(mail.TypeTextPlain, m.Body)
	return msg, nil
}

// MockMailer logs instead of sending.
type MockMailer struct {
	log *logger.Logger
}

func (s *MockMailer) Send(ctx context.Context, m Mail) error {
	s.log.Info(s.log.WithFields(ctx, map[string]any{
		"to":       m.To,
		"reply_to": m.ReplyTo,
		"subject":  m.Subject,
	}), "mail.mock_send")
	return nil
}

// headerSafe keeps user input from breaking out of a header line.
func headerSafe(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ---------------------------
// Enquiry
// ---------------------------

type Enquiry struct {
	Name    string
	Place   string
	Email   string
	Phone   string
	Message string
}

func EnquirySubject(e Enquiry) string {
	return headerSafe(fmt.Sprintf("New Enquiry from %s", e.Name))
}

func EnquiryBody(e Enquiry) string {
	return fmt.Sprintf(
		"Name: %s\n"+
			"Place: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n"+
			"Message: %s\n",
		e.Name, e.Place, e.Email, e.Phone, e.Message,
	)
}
