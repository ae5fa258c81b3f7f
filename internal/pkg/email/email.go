package email

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"text/template"
	"time"

	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.txt
var templateFS embed.FS

const maxRetries = 3

// Body templates
const (
	TemplateWeekly  = "weekly.txt"
	TemplateMonthly = "monthly.txt"
	TemplateCustom  = "custom.txt"
)

var ErrNotConfigured = errors.New("smtp is not configured")

type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	Concurrency int
}

type Recipient struct {
	ID    string
	Name  string
	Email string
}

// PlanningMail is one PDF sent to each recipient in its own message.
type PlanningMail struct {
	Subject    string
	Template   string
	Filename   string
	PDF        []byte
	Recipients []Recipient

	// Template data
	PeriodStart string
	PeriodEnd   string
	Period      string
	Content     string
}

type DeliveryResult struct {
	Recipient Recipient
	Err       error
}

// Mailer sends planning PDFs by email
type Mailer interface {
	SendPlanning(ctx context.Context, m PlanningMail) []DeliveryResult
}

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	cfg        Config
	templates  *template.Template
	send       sendFunc
	retryDelay time.Duration
}

// NewMailer creates a new SMTP mailer
func NewMailer(cfg Config) (Mailer, error) {
	return newSMTPMailer(cfg, smtp.SendMail, time.Second)
}

func newSMTPMailer(cfg Config, send sendFunc, retryDelay time.Duration) (*smtpMailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return &smtpMailer{
		cfg:        cfg,
		templates:  tmpl,
		send:       send,
		retryDelay: retryDelay,
	}, nil
}

type bodyData struct {
	Name        string
	PeriodStart string
	PeriodEnd   string
	Period      string
	Content     string
}

// SendPlanning sends one message per recipient; results keep the recipients' order.
func (s *smtpMailer) SendPlanning(ctx context.Context, m PlanningMail) []DeliveryResult {
	results := make([]DeliveryResult, len(m.Recipients))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for i, rcpt := range m.Recipients {
		i, rcpt := i, rcpt
		g.Go(func() error {
			results[i] = DeliveryResult{Recipient: rcpt, Err: s.sendOne(ctx, m, rcpt)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *smtpMailer) sendOne(ctx context.Context, m PlanningMail, rcpt Recipient) error {
	var body bytes.Buffer
	err := s.templates.ExecuteTemplate(&body, m.Template, bodyData{
		Name:        rcpt.Name,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Period:      m.Period,
		Content:     m.Content,
	})
	if err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	message, err := s.buildMessage(rcpt, m.Subject, body.String(), m.Filename, m.PDF)
	if err != nil {
		return err
	}

	return s.deliver(ctx, rcpt.Email, m.Subject, message)
}

func (s *smtpMailer) buildMessage(rcpt Recipient, subject, text, filename string, attachment []byte) ([]byte, error) {
	var msg bytes.Buffer
	mw := multipart.NewWriter(&msg)

	from := mail.Address{Name: s.cfg.FromName, Address: s.cfg.FromEmail}
	to := mail.Address{Name: rcpt.Name, Address: rcpt.Email}

	fmt.Fprintf(&msg, "From: %s\r\n", from.String())
	fmt.Fprintf(&msg, "To: %s\r\n", to.String())
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	msg.WriteString("\r\n")

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/plain; charset="UTF-8"`},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create text part: %w", err)
	}
	if _, err := textPart.Write([]byte(text)); err != nil {
		return nil, fmt.Errorf("failed to write text part: %w", err)
	}

	pdfPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mime.FormatMediaType("application/pdf", map[string]string{"name": filename})},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": filename})},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment part: %w", err)
	}
	if err := writeBase64Lines(pdfPart, attachment); err != nil {
		return nil, fmt.Errorf("failed to write attachment: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close message: %w", err)
	}

	return msg.Bytes(), nil
}

// writeBase64Lines wraps the encoding at 76 characters per line.
func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := min(76, len(encoded))
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

func (s *smtpMailer) deliver(ctx context.Context, to, subject string, message []byte) error {
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return ErrNotConfigured
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, s.cfg.FromEmail, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay * time.Duration(1<<(attempt-1))):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
