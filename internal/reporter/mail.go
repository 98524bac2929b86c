package reporter

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go-avisos-monitor/internal/config"
)

var (
	// ErrMissingMailSettings is returned when a required MAIL_* variable is empty.
	ErrMissingMailSettings = errors.New("missing mail settings in .env")

	// ErrMalformedMailHost is returned when MAIL_HOST looks like a whole
	// "KEY=value" line rather than a host name.
	ErrMalformedMailHost = errors.New("malformed MAIL_HOST")

	// ErrInvalidMailPort is returned when MAIL_PORT is not a TCP port number.
	ErrInvalidMailPort = errors.New("invalid MAIL_PORT")
)

const dialTimeout = 30 * time.Second

// MailNotifier sends one HTML email per call over an implicit-TLS SMTP
// connection, authenticating on every send.
type MailNotifier struct {
	cfg config.MailConfig
	now func() time.Time
}

func NewMailNotifier(cfg config.MailConfig) *MailNotifier {
	return &MailNotifier{
		cfg: cfg,
		now: time.Now,
	}
}

// Recipient is the configured destination address.
func (m *MailNotifier) Recipient() string {
	return m.cfg.To
}

// Validate checks the settings without touching the network.
func (m *MailNotifier) Validate() (port int, err error) {
	var missing []string
	for _, kv := range []struct{ key, value string }{
		{"MAIL_HOST", m.cfg.Host},
		{"MAIL_PORT", m.cfg.Port},
		{"MAIL_USER", m.cfg.User},
		{"MAIL_PASS", m.cfg.Password},
		{"MAIL_TO", m.cfg.To},
	} {
		if kv.value == "" {
			missing = append(missing, kv.key)
		}
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrMissingMailSettings, strings.Join(missing, ", "))
	}

	//typical mistake: MAIL_HOST=MAIL_HOST=smtp.gmail.com
	if strings.Contains(m.cfg.Host, "=") {
		return 0, fmt.Errorf("%w: %q, it must be just the host, e.g. 'smtp.gmail.com'", ErrMalformedMailHost, m.cfg.Host)
	}

	port, err = strconv.Atoi(m.cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMailPort, m.cfg.Port)
	}
	return port, nil
}

// Send delivers htmlBody to the configured recipient.
func (m *MailNotifier) Send(ctx context.Context, subject, htmlBody string) error {
	port, err := m.Validate()
	if err != nil {
		return err
	}

	msg, err := buildMessage(m.cfg.User, m.cfg.To, subject, htmlBody, m.now())
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(port))
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: dialTimeout},
		Config:    &tls.Config{ServerName: m.cfg.Host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer c.Close()

	if err := c.Auth(smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err := c.Mail(m.cfg.User); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	if err := c.Rcpt(m.cfg.To); err != nil {
		return fmt.Errorf("RCPT TO rejected: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return c.Quit()
}

// buildMessage assembles a UTF-8 text/html MIME message.
func buildMessage(from, to, subject, htmlBody string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(htmlBody)); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}
	return buf.Bytes(), nil
}
