package notification

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/smukkama/weather-advisor/internal/report"
	"github.com/smukkama/weather-advisor/pkg/config"
)

// EmailNotifier delivers rendered advisories over SMTP.
type EmailNotifier struct {
	config *config.SMTPConfig
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg *config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{config: cfg}
}

// SendAdvisory sends one advisory as a multipart/alternative email with
// the plain-text body as fallback for the HTML one. The run ID becomes
// the Message-ID so deliveries can be traced back to a run.
func (e *EmailNotifier) SendAdvisory(msg report.Message, runID string) error {
	// Skip sending if SMTP is not configured
	if e.config.Username == "" || e.config.Password == "" {
		fmt.Printf("SMTP not configured, skipping email:\nSubject: %s\n%s\n", msg.Subject, msg.Text)
		return nil
	}

	body := e.buildMessage(msg, runID)

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)

	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	if err := smtp.SendMail(addr, auth, e.config.From, []string{e.config.To}, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("Email sent successfully: %s\n", msg.Subject)
	return nil
}

func (e *EmailNotifier) buildMessage(msg report.Message, runID string) []byte {
	boundary := "advisory-" + runID
	domain := e.config.Host
	if at := strings.LastIndex(e.config.From, "@"); at >= 0 {
		domain = e.config.From[at+1:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.config.From)
	fmt.Fprintf(&b, "To: %s\r\n", e.config.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", runID, domain)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(msg.Text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

// TestConnection tests the SMTP connection
func (e *EmailNotifier) TestConnection() error {
	if e.config.Username == "" {
		return fmt.Errorf("SMTP not configured")
	}

	// Try to connect
	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	fmt.Println("SMTP connection test successful")
	return nil
}
