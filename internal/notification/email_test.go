package notification

import (
	"strings"
	"testing"

	"github.com/smukkama/weather-advisor/internal/report"
	"github.com/smukkama/weather-advisor/pkg/config"
)

func testMessage() report.Message {
	return report.Message{
		Subject: "☀ Weather advisory for Tokyo - 2025-07-15",
		Text:    "plain body",
		HTML:    "<html><body>html body</body></html>",
	}
}

func TestSendAdvisory_SkipsWhenUnconfigured(t *testing.T) {
	n := NewEmailNotifier(&config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "advisor@example.com",
		To:   "me@example.com",
	})

	// No username/password: the notifier logs the message instead of
	// dialing out, and reports success.
	if err := n.SendAdvisory(testMessage(), "run-1"); err != nil {
		t.Fatalf("SendAdvisory failed: %v", err)
	}
}

func TestBuildMessage_MultipartAlternative(t *testing.T) {
	n := NewEmailNotifier(&config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "pass",
		From:     "advisor@example.com",
		To:       "me@example.com",
	})

	raw := string(n.buildMessage(testMessage(), "run-42"))

	for _, want := range []string{
		"From: advisor@example.com\r\n",
		"To: me@example.com\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/alternative; boundary=\"advisory-run-42\"\r\n",
		"Content-Type: text/plain; charset=\"utf-8\"\r\n",
		"plain body",
		"Content-Type: text/html; charset=\"utf-8\"\r\n",
		"<html><body>html body</body></html>",
		"--advisory-run-42--\r\n",
		"Message-ID: <run-42@example.com>\r\n",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("Message missing %q:\n%s", want, raw)
		}
	}

	// Text part must come before the HTML part; mail clients prefer the
	// last alternative they understand.
	if strings.Index(raw, "text/plain") > strings.Index(raw, "text/html") {
		t.Error("text/plain part must precede text/html part")
	}

	// Non-ASCII subject is MIME-encoded
	if strings.Contains(raw, "Subject: ☀") {
		t.Error("Subject must be MIME-encoded, found raw UTF-8")
	}
}
