package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsDigest/internal/config"
)

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		Sender:    "digest@example.org",
		Password:  "app-password",
		Recipient: "reader@example.org",
		SMTPHost:  "smtp.example.org",
		SMTPPort:  "587",
	}
}

func TestDeliverBuildsHTMLMessage(t *testing.T) {
	t.Parallel()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	mailer := NewMailer(testMailConfig(), nil)
	mailer.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := mailer.Deliver(context.Background(), "Daily News Digest - 2026-08-31", "<html>digest</html>")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.org:587", gotAddr)
	assert.Equal(t, "digest@example.org", gotFrom)
	assert.Equal(t, []string{"reader@example.org"}, gotTo)

	message := string(gotMsg)
	assert.Contains(t, message, "From: digest@example.org\r\n")
	assert.Contains(t, message, "To: reader@example.org\r\n")
	assert.Contains(t, message, "Subject: Daily News Digest - 2026-08-31\r\n")
	assert.Contains(t, message, "Content-Type: text/html; charset=UTF-8\r\n")

	headerEnd := strings.Index(message, "\r\n\r\n")
	require.Greater(t, headerEnd, 0, "headers and body must be separated by a blank line")
	assert.Equal(t, "<html>digest</html>", message[headerEnd+4:])
}

func TestDeliverRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	mailer := NewMailer(testMailConfig(), nil)
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		calls++
		if calls == 1 {
			return errors.New("temporary smtp hiccup")
		}
		return nil
	}

	err := mailer.Deliver(context.Background(), "subject", "body")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDeliverGivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	mailer := NewMailer(testMailConfig(), nil)
	mailer.maxRetries = 1
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		calls++
		return errors.New("smtp auth rejected")
	}

	err := mailer.Deliver(context.Background(), "subject", "body")
	require.Error(t, err)
	assert.Equal(t, 2, calls, "one initial attempt plus one retry")
}

func TestDeliverRequiresCredentials(t *testing.T) {
	t.Parallel()

	mailer := NewMailer(config.MailConfig{SMTPHost: "smtp.example.org", SMTPPort: "587"}, nil)
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called without credentials")
		return nil
	}

	err := mailer.Deliver(context.Background(), "subject", "body")
	require.Error(t, err)
}
