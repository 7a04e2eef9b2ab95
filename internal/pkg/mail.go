package pkg

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer abstracts the SMTP send so background jobs can be tested without a
// mail server.
type Mailer func(to, subject, htmlBody string) error

func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return func(to, subject, htmlBody string) error {
		m := gomail.NewMessage()
		m.SetHeader("From", cfg.From)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", htmlBody)

		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		return d.DialAndSend(m)
	}
}

func EmailCodeHTML(action, code string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>Hello,</p><p>You requested <b>%s</b>. Your verification code is <b style="font-size:18px;">%s</b>.</p><p>It expires in %d minutes. Do not share it.</p>`,
		action, code, int(ttl.Minutes()))
}

func InvitationHTML(workspaceName, inviterName string) string {
	return fmt.Sprintf(`<p>Hello,</p><p><b>%s</b> invited you to join the workspace <b>%s</b> on Flowdeck.</p><p>Log in to accept or decline the invitation.</p>`,
		inviterName, workspaceName)
}

// DigestHTML renders the batch email body: one line per pending
// notification.
func DigestHTML(messages []string) string {
	var b strings.Builder
	b.WriteString("<p>Hello,</p><p>While you were away:</p><ul>")
	for _, msg := range messages {
		b.WriteString("<li>")
		b.WriteString(msg)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
