// Package mailer delivers rendered documents over SMTP. Delivery runs strictly
// after the owning transaction has committed; a failure here is the caller's
// to log, never to propagate.
package mailer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"ventas-backend/services"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// New builds a mailer from SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD and
// SMTP_FROM. Returns nil when no host is configured so the caller can leave
// notification unwired.
func New() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port <= 0 {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}
	return &Mailer{
		host: host,
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: from,
	}
}

var _ services.Notifier = (*Mailer)(nil)

func (m *Mailer) Deliver(address, subject, body string, attachment []byte, filename string) error {
	if address == "" {
		return fmt.Errorf("empty recipient address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", address)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if len(attachment) > 0 {
		msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(attachment))
			return err
		}))
	}

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return dialer.DialAndSend(msg)
}
