package mailer

import (
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers transactional mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port int
	from string
	pass string
}

func NewSMTPMailer(host string, port int, from, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, pass: pass}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.from, m.pass)
	return d.DialAndSend(msg)
}
