package mailer

import (
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
)

// Mailer delivers one HTML message. Implementations log their own failures;
// callers treat delivery as best-effort.
type Mailer interface {
	Send(subject, htmlBody, to, from, password string) error
}

// SMTPMailer talks to an implicit-TLS SMTP endpoint (smtp.gmail.com:465 by
// default).
type SMTPMailer struct {
	Host string
	Port string
}

func NewSMTPMailer(host, port string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port}
}

func (m *SMTPMailer) Send(subject, htmlBody, to, from, password string) error {
	addr := net.JoinHostPort(m.Host, m.Port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.Host})
	if err != nil {
		log.Printf("[Mailer] dial %s: %v", addr, err)
		return fmt.Errorf("smtp dial: %w", err)
	}

	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		conn.Close()
		log.Printf("[Mailer] client: %v", err)
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", from, password, m.Host)
	if err := client.Auth(auth); err != nil {
		log.Printf("[Mailer] auth as %s: %v", from, err)
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(buildMessage(subject, htmlBody, to, from))); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return client.Quit()
}

func buildMessage(subject, htmlBody, to, from string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return b.String()
}
