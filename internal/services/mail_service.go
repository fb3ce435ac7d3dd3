package services

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

type IMailService interface {
	SendRequestNotification(to, stageName, songTitle, requesterName string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host     string // e.g. "smtp.gmail.com"
	Port     int    // 587 (STARTTLS) or 465 (SMTPS)
	Username string
	Password string
	From     string // envelope from, e.g. "no-reply@stagekit.app"
	FromName string
	UseSSL   bool // true for SMTPS 465, false for STARTTLS 587

	AppName string
}

type smtpMailService struct {
	cfg SMTPConfig
}

func NewSMTPMailService(cfg SMTPConfig) IMailService {
	return &smtpMailService{cfg: cfg}
}

func (s *smtpMailService) SendRequestNotification(to, stageName, songTitle, requesterName string) error {
	if requesterName == "" {
		requesterName = "Someone in the audience"
	}
	title := songTitle
	if title == "" {
		title = "a song"
	}

	subject := fmt.Sprintf("New song request: %s", title)
	body := fmt.Sprintf("Hi %s,\r\n\r\n%s just requested %s.\r\nOpen your %s inbox to queue it up.\r\n",
		stageName, requesterName, title, s.cfg.AppName)

	return s.send(to, subject, body)
}

func (s *smtpMailService) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var headers strings.Builder
	headers.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From))
	headers.WriteString(fmt.Sprintf("To: %s\r\n", to))
	headers.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	headers.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg := []byte(headers.String() + body)

	if !s.cfg.UseSSL {
		return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
	}

	// SMTPS: dial TLS up front, then speak SMTP over it.
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return err
	}
	defer conn.Close()

	host, _, _ := net.SplitHostPort(addr)
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
