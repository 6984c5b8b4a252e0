package mailer

import (
	"crypto/tls"
	"fmt"

	mail "gopkg.in/mail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Secure      bool // implicit TLS, e.g. port 465
	Username    string
	Password    string
	FromName    string
	FromAddress string
	// InsecureSkipVerify disables certificate verification. Only for
	// development environments behind intercepting proxies.
	InsecureSkipVerify bool
}

type smtpClient struct {
	dialer   *mail.Dialer
	fromName string
	fromAddr string
}

func NewSMTPClient(cfg SMTPConfig) (Client, error) {
	if cfg.Host == "" || cfg.FromAddress == "" {
		return nil, fmt.Errorf("mailer: SMTP host and from address are required")
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Secure
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	return &smtpClient{
		dialer:   d,
		fromName: cfg.FromName,
		fromAddr: cfg.FromAddress,
	}, nil
}

func (c *smtpClient) Send(email Email) error {
	m := mail.NewMessage()
	m.SetAddressHeader("From", c.fromAddr, c.fromName)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Text)
	if email.HTML != "" {
		m.AddAlternative("text/html", email.HTML)
	}

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}
	return nil
}
