package email

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// Reminder is one expiring-membership notice.
type Reminder struct {
	To         string
	MemberName string
	PlanName   string
	EndDate    string
	DaysLeft   int
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (s *SMTPEmailService) SendExpiryReminder(r Reminder) error {
	m := s.buildReminder(r)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) buildReminder(r Reminder) *gomail.Message {
	var when string
	switch {
	case r.DaysLeft <= 0:
		when = "vence hoy"
	case r.DaysLeft == 1:
		when = "vence mañana"
	default:
		when = fmt.Sprintf("vence en %d días", r.DaysLeft)
	}

	subject := fmt.Sprintf("Tu membresía %s", when)

	plainBody := fmt.Sprintf(`Hola %s,

Tu membresía %s %s (%s).

Renueva en recepción para no perder tu acceso.

F3 Gym
`, r.MemberName, r.PlanName, when, r.EndDate)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hola %s,</h2>
			<p>Tu membresía <strong>%s</strong> %s (%s).</p>
			<p>Renueva en recepción para no perder tu acceso.</p>
		</body>
		</html>
	`, html.EscapeString(r.MemberName), html.EscapeString(r.PlanName), when, r.EndDate)

	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", strings.TrimSpace(r.To))
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}
