package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"rleomotos-api/config"
)

// EmailService sends transactional mail. When no SMTP host is configured the
// service is disabled and every send is a no-op.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{config: cfg}
	if cfg.SMTPHost != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return service
}

func (es *EmailService) Enabled() bool {
	return es.dialer != nil
}

// SendWelcomeEmail greets a newly registered user.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	if !es.Enabled() {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Rleo Motos")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome, %s!</h2>
    <p>Your Rleo Motos account is ready. You can now browse the inventory
    and track your motorcycles.</p>
    <p>If you did not create this account, please contact us.</p>
    <p>— The Rleo Motos team</p>
</body>
</html>`, name)

	m.SetBody("text/html", htmlBody)
	return es.dialer.DialAndSend(m)
}
