package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendApprovalLink(email, workspaceName, link string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendApprovalLink(email, workspaceName, link string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Conteúdos aguardando sua aprovação")

	body := fmt.Sprintf(`
		<h2>Olá, %s!</h2>
		<p>Você tem conteúdos aguardando aprovação.</p>
		<p>Acesse o link abaixo para revisar, aprovar ou solicitar ajustes:</p>
		<p><a href="%s">%s</a></p>
		<p>O link é válido por tempo limitado.</p>
	`, workspaceName, link, link)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send approval link email: %w", err)
	}

	return nil
}
