// Package mail envía las notificaciones de pedidos por SMTP.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jlaglobal/pangea-api/pkg/config"
	"github.com/jlaglobal/pangea-api/pkg/logger"
)

// SMTPMailer envía correos HTML con gomail.
type SMTPMailer struct {
	from   string
	sender gomail.Sender
	dialer *gomail.Dialer
}

// NewSMTPMailer construye el mailer desde la configuración; cada envío abre
// su propia conexión SMTP.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

// NewMailerWithSender usa un gomail.Sender ya abierto (o un SendFunc en tests).
func NewMailerWithSender(from string, sender gomail.Sender) *SMTPMailer {
	return &SMTPMailer{from: from, sender: sender}
}

// Send envía un correo HTML a un destinatario.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	var err error
	if m.sender != nil {
		err = gomail.Send(m.sender, msg)
	} else {
		err = m.dialer.DialAndSend(msg)
	}
	if err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// NopMailer registra el correo en el log y no lo envía (MAIL_ENABLED=false).
type NopMailer struct {
	log *logger.Logger
}

// NewNopMailer construye el mailer inerte.
func NewNopMailer(log *logger.Logger) *NopMailer {
	return &NopMailer{log: log}
}

// Send solo deja constancia en el log.
func (m *NopMailer) Send(_ context.Context, to, subject, _ string) error {
	if m != nil && m.log != nil {
		m.log.Debug().Str("to", to).Str("subject", subject).Msg("correo descartado (MAIL_ENABLED=false)")
	}
	return nil
}
