package infra

import (
	"fmt"
	"net/smtp"

	"frtransportes/internal/config"

	jwemail "github.com/jordan-wright/email"
)

// Notificador is the outbound notification port. The SMTP mailer is the only
// production implementation; tests plug in fakes.
type Notificador interface {
	Enviar(destinatario, assunto, mensagem string) error
}

// Mailer sends notifications over SMTP, guarded by a circuit breaker so a
// downed mail relay fast-fails instead of stalling every worker.
type Mailer struct {
	host      string
	user      string
	password  string
	addr      string
	remetente string
	cb        *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	remetente := cfg.SMTPFrom
	if remetente == "" {
		remetente = cfg.SMTPUser
	}
	return &Mailer{
		host:      cfg.SMTPHost,
		user:      cfg.SMTPUser,
		password:  cfg.SMTPPassword,
		addr:      fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		remetente: remetente,
		cb:        NewCircuitBreaker(DefaultCBConfig()),
	}
}

func (m *Mailer) Enviar(destinatario, assunto, mensagem string) error {
	return m.cb.Execute(func() error {
		e := jwemail.NewEmail()
		e.From = m.remetente
		e.To = []string{destinatario}
		e.Subject = assunto
		e.Text = []byte(mensagem)

		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		return e.Send(m.addr, auth)
	})
}
