package mailer

import (
	"context"
	"fmt"
	"io"

	"app/internal/config"

	gomail "gopkg.in/gomail.v2"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type Message struct {
	To          []string
	Bcc         []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailerはgomailでそのまま送る。失敗の握りつぶしはNotifierの仕事。
type SMTPMailer struct {
	host   string
	port   int
	secure bool
	user   string
	pass   string
	from   string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:   cfg.SMTPHost,
		port:   cfg.SMTPPort,
		secure: cfg.SMTPSecure,
		user:   cfg.EmailUser,
		pass:   cfg.EmailPass,
		from:   fmt.Sprintf("VITALIMES <%s>", cfg.EmailUser),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	if len(msg.To) > 0 {
		gm.SetHeader("To", msg.To...)
	}
	if len(msg.Bcc) > 0 {
		gm.SetHeader("Bcc", msg.Bcc...)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	for _, a := range msg.Attachments {
		content := a.Content
		gm.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	d.SSL = m.secure

	//gomailはctxを知らないので送信はゴルーチンに逃がして期限を効かせる
	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(gm) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
