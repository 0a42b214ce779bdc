package mail

import (
	"studybuddy/config"
	"studybuddy/pkg/log"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender 发送邮件
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	cfg *config.Email
}

// NewSender 未配置 SMTP 时退化为只打日志, 方便本地开发
func NewSender(cfg *config.Email) Sender {
	if cfg.SMTPHost == "" {
		return logSender{}
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		s.cfg.SMTPHost,
		s.cfg.SMTPPort,
		s.cfg.SMTPUser,
		s.cfg.SMTPPassword,
	)

	return d.DialAndSend(m)
}

type logSender struct{}

func (logSender) Send(to, subject, body string) error {
	log.L.Info("mail not sent, smtp disabled",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
