package utils

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through an SMTP relay with gomail.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	from := m.From
	if from == "" {
		from = m.Username
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}

// LogMailer logs emails instead of sending them. Bodies carry live tokens, so they
// only appear at debug level.
type LogMailer struct {
	Log *logrus.Logger
}

func (m *LogMailer) Send(to, subject, body string) error {
	entry := m.Log.WithFields(logrus.Fields{"to": to, "subject": subject})
	entry.Info("email not sent, no SMTP host configured")
	entry.Debug(body)
	return nil
}

// SendAsync fires the email in the background and logs a failed send.
func SendAsync(m Mailer, log *logrus.Logger, to, subject, body string) {
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			log.WithError(err).WithFields(logrus.Fields{"to": to, "subject": subject}).Error("failed to send email")
		}
	}()
}
