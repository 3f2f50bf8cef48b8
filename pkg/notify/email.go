package notify

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const appName = "CCT"

var messageTemplate = template.Must(template.New("message").Parse(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: sans-serif; color: #333;">
  <h2>{{.Title}}</h2>
  <p>Hello {{.UserName}},</p>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
  {{if .Code}}<p style="font-size: 28px; font-weight: 700; letter-spacing: 4px;">{{.Code}}</p>{{end}}
  <p style="font-size: 12px; color: #888;">This is an automated message from {{.AppName}}, please do not reply.</p>
</body>
</html>`))

type messageData struct {
	Title    string
	UserName string
	Message  string
	Code     string
	AppName  string
}

type EmailChannel struct {
	host     string
	port     int
	username string
	password string
	from     string

	// send delivers a composed mail; replaced in tests.
	send func(e *email.Email) error
}

func NewEmailChannel(cfg common.Config) *EmailChannel {
	ec := &EmailChannel{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
	}
	ec.send = ec.sendWithStartTLS
	return ec
}

func (ec *EmailChannel) sendWithStartTLS(e *email.Email) error {
	var auth smtp.Auth
	if ec.username != "" {
		auth = smtp.PlainAuth("", ec.username, ec.password, ec.host)
	}
	return e.SendWithStartTLS(
		fmt.Sprintf("%s:%d", ec.host, ec.port),
		auth,
		&tls.Config{ServerName: ec.host},
	)
}

func (ec *EmailChannel) compose(to string, subject string, data messageData) (*email.Email, error) {
	data.AppName = appName
	var html bytes.Buffer
	if err := messageTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render email: %w", err)
	}

	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", appName, ec.from)
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(data.Message)
	e.HTML = html.Bytes()
	return e, nil
}

func (ec *EmailChannel) Send(user *models.User, title string, message string) bool {
	logger := notifyLogger(models.ChannelEmail)

	if user.Email == "" {
		return false
	}

	e, err := ec.compose(user.Email, title, messageData{Title: title, UserName: user.Username, Message: message})
	if err != nil {
		logger.Error("Compose email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return false
	}
	if err := ec.send(e); err != nil {
		logger.Error("Send email failed", zap.Uint("user_id", user.ID), zap.String("to", user.Email), zap.Error(err))
		return false
	}

	logger.Info("Email sent", zap.Uint("user_id", user.ID), zap.String("title", title))
	return true
}

// SendOTP mails a verification code.
func (ec *EmailChannel) SendOTP(to string, username string, code string) error {
	e, err := ec.compose(to, "Verify Your Email Address", messageData{
		Title:    "Email Verification",
		UserName: username,
		Message:  "Please use the verification code below to confirm your email address:",
		Code:     code,
	})
	if err != nil {
		return err
	}
	if err := ec.send(e); err != nil {
		return err
	}

	notifyLogger(models.ChannelEmail).Info("OTP email sent", zap.String("to", to))
	return nil
}
