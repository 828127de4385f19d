package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"go.uber.org/zap"
	"course-gate.backend/internal/domain/entities"
	"course-gate.backend/pkg/logger"
)

// SMTPConfig holds configuration for the admin notification mailbox
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	AdminTo   string
}

// SMTPNotifier emails the course admin on every successful student login.
// Delivery is best-effort: errors are logged and never returned to the verifier.
type SMTPNotifier struct {
	config SMTPConfig
}

var sendMail = smtp.SendMail

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(config SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{config: config}
}

// NotifyLogin sends the login notification for an accepted verification
func (n *SMTPNotifier) NotifyLogin(ctx context.Context, student *entities.Student, attempt *entities.LoginAttempt, at time.Time) error {
	// Missing credentials means a dev environment; log what would be sent.
	if n.config.Username == "" || n.config.Password == "" {
		logger.Warn(ctx, "SMTP credentials not configured - login notification not sent",
			zap.String("email", attempt.Email),
			zap.String("ip", attempt.IP),
		)
		return nil
	}

	subject := fmt.Sprintf("Student login: %s", attempt.Email)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Student login</h2>
				<p><strong>%s</strong> signed in at %s.</p>
				<ul>
					<li>IP: %s</li>
					<li>User agent: %s</li>
				</ul>
			</div>
		</body>
		</html>
	`, attempt.Email, at.Format(time.RFC1123), attempt.IP, attempt.UserAgent)

	return n.sendHTMLEmail(n.config.AdminTo, subject, body)
}

func (n *SMTPNotifier) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)

	headers := fmt.Sprintf("From: %s <%s>\r\n", n.config.FromName, n.config.FromEmail)
	headers += fmt.Sprintf("To: %s\r\n", toEmail)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=UTF-8\r\n"

	message := headers + "\r\n" + htmlBody

	serverAddress := n.config.Host + ":" + strconv.Itoa(n.config.Port)
	if err := sendMail(serverAddress, auth, n.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
