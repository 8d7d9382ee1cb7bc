package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
)

// EmailDispatcher notifies both parties of a match over SMTP.
type EmailDispatcher struct {
	host     string
	port     int
	from     string
	password string
	logger   *zap.Logger
}

// NewEmailDispatcher creates the SMTP notification channel.
func NewEmailDispatcher(host string, port int, from, password string, logger *zap.Logger) *EmailDispatcher {
	return &EmailDispatcher{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		logger:   logger,
	}
}

// NotifyMatch emails the lost-item owner and the finder. A party
// without a reporter email is skipped, not treated as a failure.
func (d *EmailDispatcher) NotifyMatch(_ context.Context, match *models.Match, lost *models.LostItem, found *models.FoundItem) error {
	confidencePct := int(match.ConfidenceScore * 100)

	var failed []string
	if lost.ReporterEmail != "" {
		subject := fmt.Sprintf("Possible match for your lost %s", lost.ItemName)
		body := fmt.Sprintf(
			"Good news!\n\n"+
				"Someone reported a found item that looks like your lost %q (match confidence %d%%).\n\n"+
				"Found item: %s\n"+
				"Found near: %s\n\n"+
				"Log in to review the match and contact the finder.\n",
			lost.ItemName, confidencePct, found.ItemName, found.Location)
		if err := d.send(lost.ReporterEmail, subject, body); err != nil {
			d.logger.Error("Failed to email lost-item owner",
				zap.Int64("match_id", match.ID), zap.Error(err))
			failed = append(failed, "owner")
		}
	}

	if found.ReporterEmail != "" {
		subject := fmt.Sprintf("The %s you found may have an owner", found.ItemName)
		body := fmt.Sprintf(
			"Thank you for reporting a found item!\n\n"+
				"Someone reported losing an item matching the %q you found (match confidence %d%%).\n\n"+
				"Lost item: %s\n"+
				"Lost near: %s\n\n"+
				"Log in to review the match and help reunite them.\n",
			found.ItemName, confidencePct, lost.ItemName, lost.Location)
		if err := d.send(found.ReporterEmail, subject, body); err != nil {
			d.logger.Error("Failed to email finder",
				zap.Int64("match_id", match.ID), zap.Error(err))
			failed = append(failed, "finder")
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("email delivery failed for: %s", strings.Join(failed, ", "))
	}
	return nil
}

func (d *EmailDispatcher) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + d.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", d.host, d.port)
	auth := smtp.PlainAuth("", d.from, d.password, d.host)
	return smtp.SendMail(addr, auth, d.from, []string{to}, []byte(msg))
}
