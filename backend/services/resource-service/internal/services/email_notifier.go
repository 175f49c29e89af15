package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// HTML template for the internal review notification.
const reviewEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: monospace; line-height: 1.5; }
  .container { border: 1px solid #ccc; padding: 15px; max-width: 600px; }
  h2 { margin-top: 0; }
  ul { list-style: none; padding: 0; }
  li { margin-bottom: 5px; }
</style>
</head>
<body>
  <div class="container">
    <h2>New Resource Submission</h2>
    <ul>
      <li><strong>Name:</strong> %s</li>
      <li><strong>Type:</strong> %s</li>
      <li><strong>Address:</strong> %s</li>
      <li><strong>Hours:</strong> %s</li>
      <li><strong>Photo:</strong> %s</li>
      <li><strong>Submitted (UTC):</strong> %s</li>
    </ul>
  </div>
</body>
</html>`

type emailSender interface {
	Send(email *mail.SGMailV3) (*sendgridResponse, error)
}

// sendgridResponse mirrors the fields of rest.Response the notifier reads.
type sendgridResponse struct {
	StatusCode int
	Body       string
}

type sendgridSender struct {
	client *sendgrid.Client
}

func (s sendgridSender) Send(email *mail.SGMailV3) (*sendgridResponse, error) {
	resp, err := s.client.Send(email)
	if err != nil {
		return nil, err
	}
	return &sendgridResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

// EmailNotifier mails the review team through SendGrid.
type EmailNotifier struct {
	sender    emailSender
	orgName   string
	fromEmail string
	toEmail   string
}

func NewEmailNotifier(apiKey, orgName, fromEmail, toEmail string) *EmailNotifier {
	return &EmailNotifier{
		sender:    sendgridSender{client: sendgrid.NewSendClient(apiKey)},
		orgName:   orgName,
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

func (n *EmailNotifier) NotifySubmission(_ context.Context, s *models.Submission) error {
	from := mail.NewEmail(n.orgName+" Submissions", n.fromEmail)
	to := mail.NewEmail(n.orgName+" Review", n.toEmail)

	subject := fmt.Sprintf("[Submission][%s] %s", s.Type, s.Name)
	plainText := fmt.Sprintf(
		"A new %s was submitted for review.\n\nName: %s\nAddress: %s\nHours: %s\nPhoto: %s\n",
		s.Type, s.Name, s.Address, utils.Val(s.Hours), utils.Val(s.PhotoURL),
	)
	htmlContent := fmt.Sprintf(
		reviewEmailHTML,
		html.EscapeString(s.Name),
		html.EscapeString(s.Type.String()),
		html.EscapeString(s.Address),
		html.EscapeString(utils.Val(s.Hours)),
		html.EscapeString(utils.Val(s.PhotoURL)),
		s.SubmittedAt.UTC().Format(time.RFC1123Z),
	)

	msg := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	resp, err := n.sender.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
