package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/metrics"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

var contactTemplate = template.Must(template.New("contact").Parse(`
<h3>New Contact Request from {{.Site}}</h3>
<table style="border-collapse: collapse; width: 100%; font-family: Arial, sans-serif;">
  <tr>
    <th style="border: 1px solid #dddddd; padding: 8px; background-color: #f2f2f2;">Field</th>
    <th style="border: 1px solid #dddddd; padding: 8px; background-color: #f2f2f2;">Details</th>
  </tr>
  <tr>
    <td style="border: 1px solid #dddddd; padding: 8px;">Name</td>
    <td style="border: 1px solid #dddddd; padding: 8px;">{{.Query.Name}}</td>
  </tr>
  <tr>
    <td style="border: 1px solid #dddddd; padding: 8px;">Email</td>
    <td style="border: 1px solid #dddddd; padding: 8px;">{{.Query.Email}}</td>
  </tr>
  <tr>
    <td style="border: 1px solid #dddddd; padding: 8px;">Phone</td>
    <td style="border: 1px solid #dddddd; padding: 8px;">{{.Query.Phone}}</td>
  </tr>
  <tr>
    <td style="border: 1px solid #dddddd; padding: 8px;">Message</td>
    <td style="border: 1px solid #dddddd; padding: 8px;">{{.Query.Message}}</td>
  </tr>
</table>
<p style="font-family: Arial, sans-serif; color: #555;">This is a service query message. Please do reply as soon as possible.</p>
`))

// Sender is satisfied by Mailer.
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// ContactNotifier emails the site operator whenever a contact query is stored.
type ContactNotifier struct {
	sender    Sender
	recipient string
	site      string
}

func NewContactNotifier(sender Sender, recipient, site string) *ContactNotifier {
	if site == "" {
		site = "the website"
	}
	return &ContactNotifier{sender: sender, recipient: recipient, site: site}
}

// NotifyContactQuery sends one HTML email describing query.
func (n *ContactNotifier) NotifyContactQuery(ctx context.Context, query *models.ContactQuery) error {
	err := n.notify(ctx, query)
	metrics.Notifications.WithLabelValues(metrics.Status(err)).Inc()
	return err
}

func (n *ContactNotifier) notify(ctx context.Context, query *models.ContactQuery) error {
	if n.recipient == "" {
		return errs.NewConfigError("CONTACT_NOTIFY_EMAIL")
	}
	body, err := RenderContactEmail(n.site, query)
	if err != nil {
		return err
	}
	id, err := n.sender.Send(ctx, Email{
		To:      []string{n.recipient},
		Subject: fmt.Sprintf("New Contact Request from %s", query.Name),
		Html:    body,
		ReplyTo: query.Email,
	})
	if err != nil {
		return err
	}
	log.Debug().Str("emailId", id).Str("contactQueryId", query.ID.String()).Msg("contact notification sent")
	return nil
}

// RenderContactEmail renders the operator notification. Submitted values are
// HTML-escaped.
func RenderContactEmail(site string, query *models.ContactQuery) (string, error) {
	var buf bytes.Buffer
	err := contactTemplate.Execute(&buf, struct {
		Site  string
		Query *models.ContactQuery
	}{Site: site, Query: query})
	if err != nil {
		return "", fmt.Errorf("render contact email: %w", err)
	}
	return buf.String(), nil
}
