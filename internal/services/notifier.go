package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/reaktor-issues/backend/internal/logger"
	"github.com/reaktor-issues/backend/internal/models"
)

// NotificationEvent identifies why a notification is being sent.
type NotificationEvent string

const (
	EventCreated         NotificationEvent = "CREATED"
	EventCategoryChanged NotificationEvent = "CATEGORY_CHANGED"
	EventStateChanged    NotificationEvent = "STATE_CHANGED"
	EventSolutionChanged NotificationEvent = "SOLUTION_CHANGED"
)

// Message is a composed notification ready for delivery.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Sender delivers composed messages. Tests inject a fake.
type Sender interface {
	Send(msg *Message) error
}

// SendGridSender delivers messages through the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// NewSendGridSenderFromEnv builds a sender from SENDGRID_* variables.
func NewSendGridSenderFromEnv() *SendGridSender {
	return NewSendGridSender(
		os.Getenv("SENDGRID_API_KEY"),
		os.Getenv("SENDGRID_FROM_NAME"),
		os.Getenv("SENDGRID_FROM_EMAIL"),
	)
}

func (s *SendGridSender) Send(msg *Message) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, recipient := range msg.To {
		p.AddTos(mail.NewEmail(recipient, recipient))
	}
	message.AddPersonalizations(p)

	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail(msg.ReplyTo, msg.ReplyTo))
	}

	message.AddContent(mail.NewContent("text/plain", msg.Body))

	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

// Notifier composes and dispatches incident notifications. Dispatch is
// best-effort and at-most-once: every failure is logged and swallowed, so
// the triggering mutation always reports success regardless of delivery.
type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Notify composes the message for the event and hands it to the sender.
func (n *Notifier) Notify(event NotificationEvent, incident *models.Incident) {
	msg := n.compose(event, incident)
	if msg == nil {
		logger.Warn("Notification skipped: no recipient", map[string]interface{}{
			"component":   "notifier",
			"event":       string(event),
			"incident_id": incident.ID,
		})
		return
	}

	if err := n.sender.Send(msg); err != nil {
		logger.WithError(err, "notifier").Error("Failed to send notification")
		return
	}

	logger.Info("Notification sent", map[string]interface{}{
		"component":   "notifier",
		"event":       string(event),
		"incident_id": incident.ID,
		"recipients":  len(msg.To),
	})
}

// compose builds the per-event message, or nil when the event has no
// reachable recipient.
func (n *Notifier) compose(event NotificationEvent, incident *models.Incident) *Message {
	switch event {
	case EventCreated, EventCategoryChanged:
		// Category changes re-resolve the responsible party, so they reuse
		// the creation message aimed at the (new) responsible.
		if incident.ResponsibleEmail == nil || *incident.ResponsibleEmail == "" {
			return nil
		}
		return &Message{
			To:      []string{*incident.ResponsibleEmail},
			ReplyTo: incident.ReporterEmail,
			Subject: fmt.Sprintf("Nueva incidencia en %s", incident.Location),
			Body: fmt.Sprintf("Detalles de la incidencia:\n\n"+
				"Ubicación: %s\n"+
				"Docente: %s %s (%s)\n"+
				"Descripción: %s\n"+
				"Fecha: %s\n\n"+
				"Este correo ha sido generado automáticamente.",
				incident.Location,
				incident.ReporterName, incident.ReporterSurname, incident.ReporterEmail,
				incident.Description,
				incident.ReportedAt.Format("02-01-2006")),
		}

	case EventStateChanged:
		if incident.ReporterEmail == "" {
			return nil
		}
		return &Message{
			To:      []string{incident.ReporterEmail},
			Subject: fmt.Sprintf("Incidencia actualizada: %s", incident.Location),
			Body: fmt.Sprintf("Su incidencia en %s del %s ha cambiado de estado.\n\n"+
				"Nuevo estado: %s\n\n"+
				"Este correo ha sido generado automáticamente.",
				incident.Location,
				incident.ReportedAt.Format("02-01-2006"),
				incident.State),
		}

	case EventSolutionChanged:
		if incident.ReporterEmail == "" {
			return nil
		}
		solution := ""
		if incident.Solution != nil {
			solution = *incident.Solution
		}
		return &Message{
			To:      []string{incident.ReporterEmail},
			Subject: fmt.Sprintf("Incidencia actualizada: %s", incident.Location),
			Body: fmt.Sprintf("Su incidencia en %s del %s tiene una nueva solución.\n\n"+
				"Solución: %s\n\n"+
				"Este correo ha sido generado automáticamente.",
				incident.Location,
				incident.ReportedAt.Format("02-01-2006"),
				solution),
		}
	}

	return nil
}
