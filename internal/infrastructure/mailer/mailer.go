package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/config"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
)

// sender - часть mail.Client, которой пользуется mailer
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type mailer struct {
	client   sender
	from     string
	fromName string
	notifyTo []string
	logger   *zap.Logger
}

// NewMailer создает SMTP-отправщик уведомлений о заявках
func NewMailer(smtpCfg *config.SMTPConfig, mailCfg *config.MailConfig, logger *zap.Logger) (repository.LeadNotifier, error) {
	opts := []mail.Option{mail.WithPort(smtpCfg.Port)}
	if smtpCfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtpCfg.Username),
			mail.WithPassword(smtpCfg.Password),
		)
	}
	if smtpCfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(smtpCfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return newMailer(client, mailCfg, logger), nil
}

func newMailer(client sender, mailCfg *config.MailConfig, logger *zap.Logger) *mailer {
	return &mailer{
		client:   client,
		from:     mailCfg.From,
		fromName: mailCfg.FromName,
		notifyTo: mailCfg.NotifyTo,
		logger:   logger,
	}
}

// NotifyLead отправляет заявку в почтовый ящик агентства; Reply-To указывает на клиента
func (m *mailer) NotifyLead(ctx context.Context, event domain.LeadCreatedEvent) error {
	msg, err := m.buildLeadMessage(event)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send lead notification: %w", err)
	}

	m.logger.Info("Lead notification sent",
		zap.Int64("lead_id", event.LeadID),
		zap.Strings("to", m.notifyTo))
	return nil
}

func (m *mailer) buildLeadMessage(event domain.LeadCreatedEvent) (*mail.Msg, error) {
	if len(m.notifyTo) == 0 {
		return nil, fmt.Errorf("no notification recipients configured")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.notifyTo...); err != nil {
		return nil, fmt.Errorf("invalid notify address: %w", err)
	}
	if err := msg.ReplyToFormat(event.Name, event.Email); err != nil {
		// письмо всё равно полезно без Reply-To
		m.logger.Warn("Invalid lead email for Reply-To", zap.String("email", event.Email), zap.Error(err))
	}

	text := leadTexts[event.Locale]
	if text.subject == "" {
		text = leadTexts[domain.LocaleES]
	}

	msg.Subject(fmt.Sprintf(text.subject, event.Name))
	msg.SetBodyString(mail.TypeTextPlain, renderLeadBody(text, event))
	return msg, nil
}

type leadText struct {
	subject string
	name    string
	email   string
	phone   string
	tour    string
	message string
	locale  string
}

var leadTexts = map[domain.Locale]leadText{
	domain.LocaleES: {
		subject: "Nueva solicitud de contacto: %s",
		name:    "Nombre",
		email:   "Correo",
		phone:   "Teléfono",
		tour:    "Tour",
		message: "Mensaje",
		locale:  "Idioma",
	},
	domain.LocaleEN: {
		subject: "New contact request: %s",
		name:    "Name",
		email:   "Email",
		phone:   "Phone",
		tour:    "Tour",
		message: "Message",
		locale:  "Language",
	},
}

func renderLeadBody(text leadText, event domain.LeadCreatedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", text.name, event.Name)
	fmt.Fprintf(&b, "%s: %s\n", text.email, event.Email)
	if event.Phone != nil && *event.Phone != "" {
		fmt.Fprintf(&b, "%s: %s\n", text.phone, *event.Phone)
	}
	if event.TourTitle != nil {
		fmt.Fprintf(&b, "%s: %s", text.tour, *event.TourTitle)
		if event.TourID != nil {
			fmt.Fprintf(&b, " (#%d)", *event.TourID)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s: %s\n\n", text.locale, event.Locale)
	fmt.Fprintf(&b, "%s:\n%s\n", text.message, event.Message)
	return b.String()
}
