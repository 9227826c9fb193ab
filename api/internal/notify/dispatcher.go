package notify

//go:generate mockgen -source=dispatcher.go -destination=mocks/dispatcher_mock.go -package=mocks EmailStore,Mailer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"palmyst/api/internal/apperr"
	"palmyst/api/internal/logger"
	"palmyst/api/internal/mailer"
	"palmyst/api/internal/metrics"
	"palmyst/api/internal/models"
)

const (
	Subject    = "Your PalMyst Reading"
	SenderName = "PalMyst Agent"
)

// EmailStore attaches an email address to a stored reading.
type EmailStore interface {
	UpdateEmail(ctx context.Context, id models.ReadingID, email string) error
}

type Mailer interface {
	Send(ctx context.Context, m mailer.Message) error
}

// Dispatcher records the recipient on the reading and emails the reading text.
type Dispatcher struct {
	store   EmailStore
	mail    Mailer
	from    string
	log     *zap.Logger
	metrics *metrics.Metrics
}

func New(store EmailStore, mail Mailer, fromAddress string, log *zap.Logger, m *metrics.Metrics) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{store: store, mail: mail, from: fromAddress, log: log, metrics: m}
}

// Notify updates the record best-effort, then makes one send attempt.
// Only the send decides the outcome.
func (d *Dispatcher) Notify(ctx context.Context, id models.ReadingID, email, readingText string) error {
	log := logger.FromContext(ctx, d.log).With(zap.Stringer("reading_id", id))

	if err := d.store.UpdateEmail(ctx, id, email); err != nil {
		d.metrics.EmailUpdateFailed()
		log.Warn("attach email to reading failed; sending anyway", zap.Error(err))
	}

	msg := mailer.Message{
		FromName: SenderName,
		From:     d.from,
		To:       email,
		Subject:  Subject,
		Text:     RenderText(readingText),
		HTML:     RenderHTML(readingText),
	}
	if err := d.mail.Send(ctx, msg); err != nil {
		d.metrics.EmailFailed()
		return apperr.Wrap(err, apperr.CodeSendFailure, "send reading email")
	}
	d.metrics.EmailSent()
	log.Info("reading emailed")
	return nil
}

func RenderText(reading string) string {
	return "Greetings,\n\nHere is the personality reading you requested:\n\n---\n\n" +
		reading +
		"\n\n---\n\nFrom the PalMyst Agent."
}

// RenderHTML only turns newlines into <br>. The reading is inserted without
// HTML escaping; see DESIGN.md, "HTML rendering".
func RenderHTML(reading string) string {
	return "<p>Greetings,</p><p>Here is the personality reading you requested:</p><hr><p><em>" +
		strings.ReplaceAll(reading, "\n", "<br>") +
		"</em></p><hr><p>From the PalMyst Agent.</p>"
}
