package worker

// email_worker.go
// Processes email jobs from QueueEmail: critical alert mail to the
// administrators and sale summaries to customers.

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/4ndreams/GPS-sub001/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail. AdjuntoPath, when
// set, points to a receipt PDF on local disk to attach.
type EmailJobPayload struct {
	ToEmail     string `json:"to_email"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	AdjuntoPath string `json:"adjunto_path,omitempty"`
}

// EmailWorker sends outbound mail via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email. A returned error triggers retry/DLQ handling in
// the pool; an empty destination is dropped silently (nothing to retry).
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return errors.New("invalid payload")
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	var adjuntos []string
	if payload.AdjuntoPath != "" {
		adjuntos = append(adjuntos, payload.AdjuntoPath)
	}
	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, adjuntos...); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent")
	return nil
}
