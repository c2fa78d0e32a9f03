package worker

// notificacao_worker.go
// Processes notification jobs from QueueNotificacao: assignment notices sent
// to providers and lateness reminders produced by the atraso cron.

import (
	"context"
	"encoding/json"
	"time"

	"frtransportes/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NotificacaoPayload is the job envelope sent to QueueNotificacao.
type NotificacaoPayload struct {
	Destinatario string `json:"destinatario"`
	Assunto      string `json:"assunto"`
	Mensagem     string `json:"mensagem"`
}

// NotificacaoWorker delivers notifications via the configured sender.
type NotificacaoWorker struct {
	notificador infra.Notificador
	rdb         *redis.Client
}

func NewNotificacaoWorker(notificador infra.Notificador, rdb *redis.Client) *NotificacaoWorker {
	return &NotificacaoWorker{notificador: notificador, rdb: rdb}
}

const maxNotificacaoAttempts = 3

// Process sends one notification, retrying with exponential backoff. A job
// that exhausts its attempts lands in the DLQ for manual inspection.
func (w *NotificacaoWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificacaoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notificacao_worker: invalid payload")
		return
	}
	if payload.Destinatario == "" {
		log.Warn().Msg("notificacao_worker: empty destinatario — skipping")
		return
	}

	err := withRetry(ctx, maxNotificacaoAttempts, func(attempt int) error {
		sendErr := w.notificador.Enviar(payload.Destinatario, payload.Assunto, payload.Mensagem)
		if sendErr != nil {
			log.Warn().
				Err(sendErr).
				Int("attempt", attempt+1).
				Str("destinatario", payload.Destinatario).
				Msg("notificacao_worker: send attempt failed, retrying")
		}
		return sendErr
	})
	if err != nil {
		log.Error().Err(err).Str("destinatario", payload.Destinatario).Msg("notificacao_worker: all attempts failed")
		SendToDLQ(ctx, w.rdb, QueueNotificacao, "notificacao", raw, err.Error(), maxNotificacaoAttempts)
		return
	}
	log.Info().Str("destinatario", payload.Destinatario).Msg("notificacao_worker: notificação enviada")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
