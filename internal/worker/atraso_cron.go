package worker

// atraso_cron.go
// Background goroutine that periodically scans for scheduled orders whose
// scheduled time has passed while still in flight and enqueues a reminder to
// the assigned provider. Lateness is derived at read time — this cron never
// mutates an order. Redis set membership dedups reminders so each order
// triggers at most one.

import (
	"context"
	"fmt"
	"time"

	"frtransportes/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	atrasoTickInterval = 5 * time.Minute
	atrasoBatchSize    = 50
	atrasoSetKey       = "atraso:notificados"
	atrasoSetTTL       = 7 * 24 * time.Hour
)

// AtrasoCronConfig holds all dependencies for the lateness reminder goroutine.
type AtrasoCronConfig struct {
	ServicoRepo   repository.ServicoRepository
	PrestadorRepo repository.PrestadorRepository
	Dispatcher    *Dispatcher
	RDB           *redis.Client
}

// StartAtrasoCron launches a background goroutine that ticks every 5 minutes
// and enqueues reminder notifications for late orders. It respects the
// context for graceful shutdown.
func StartAtrasoCron(ctx context.Context, cfg AtrasoCronConfig) {
	go func() {
		ticker := time.NewTicker(atrasoTickInterval)
		defer ticker.Stop()

		log.Info().Msg("atraso_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("atraso_cron: shutting down")
				return
			case <-ticker.C:
				processAtrasos(ctx, cfg)
			}
		}
	}()
}

func processAtrasos(ctx context.Context, cfg AtrasoCronConfig) {
	agora := time.Now()
	servicos, err := cfg.ServicoRepo.ListAtrasados(ctx, agora, atrasoBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("atraso_cron: failed to query late orders")
		return
	}
	if len(servicos) == 0 {
		return
	}

	log.Info().Int("count", len(servicos)).Msg("atraso_cron: processing late orders")

	for i := range servicos {
		s := &servicos[i]
		if !s.EstaAtrasado(agora) {
			continue
		}

		// One reminder per order — SAdd returns 0 when already a member.
		added, err := cfg.RDB.SAdd(ctx, atrasoSetKey, s.ID.String()).Result()
		if err != nil {
			log.Error().Err(err).Str("servico_id", s.ID.String()).Msg("atraso_cron: dedup check failed")
			continue
		}
		if added == 0 {
			continue
		}
		cfg.RDB.Expire(ctx, atrasoSetKey, atrasoSetTTL)

		prestador, err := cfg.PrestadorRepo.FindByID(ctx, s.PrestadorID)
		if err != nil || prestador.Email == nil || *prestador.Email == "" {
			log.Warn().Str("servico_id", s.ID.String()).Msg("atraso_cron: prestador sem e-mail, lembrete descartado")
			continue
		}

		payload := NotificacaoPayload{
			Destinatario: *prestador.Email,
			Assunto:      fmt.Sprintf("Serviço %s atrasado", s.Numero),
			Mensagem: fmt.Sprintf(
				"O serviço %s estava agendado para %s e ainda não foi concluído.",
				s.Numero, s.AgendadoPara.Format("02/01/2006 15:04")),
		}
		if err := cfg.Dispatcher.EnqueueNotificacao(ctx, payload); err != nil {
			log.Error().Err(err).Str("servico_id", s.ID.String()).Msg("atraso_cron: failed to enqueue reminder")
			continue
		}
		log.Info().
			Str("servico_id", s.ID.String()).
			Str("numero", s.Numero).
			Msg("atraso_cron: lembrete de atraso enfileirado")
	}
}
