package service

import (
	"context"
	"fmt"
	"time"

	"frtransportes/internal/dto"
	"frtransportes/internal/model"
	"frtransportes/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// QuitacaoService settles a provider's period balance: it posts a
// pagamento entry that zeroes the balance and records a reversible audit
// trail of what was folded in.
type QuitacaoService interface {
	QuitarPeriodo(ctx context.Context, ator Ator, prestadorID uuid.UUID, req dto.QuitarPeriodoRequest) (*dto.QuitacaoResponse, error)
	ReverterQuitacao(ctx context.Context, id uuid.UUID) (*dto.QuitacaoResponse, error)
	ListarPorPrestador(ctx context.Context, prestadorID uuid.UUID) ([]dto.QuitacaoResponse, error)
}

type quitacaoService struct {
	quitacoes     repository.QuitacaoRepository
	lancPrestador repository.LancamentoPrestadorRepository
	saldo         SaldoService
	agora         func() time.Time
}

func NewQuitacaoService(
	quitacoes repository.QuitacaoRepository,
	lancPrestador repository.LancamentoPrestadorRepository,
	saldo SaldoService,
) QuitacaoService {
	return &quitacaoService{
		quitacoes:     quitacoes,
		lancPrestador: lancPrestador,
		saldo:         saldo,
		agora:         time.Now,
	}
}

// QuitarPeriodo zeroes a non-zero period balance. The generated pagamento
// entry carries the balance as its magnitude — the sign-by-type rule makes
// its effective contribution −saldo, so the period re-aggregates to zero.
func (s *quitacaoService) QuitarPeriodo(ctx context.Context, ator Ator, prestadorID uuid.UUID, req dto.QuitarPeriodoRequest) (*dto.QuitacaoResponse, error) {
	saldo, err := s.saldo.CalcularSaldo(ctx, prestadorID, dto.PeriodoFilter{Inicio: req.Inicio, Fim: req.Fim})
	if err != nil {
		return nil, err
	}
	if saldo.SaldoCentavos == 0 {
		return nil, conflito("saldo do período já está zerado, nada a quitar")
	}

	inicio, fim, err := parsePeriodo(req.Inicio, req.Fim)
	if err != nil {
		return nil, err
	}

	pagamento := model.LancamentoPrestador{
		PrestadorID:     prestadorID,
		Tipo:            model.LancamentoPagamento,
		Descricao:       fmt.Sprintf("Quitação período %s a %s", req.Inicio, req.Fim),
		ValorCentavos:   saldo.SaldoCentavos,
		StatusPagamento: model.PagamentoPago,
		DataLancamento:  s.agora(),
		// The zeroing payment is bookkeeping between company and provider —
		// it stays out of the company-wide rollup.
		IncluirNoFinanceiro: false,
	}
	if err := s.lancPrestador.Create(ctx, nil, &pagamento); err != nil {
		return nil, err
	}

	quitacao := model.QuitacaoPrestador{
		PrestadorID:           prestadorID,
		PeriodoInicio:         inicio,
		PeriodoFim:            fim,
		SaldoQuitadoCentavos:  saldo.SaldoCentavos,
		LancamentoIDs:         saldo.LancamentoIDs,
		LancamentoPagamentoID: &pagamento.ID,
		QuitadoPor:            ator.ID,
	}
	if err := s.quitacoes.Create(ctx, &quitacao); err != nil {
		// The payment entry was already written; surface this as a cascade
		// failure so the caller knows the ledger and audit trail diverge.
		return nil, falhaCascata("gravar registro de quitação", err)
	}

	log.Info().
		Str("prestador_id", prestadorID.String()).
		Int64("saldo_centavos", saldo.SaldoCentavos).
		Msg("período quitado")

	return quitacaoToResponse(&quitacao), nil
}

// ReverterQuitacao deletes the zeroing payment entry and flips the audit
// record to revertida. The record itself is never deleted, and a second
// revert is a state conflict.
//
// Reverting does NOT restore the folded entries' payment statuses —
// settlement is a coarse zeroing operation, and the asymmetry is kept.
func (s *quitacaoService) ReverterQuitacao(ctx context.Context, id uuid.UUID) (*dto.QuitacaoResponse, error) {
	quitacao, err := s.quitacoes.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado("quitação")
	}
	if quitacao.Revertida {
		return nil, conflito("quitação já foi revertida")
	}

	if quitacao.LancamentoPagamentoID != nil {
		if err := s.lancPrestador.Delete(ctx, *quitacao.LancamentoPagamentoID); err != nil {
			return nil, falhaCascata("excluir lançamento de quitação", err)
		}
	}

	agora := s.agora()
	quitacao.Revertida = true
	quitacao.RevertidaEm = &agora
	quitacao.LancamentoPagamentoID = nil
	if err := s.quitacoes.Update(ctx, quitacao); err != nil {
		return nil, falhaCascata("marcar quitação como revertida", err)
	}

	return quitacaoToResponse(quitacao), nil
}

func (s *quitacaoService) ListarPorPrestador(ctx context.Context, prestadorID uuid.UUID) ([]dto.QuitacaoResponse, error) {
	qs, err := s.quitacoes.ListByPrestador(ctx, prestadorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuitacaoResponse, 0, len(qs))
	for i := range qs {
		out = append(out, *quitacaoToResponse(&qs[i]))
	}
	return out, nil
}

func quitacaoToResponse(q *model.QuitacaoPrestador) *dto.QuitacaoResponse {
	var pagamentoID *string
	if q.LancamentoPagamentoID != nil {
		p := q.LancamentoPagamentoID.String()
		pagamentoID = &p
	}
	ids := q.LancamentoIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.QuitacaoResponse{
		ID:                    q.ID.String(),
		PrestadorID:           q.PrestadorID.String(),
		Inicio:                q.PeriodoInicio.Format(dataLayout),
		Fim:                   q.PeriodoFim.Format(dataLayout),
		SaldoQuitadoCentavos:  q.SaldoQuitadoCentavos,
		LancamentoIDs:         ids,
		LancamentoPagamentoID: pagamentoID,
		Revertida:             q.Revertida,
		RevertidaEm:           formatTimestamp(q.RevertidaEm),
		CreatedAt:             q.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
