package service

import (
	"context"

	"frtransportes/internal/dto"
	"frtransportes/internal/model"
	"frtransportes/internal/repository"

	"github.com/google/uuid"
)

// SaldoService computes a provider's period balance. The balance is a
// read-time derived view, never stored:
//
//	saldo = comissões_pagas + receitas_pagas − vales_pagos
//	      − (despesas+débitos)_pagos − pagamentos_pagos
//
// Only entries with payment status pago enter the sums. Commission entries
// whose originating order is cancelled are excluded outright. Pending
// entries are counted per type for display but never enter the balance.
type SaldoService interface {
	CalcularSaldo(ctx context.Context, prestadorID uuid.UUID, periodo dto.PeriodoFilter) (*dto.SaldoPrestadorResponse, error)
}

type saldoService struct {
	lancPrestador repository.LancamentoPrestadorRepository
}

func NewSaldoService(lancPrestador repository.LancamentoPrestadorRepository) SaldoService {
	return &saldoService{lancPrestador: lancPrestador}
}

func (s *saldoService) CalcularSaldo(ctx context.Context, prestadorID uuid.UUID, periodo dto.PeriodoFilter) (*dto.SaldoPrestadorResponse, error) {
	inicio, fim, err := parsePeriodo(periodo.Inicio, periodo.Fim)
	if err != nil {
		return nil, err
	}

	entradas, err := s.lancPrestador.ListByPrestadorPeriodo(ctx, prestadorID, inicio, fim)
	if err != nil {
		return nil, err
	}

	resp := &dto.SaldoPrestadorResponse{
		PrestadorID:      prestadorID.String(),
		Inicio:           periodo.Inicio,
		Fim:              periodo.Fim,
		PendentesPorTipo: make(map[string]int),
		LancamentoIDs:    []string{},
	}

	for i := range entradas {
		l := &entradas[i]

		// A cancelled order contributes nothing, even if a stale commission
		// entry somehow kept a non-zero amount.
		if l.Tipo == model.LancamentoComissao && l.Servico != nil && l.Servico.Status == model.StatusCancelado {
			continue
		}

		if l.StatusPagamento != model.PagamentoPago {
			resp.PendentesPorTipo[string(l.Tipo)]++
			continue
		}

		resp.LancamentoIDs = append(resp.LancamentoIDs, l.ID.String())
		switch l.Tipo {
		case model.LancamentoComissao:
			resp.ComissoesPagasCentavos += l.ValorCentavos
		case model.LancamentoReceita:
			resp.ReceitasPagasCentavos += l.ValorCentavos
		case model.LancamentoVale:
			resp.ValesPagosCentavos += l.ValorCentavos
		case model.LancamentoDespesa, model.LancamentoDebito:
			resp.DespesasPagasCentavos += l.ValorCentavos
		case model.LancamentoPagamento:
			resp.PagamentosCentavos += l.ValorCentavos
		}
	}

	resp.SaldoCentavos = resp.ComissoesPagasCentavos +
		resp.ReceitasPagasCentavos -
		resp.ValesPagosCentavos -
		resp.DespesasPagasCentavos -
		resp.PagamentosCentavos

	return resp, nil
}
