package service

import (
	"context"
	"fmt"
	"time"

	"frtransportes/internal/dto"
	"frtransportes/internal/model"
	"frtransportes/internal/repository"

	"github.com/google/uuid"
)

type LancamentoService interface {
	// Criar posts a ledger entry; with Recorrencia set it expands into N
	// installments created as one bulk operation.
	Criar(ctx context.Context, req dto.CriarLancamentoRequest) ([]dto.LancamentoResponse, error)
	Listar(ctx context.Context, filter dto.LancamentoFilter) ([]dto.LancamentoResponse, error)
}

type lancamentoService struct {
	lancamentos   repository.LancamentoRepository
	lancPrestador repository.LancamentoPrestadorRepository
	agora         func() time.Time
}

func NewLancamentoService(
	lancamentos repository.LancamentoRepository,
	lancPrestador repository.LancamentoPrestadorRepository,
) LancamentoService {
	return &lancamentoService{
		lancamentos:   lancamentos,
		lancPrestador: lancPrestador,
		agora:         time.Now,
	}
}

const dataLayout = "2006-01-02"

func (s *lancamentoService) Criar(ctx context.Context, req dto.CriarLancamentoRequest) ([]dto.LancamentoResponse, error) {
	dataLancamento, err := time.Parse(dataLayout, req.DataLancamento)
	if err != nil {
		return nil, validacao("data_lancamento inválida: use YYYY-MM-DD")
	}
	var vencimento *time.Time
	if req.DataVencimento != nil && *req.DataVencimento != "" {
		v, err := time.Parse(dataLayout, *req.DataVencimento)
		if err != nil {
			return nil, validacao("data_vencimento inválida: use YYYY-MM-DD")
		}
		vencimento = &v
	}

	status := model.PagamentoPendente
	if req.StatusPagamento != "" {
		status = model.StatusPagamento(req.StatusPagamento)
	}

	var servicoID *uuid.UUID
	if req.ServicoID != nil {
		sid, err := uuid.Parse(*req.ServicoID)
		if err != nil {
			return nil, validacao("servico_id inválido")
		}
		servicoID = &sid
	}

	parcelas := 1
	periodicidade := model.PeriodicidadeMensal
	if req.Recorrencia != nil {
		parcelas = req.Recorrencia.Parcelas
		periodicidade = model.Periodicidade(req.Recorrencia.Periodicidade)
		if parcelas < 2 {
			return nil, validacao("recorrência requer ao menos 2 parcelas")
		}
	}

	if req.PrestadorID != nil {
		return s.criarPrestador(ctx, req, dataLancamento, vencimento, status, servicoID, parcelas, periodicidade)
	}
	return s.criarEmpresa(ctx, req, dataLancamento, vencimento, status, servicoID, parcelas, periodicidade)
}

func (s *lancamentoService) criarEmpresa(
	ctx context.Context,
	req dto.CriarLancamentoRequest,
	data time.Time, vencimento *time.Time,
	status model.StatusPagamento,
	servicoID *uuid.UUID,
	parcelas int, periodicidade model.Periodicidade,
) ([]dto.LancamentoResponse, error) {
	entradas := make([]model.Lancamento, 0, parcelas)
	for i := 1; i <= parcelas; i++ {
		dataP, vencP := deslocarParcela(data, vencimento, periodicidade, i)
		entradas = append(entradas, model.Lancamento{
			Tipo:            model.TipoLancamento(req.Tipo),
			Descricao:       descricaoParcela(req.Descricao, i, parcelas),
			ValorCentavos:   req.ValorCentavos,
			StatusPagamento: statusParcela(status, i),
			DataLancamento:  dataP,
			DataVencimento:  vencP,
			ServicoID:       servicoID,
		})
	}

	// One bulk create — a partial failure surfaces to the caller instead of
	// silently leaving the parent without its siblings.
	if err := s.lancamentos.BulkCreate(ctx, entradas); err != nil {
		return nil, err
	}

	out := make([]dto.LancamentoResponse, 0, len(entradas))
	for i := range entradas {
		out = append(out, lancamentoToResponse(&entradas[i]))
	}
	return out, nil
}

func (s *lancamentoService) criarPrestador(
	ctx context.Context,
	req dto.CriarLancamentoRequest,
	data time.Time, vencimento *time.Time,
	status model.StatusPagamento,
	servicoID *uuid.UUID,
	parcelas int, periodicidade model.Periodicidade,
) ([]dto.LancamentoResponse, error) {
	prestadorID, err := uuid.Parse(*req.PrestadorID)
	if err != nil {
		return nil, validacao("prestador_id inválido")
	}
	incluir := true
	if req.IncluirNoFinanceiro != nil {
		incluir = *req.IncluirNoFinanceiro
	}

	entradas := make([]model.LancamentoPrestador, 0, parcelas)
	for i := 1; i <= parcelas; i++ {
		dataP, vencP := deslocarParcela(data, vencimento, periodicidade, i)
		entradas = append(entradas, model.LancamentoPrestador{
			PrestadorID:         prestadorID,
			Tipo:                model.TipoLancamento(req.Tipo),
			Descricao:           descricaoParcela(req.Descricao, i, parcelas),
			ValorCentavos:       req.ValorCentavos,
			StatusPagamento:     statusParcela(status, i),
			DataLancamento:      dataP,
			DataVencimento:      vencP,
			ServicoID:           servicoID,
			IncluirNoFinanceiro: incluir,
		})
	}

	if err := s.lancPrestador.BulkCreate(ctx, entradas); err != nil {
		return nil, err
	}

	out := make([]dto.LancamentoResponse, 0, len(entradas))
	for i := range entradas {
		out = append(out, lancamentoPrestadorToResponse(&entradas[i]))
	}
	return out, nil
}

func (s *lancamentoService) Listar(ctx context.Context, filter dto.LancamentoFilter) ([]dto.LancamentoResponse, error) {
	inicio, fim, err := parsePeriodo(filter.Inicio, filter.Fim)
	if err != nil {
		return nil, err
	}
	ls, err := s.lancamentos.ListByPeriodo(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LancamentoResponse, 0, len(ls))
	for i := range ls {
		out = append(out, lancamentoToResponse(&ls[i]))
	}
	return out, nil
}

// ── Installment expansion ────────────────────────────────────────────────────
// Installment i (1-based) is offset from the parent by (i-1) steps: 7 days
// weekly, 15 days biweekly, or one calendar month. Both the posting date and
// the due date (when present) shift.

func deslocarParcela(data time.Time, vencimento *time.Time, p model.Periodicidade, i int) (time.Time, *time.Time) {
	passo := i - 1
	desloca := func(t time.Time) time.Time {
		switch p {
		case model.PeriodicidadeSemanal:
			return t.AddDate(0, 0, 7*passo)
		case model.PeriodicidadeQuinzenal:
			return t.AddDate(0, 0, 15*passo)
		default: // mensal
			return t.AddDate(0, passo, 0)
		}
	}
	var venc *time.Time
	if vencimento != nil {
		v := desloca(*vencimento)
		venc = &v
	}
	return desloca(data), venc
}

// descricaoParcela suffixes every installment after the first.
func descricaoParcela(base string, i, total int) string {
	if total <= 1 || i == 1 {
		return base
	}
	return fmt.Sprintf("%s (Parcela %d/%d)", base, i, total)
}

// statusParcela forces every installment after the parent to pendente,
// regardless of the parent's payment status.
func statusParcela(parent model.StatusPagamento, i int) model.StatusPagamento {
	if i == 1 {
		return parent
	}
	return model.PagamentoPendente
}

func parsePeriodo(inicio, fim string) (time.Time, time.Time, error) {
	i, err := time.Parse(dataLayout, inicio)
	if err != nil {
		return time.Time{}, time.Time{}, validacao("inicio inválido: use YYYY-MM-DD")
	}
	f, err := time.Parse(dataLayout, fim)
	if err != nil {
		return time.Time{}, time.Time{}, validacao("fim inválido: use YYYY-MM-DD")
	}
	if f.Before(i) {
		return time.Time{}, time.Time{}, validacao("fim anterior ao início")
	}
	// Fim is inclusive: extend to end of day.
	f = f.Add(24*time.Hour - time.Nanosecond)
	return i, f, nil
}

func lancamentoToResponse(l *model.Lancamento) dto.LancamentoResponse {
	var servicoID, prestadorID *string
	if l.ServicoID != nil {
		s := l.ServicoID.String()
		servicoID = &s
	}
	if l.PrestadorID != nil {
		p := l.PrestadorID.String()
		prestadorID = &p
	}
	var venc *string
	if l.DataVencimento != nil {
		v := l.DataVencimento.Format(dataLayout)
		venc = &v
	}
	return dto.LancamentoResponse{
		ID:                    l.ID.String(),
		Tipo:                  string(l.Tipo),
		Descricao:             l.Descricao,
		ValorCentavos:         l.ValorCentavos,
		ValorAssinadoCentavos: l.ValorAssinadoCentavos(),
		StatusPagamento:       string(l.StatusPagamento),
		DataLancamento:        l.DataLancamento.Format(dataLayout),
		DataVencimento:        venc,
		ServicoID:             servicoID,
		PrestadorID:           prestadorID,
	}
}

func lancamentoPrestadorToResponse(l *model.LancamentoPrestador) dto.LancamentoResponse {
	var servicoID *string
	if l.ServicoID != nil {
		s := l.ServicoID.String()
		servicoID = &s
	}
	prestadorID := l.PrestadorID.String()
	var venc *string
	if l.DataVencimento != nil {
		v := l.DataVencimento.Format(dataLayout)
		venc = &v
	}
	incluir := l.IncluirNoFinanceiro
	return dto.LancamentoResponse{
		ID:                    l.ID.String(),
		Tipo:                  string(l.Tipo),
		Descricao:             l.Descricao,
		ValorCentavos:         l.ValorCentavos,
		ValorAssinadoCentavos: l.ValorAssinadoCentavos(),
		StatusPagamento:       string(l.StatusPagamento),
		DataLancamento:        l.DataLancamento.Format(dataLayout),
		DataVencimento:        venc,
		ServicoID:             servicoID,
		PrestadorID:           &prestadorID,
		IncluirNoFinanceiro:   &incluir,
	}
}
