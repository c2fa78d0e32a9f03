package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"frtransportes/internal/dto"
	"frtransportes/internal/model"
	"frtransportes/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuitacaoRepo struct {
	quitacoes map[uuid.UUID]*model.QuitacaoPrestador
	createErr error
}

func newStubQuitacaoRepo() *stubQuitacaoRepo {
	return &stubQuitacaoRepo{quitacoes: make(map[uuid.UUID]*model.QuitacaoPrestador)}
}

func (r *stubQuitacaoRepo) Create(_ context.Context, q *model.QuitacaoPrestador) error {
	if r.createErr != nil {
		return r.createErr
	}
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	cp := *q
	r.quitacoes[q.ID] = &cp
	return nil
}

func (r *stubQuitacaoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.QuitacaoPrestador, error) {
	q, ok := r.quitacoes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *q
	return &cp, nil
}

func (r *stubQuitacaoRepo) Update(_ context.Context, q *model.QuitacaoPrestador) error {
	cp := *q
	r.quitacoes[q.ID] = &cp
	return nil
}

func (r *stubQuitacaoRepo) ListByPrestador(_ context.Context, prestadorID uuid.UUID) ([]model.QuitacaoPrestador, error) {
	var out []model.QuitacaoPrestador
	for _, q := range r.quitacoes {
		if q.PrestadorID == prestadorID {
			out = append(out, *q)
		}
	}
	return out, nil
}

var _ repository.QuitacaoRepository = (*stubQuitacaoRepo)(nil)

type quitacaoFixture struct {
	svc           *quitacaoService
	saldo         SaldoService
	quitacoes     *stubQuitacaoRepo
	lancPrestador *stubLancPrestadorRepo
	prestadorID   uuid.UUID
}

func newQuitacaoFixture() *quitacaoFixture {
	f := &quitacaoFixture{
		quitacoes:     newStubQuitacaoRepo(),
		lancPrestador: newStubLancPrestadorRepo(),
		prestadorID:   uuid.New(),
	}
	f.saldo = NewSaldoService(f.lancPrestador)
	svc := NewQuitacaoService(f.quitacoes, f.lancPrestador, f.saldo)
	f.svc = svc.(*quitacaoService)
	// Pinned inside the settled period so the zeroing payment re-aggregates.
	f.svc.agora = func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *quitacaoFixture) saldoAtual(t *testing.T) int64 {
	t.Helper()
	resp, err := f.saldo.CalcularSaldo(context.Background(), f.prestadorID, dto.PeriodoFilter{Inicio: "2024-01-01", Fim: "2024-01-31"})
	require.NoError(t, err)
	return resp.SaldoCentavos
}

func TestQuitarPeriodo_ZeraSaldo(t *testing.T) {
	f := newQuitacaoFixture()
	comissao := seedLancPrestador(f.lancPrestador, f.prestadorID, model.LancamentoComissao, 250, model.PagamentoPago, 5)
	require.Equal(t, int64(250), f.saldoAtual(t))

	resp, err := f.svc.QuitarPeriodo(context.Background(), admin(), f.prestadorID, dto.QuitarPeriodoRequest{Inicio: "2024-01-01", Fim: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, int64(250), resp.SaldoQuitadoCentavos)
	assert.False(t, resp.Revertida)
	require.NotNil(t, resp.LancamentoPagamentoID)
	assert.Contains(t, resp.LancamentoIDs, comissao.ID.String())

	pagamentoID := uuid.MustParse(*resp.LancamentoPagamentoID)
	pagamento, err := f.lancPrestador.FindByID(context.Background(), pagamentoID)
	require.NoError(t, err)
	assert.Equal(t, model.LancamentoPagamento, pagamento.Tipo)
	assert.Equal(t, int64(250), pagamento.ValorCentavos)
	assert.Equal(t, int64(-250), pagamento.ValorAssinadoCentavos())
	assert.Equal(t, model.PagamentoPago, pagamento.StatusPagamento)
	// Company-provider bookkeeping stays out of the company rollup.
	assert.False(t, pagamento.IncluirNoFinanceiro)

	// The period now re-aggregates to zero.
	assert.Equal(t, int64(0), f.saldoAtual(t))
}

func TestQuitarPeriodo_SaldoZeradoConflita(t *testing.T) {
	f := newQuitacaoFixture()

	_, err := f.svc.QuitarPeriodo(context.Background(), admin(), f.prestadorID, dto.QuitarPeriodoRequest{Inicio: "2024-01-01", Fim: "2024-01-31"})
	assert.True(t, IsStateConflict(err))
}

func TestQuitarPeriodo_SaldoNegativoTambemQuita(t *testing.T) {
	f := newQuitacaoFixture()
	seedLancPrestador(f.lancPrestador, f.prestadorID, model.LancamentoVale, 800, model.PagamentoPago, 5)
	require.Equal(t, int64(-800), f.saldoAtual(t))

	resp, err := f.svc.QuitarPeriodo(context.Background(), admin(), f.prestadorID, dto.QuitarPeriodoRequest{Inicio: "2024-01-01", Fim: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, int64(-800), resp.SaldoQuitadoCentavos)
	// Negative magnitude on the pagamento entry flips its contribution to +800.
	assert.Equal(t, int64(0), f.saldoAtual(t))
}

func TestQuitarPeriodo_FalhaNaAuditoriaEhCascata(t *testing.T) {
	f := newQuitacaoFixture()
	seedLancPrestador(f.lancPrestador, f.prestadorID, model.LancamentoComissao, 100, model.PagamentoPago, 5)
	f.quitacoes.createErr = errors.New("db down")

	_, err := f.svc.QuitarPeriodo(context.Background(), admin(), f.prestadorID, dto.QuitarPeriodoRequest{Inicio: "2024-01-01", Fim: "2024-01-31"})
	assert.True(t, IsCascadeFailure(err))
}

func TestReverterQuitacao_RemovePagamentoEMantemRegistro(t *testing.T) {
	f := newQuitacaoFixture()
	seedLancPrestador(f.lancPrestador, f.prestadorID, model.LancamentoComissao, 250, model.PagamentoPago, 5)

	resp, err := f.svc.QuitarPeriodo(context.Background(), admin(), f.prestadorID, dto.QuitarPeriodoRequest{Inicio: "2024-01-01", Fim: "2024-01-31"})
	require.NoError(t, err)
	quitacaoID := uuid.MustParse(resp.ID)
	pagamentoID := uuid.MustParse(*resp.LancamentoPagamentoID)

	revertida, err := f.svc.ReverterQuitacao(context.Background(), quitacaoID)
	require.NoError(t, err)
	assert.True(t, revertida.Revertida)
	require.NotNil(t, revertida.RevertidaEm)
	assert.Nil(t, revertida.LancamentoPagamentoID)

	// The zeroing payment is gone; the balance resurfaces.
	_, err = f.lancPrestador.FindByID(context.Background(), pagamentoID)
	assert.Error(t, err)
	assert.Equal(t, int64(250), f.saldoAtual(t))

	// The audit record itself survives.
	qs, err := f.svc.ListarPorPrestador(context.Background(), f.prestadorID)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.True(t, qs[0].Revertida)
}

func TestReverterQuitacao_SegundaReversaoConflita(t *testing.T) {
	f := newQuitacaoFixture()
	seedLancPrestador(f.lancPrestador, f.prestadorID, model.LancamentoComissao, 250, model.PagamentoPago, 5)

	resp, err := f.svc.QuitarPeriodo(context.Background(), admin(), f.prestadorID, dto.QuitarPeriodoRequest{Inicio: "2024-01-01", Fim: "2024-01-31"})
	require.NoError(t, err)
	quitacaoID := uuid.MustParse(resp.ID)

	_, err = f.svc.ReverterQuitacao(context.Background(), quitacaoID)
	require.NoError(t, err)
	_, err = f.svc.ReverterQuitacao(context.Background(), quitacaoID)
	assert.True(t, IsStateConflict(err))
}

func TestReverterQuitacao_NaoRestauraStatusDasEntradas(t *testing.T) {
	f := newQuitacaoFixture()
	comissao := seedLancPrestador(f.lancPrestador, f.prestadorID, model.LancamentoComissao, 250, model.PagamentoPago, 5)

	resp, err := f.svc.QuitarPeriodo(context.Background(), admin(), f.prestadorID, dto.QuitarPeriodoRequest{Inicio: "2024-01-01", Fim: "2024-01-31"})
	require.NoError(t, err)

	_, err = f.svc.ReverterQuitacao(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)

	// Settlement is a coarse zeroing operation; reverting it never touches
	// the folded entries.
	atual, err := f.lancPrestador.FindByID(context.Background(), comissao.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PagamentoPago, atual.StatusPagamento)
	assert.Equal(t, int64(250), atual.ValorCentavos)
}
