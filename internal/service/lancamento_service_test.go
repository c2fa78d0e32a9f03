package service

import (
	"context"
	"testing"

	"frtransportes/internal/dto"
	"frtransportes/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLancamentoFixture() (LancamentoService, *stubLancamentoRepo, *stubLancPrestadorRepo) {
	lanc := newStubLancamentoRepo()
	lancPrest := newStubLancPrestadorRepo()
	return NewLancamentoService(lanc, lancPrest), lanc, lancPrest
}

func TestCriarLancamento_Simples(t *testing.T) {
	svc, lanc, _ := newLancamentoFixture()

	out, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:           "despesa",
		Descricao:      "Combustível",
		ValorCentavos:  8000,
		DataLancamento: "2024-01-15",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "despesa", out[0].Tipo)
	assert.Equal(t, "Combustível", out[0].Descricao)
	assert.Equal(t, int64(8000), out[0].ValorCentavos)
	// Sign-by-type: expenses deduct.
	assert.Equal(t, int64(-8000), out[0].ValorAssinadoCentavos)
	assert.Equal(t, "pendente", out[0].StatusPagamento)
	assert.Len(t, lanc.entradas, 1)
}

func TestCriarLancamento_RecorrenciaMensal(t *testing.T) {
	svc, lanc, _ := newLancamentoFixture()

	out, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:            "receita",
		Descricao:       "Contrato logística",
		ValorCentavos:   50000,
		StatusPagamento: "pago",
		DataLancamento:  "2024-01-15",
		Recorrencia:     &dto.RecorrenciaRequest{Periodicidade: "mensal", Parcelas: 3},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "2024-01-15", out[0].DataLancamento)
	assert.Equal(t, "2024-02-15", out[1].DataLancamento)
	assert.Equal(t, "2024-03-15", out[2].DataLancamento)

	// Only installments after the first carry the suffix.
	assert.Equal(t, "Contrato logística", out[0].Descricao)
	assert.Equal(t, "Contrato logística (Parcela 2/3)", out[1].Descricao)
	assert.Equal(t, "Contrato logística (Parcela 3/3)", out[2].Descricao)

	// Parent keeps its status; siblings are forced pendente.
	assert.Equal(t, "pago", out[0].StatusPagamento)
	assert.Equal(t, "pendente", out[1].StatusPagamento)
	assert.Equal(t, "pendente", out[2].StatusPagamento)

	// All three in one bulk write.
	require.Len(t, lanc.bulks, 1)
	assert.Len(t, lanc.bulks[0], 3)
}

func TestCriarLancamento_RecorrenciaSemanalEQuinzenal(t *testing.T) {
	svc, _, _ := newLancamentoFixture()

	out, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:           "despesa",
		Descricao:      "Aluguel galpão",
		ValorCentavos:  1000,
		DataLancamento: "2024-01-01",
		Recorrencia:    &dto.RecorrenciaRequest{Periodicidade: "semanal", Parcelas: 2},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-08", out[1].DataLancamento)

	out, err = svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:           "despesa",
		Descricao:      "Seguro frota",
		ValorCentavos:  1000,
		DataLancamento: "2024-01-01",
		Recorrencia:    &dto.RecorrenciaRequest{Periodicidade: "quinzenal", Parcelas: 2},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-16", out[1].DataLancamento)
}

func TestCriarLancamento_RecorrenciaDeslocaVencimento(t *testing.T) {
	svc, _, _ := newLancamentoFixture()

	venc := "2024-01-31"
	out, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:           "despesa",
		Descricao:      "Financiamento caminhão",
		ValorCentavos:  120000,
		DataLancamento: "2024-01-10",
		DataVencimento: &venc,
		Recorrencia:    &dto.RecorrenciaRequest{Periodicidade: "mensal", Parcelas: 2},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[1].DataVencimento)
	// Jan 31 + 1 month normalizes per calendar arithmetic.
	assert.Equal(t, "2024-03-02", *out[1].DataVencimento)
}

func TestCriarLancamento_RecorrenciaParcelaUnica(t *testing.T) {
	svc, _, _ := newLancamentoFixture()

	_, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:           "despesa",
		Descricao:      "Pedágio",
		ValorCentavos:  500,
		DataLancamento: "2024-01-10",
		Recorrencia:    &dto.RecorrenciaRequest{Periodicidade: "mensal", Parcelas: 1},
	})
	assert.True(t, IsValidation(err))
}

func TestCriarLancamento_RoteadoParaPrestador(t *testing.T) {
	svc, lanc, lancPrest := newLancamentoFixture()

	prestadorID := "7b0f8f1e-3c6a-4f2b-9d5e-8a1c2b3d4e5f"
	out, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:           "vale",
		Descricao:      "Adiantamento semana 3",
		ValorCentavos:  15000,
		DataLancamento: "2024-01-15",
		PrestadorID:    &prestadorID,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].PrestadorID)
	assert.Equal(t, prestadorID, *out[0].PrestadorID)
	require.NotNil(t, out[0].IncluirNoFinanceiro)
	assert.True(t, *out[0].IncluirNoFinanceiro)
	assert.Equal(t, int64(-15000), out[0].ValorAssinadoCentavos)

	// Provider entries never touch the company ledger.
	assert.Empty(t, lanc.entradas)
	assert.Len(t, lancPrest.entradas, 1)
}

func TestCriarLancamento_DataInvalida(t *testing.T) {
	svc, _, _ := newLancamentoFixture()

	_, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:           "despesa",
		Descricao:      "Pedágio",
		ValorCentavos:  500,
		DataLancamento: "15/01/2024",
	})
	assert.True(t, IsValidation(err))
}

func TestListarLancamentos_PeriodoInvertido(t *testing.T) {
	svc, _, _ := newLancamentoFixture()

	_, err := svc.Listar(context.Background(), dto.LancamentoFilter{Inicio: "2024-02-01", Fim: "2024-01-01"})
	assert.True(t, IsValidation(err))
}

func TestListarLancamentos_FimInclusivo(t *testing.T) {
	svc, lanc, _ := newLancamentoFixture()

	_, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Tipo:           "receita",
		Descricao:      "Frete avulso",
		ValorCentavos:  3000,
		DataLancamento: "2024-01-31",
	})
	require.NoError(t, err)
	require.Len(t, lanc.entradas, 1)

	out, err := svc.Listar(context.Background(), dto.LancamentoFilter{Inicio: "2024-01-01", Fim: "2024-01-31"})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	// Sign-by-type on read as well.
	assert.Equal(t, int64(3000), out[0].ValorAssinadoCentavos)
	assert.Equal(t, model.LancamentoReceita, model.TipoLancamento(out[0].Tipo))
}
