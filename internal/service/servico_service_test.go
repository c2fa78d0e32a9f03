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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubServicoRepo struct {
	servicos map[uuid.UUID]*model.Servico
	numeros  []string

	seq     int64
	seqErr  error
	listErr error
}

func newStubServicoRepo() *stubServicoRepo {
	return &stubServicoRepo{servicos: make(map[uuid.UUID]*model.Servico)}
}

func (r *stubServicoRepo) Create(_ context.Context, _ *gorm.DB, s *model.Servico) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.servicos[s.ID] = &cp
	r.numeros = append(r.numeros, s.Numero)
	return nil
}

func (r *stubServicoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Servico, error) {
	s, ok := r.servicos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *s
	return &cp, nil
}

func (r *stubServicoRepo) Update(_ context.Context, s *model.Servico) error {
	cp := *s
	r.servicos[s.ID] = &cp
	return nil
}

func (r *stubServicoRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.servicos, id)
	return nil
}

func (r *stubServicoRepo) List(_ context.Context, _ dto.ServicoFilter) ([]model.Servico, int64, error) {
	out := make([]model.Servico, 0, len(r.servicos))
	for _, s := range r.servicos {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubServicoRepo) NextNumero(_ context.Context) (int64, error) {
	if r.seqErr != nil {
		return 0, r.seqErr
	}
	r.seq++
	return r.seq, nil
}

func (r *stubServicoRepo) ListNumeros(_ context.Context) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.numeros, nil
}

func (r *stubServicoRepo) ListAtrasados(_ context.Context, agora time.Time, _ int) ([]model.Servico, error) {
	var out []model.Servico
	for _, s := range r.servicos {
		if s.EstaAtrasado(agora) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubServicoRepo) DB() *gorm.DB { return nil }

var _ repository.ServicoRepository = (*stubServicoRepo)(nil)

type stubLancamentoRepo struct {
	entradas map[uuid.UUID]*model.Lancamento
	bulks    [][]model.Lancamento
}

func newStubLancamentoRepo() *stubLancamentoRepo {
	return &stubLancamentoRepo{entradas: make(map[uuid.UUID]*model.Lancamento)}
}

func (r *stubLancamentoRepo) Create(_ context.Context, _ *gorm.DB, l *model.Lancamento) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cp := *l
	r.entradas[l.ID] = &cp
	return nil
}

func (r *stubLancamentoRepo) BulkCreate(_ context.Context, ls []model.Lancamento) error {
	for i := range ls {
		if ls[i].ID == uuid.Nil {
			ls[i].ID = uuid.New()
		}
		cp := ls[i]
		r.entradas[ls[i].ID] = &cp
	}
	r.bulks = append(r.bulks, ls)
	return nil
}

func (r *stubLancamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lancamento, error) {
	l, ok := r.entradas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *l
	return &cp, nil
}

func (r *stubLancamentoRepo) FindByServicoID(_ context.Context, servicoID uuid.UUID) ([]model.Lancamento, error) {
	var out []model.Lancamento
	for _, l := range r.entradas {
		if l.ServicoID != nil && *l.ServicoID == servicoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLancamentoRepo) Update(_ context.Context, l *model.Lancamento) error {
	cp := *l
	r.entradas[l.ID] = &cp
	return nil
}

func (r *stubLancamentoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entradas, id)
	return nil
}

func (r *stubLancamentoRepo) DeleteByServicoID(_ context.Context, _ *gorm.DB, servicoID uuid.UUID) error {
	for id, l := range r.entradas {
		if l.ServicoID != nil && *l.ServicoID == servicoID {
			delete(r.entradas, id)
		}
	}
	return nil
}

func (r *stubLancamentoRepo) ListByPeriodo(_ context.Context, inicio, fim time.Time) ([]model.Lancamento, error) {
	var out []model.Lancamento
	for _, l := range r.entradas {
		if !l.DataLancamento.Before(inicio) && !l.DataLancamento.After(fim) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLancamentoRepo) DB() *gorm.DB { return nil }

var _ repository.LancamentoRepository = (*stubLancamentoRepo)(nil)

type stubLancPrestadorRepo struct {
	entradas map[uuid.UUID]*model.LancamentoPrestador
}

func newStubLancPrestadorRepo() *stubLancPrestadorRepo {
	return &stubLancPrestadorRepo{entradas: make(map[uuid.UUID]*model.LancamentoPrestador)}
}

func (r *stubLancPrestadorRepo) Create(_ context.Context, _ *gorm.DB, l *model.LancamentoPrestador) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cp := *l
	r.entradas[l.ID] = &cp
	return nil
}

func (r *stubLancPrestadorRepo) BulkCreate(_ context.Context, ls []model.LancamentoPrestador) error {
	for i := range ls {
		if ls[i].ID == uuid.Nil {
			ls[i].ID = uuid.New()
		}
		cp := ls[i]
		r.entradas[ls[i].ID] = &cp
	}
	return nil
}

func (r *stubLancPrestadorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LancamentoPrestador, error) {
	l, ok := r.entradas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *l
	return &cp, nil
}

func (r *stubLancPrestadorRepo) FindByServicoID(_ context.Context, servicoID uuid.UUID) ([]model.LancamentoPrestador, error) {
	var out []model.LancamentoPrestador
	for _, l := range r.entradas {
		if l.ServicoID != nil && *l.ServicoID == servicoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLancPrestadorRepo) Update(_ context.Context, l *model.LancamentoPrestador) error {
	cp := *l
	r.entradas[l.ID] = &cp
	return nil
}

func (r *stubLancPrestadorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.entradas[id]; !ok {
		return errors.New("not found")
	}
	delete(r.entradas, id)
	return nil
}

func (r *stubLancPrestadorRepo) DeleteByServicoID(_ context.Context, _ *gorm.DB, servicoID uuid.UUID) error {
	for id, l := range r.entradas {
		if l.ServicoID != nil && *l.ServicoID == servicoID {
			delete(r.entradas, id)
		}
	}
	return nil
}

func (r *stubLancPrestadorRepo) ListByPrestadorPeriodo(_ context.Context, prestadorID uuid.UUID, inicio, fim time.Time) ([]model.LancamentoPrestador, error) {
	var out []model.LancamentoPrestador
	for _, l := range r.entradas {
		if l.PrestadorID != prestadorID {
			continue
		}
		if !l.DataLancamento.Before(inicio) && !l.DataLancamento.After(fim) {
			out = append(out, *l)
		}
	}
	return out, nil
}

var _ repository.LancamentoPrestadorRepository = (*stubLancPrestadorRepo)(nil)

type stubRecusaRepo struct {
	recusas []model.RecusaServico
}

func (r *stubRecusaRepo) Create(_ context.Context, rec *model.RecusaServico) error {
	r.recusas = append(r.recusas, *rec)
	return nil
}

func (r *stubRecusaRepo) ListByServico(_ context.Context, servicoID uuid.UUID) ([]model.RecusaServico, error) {
	var out []model.RecusaServico
	for _, rec := range r.recusas {
		if rec.ServicoID == servicoID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubRecusaRepo) ListByPrestador(_ context.Context, prestadorID uuid.UUID) ([]model.RecusaServico, error) {
	var out []model.RecusaServico
	for _, rec := range r.recusas {
		if rec.PrestadorID == prestadorID {
			out = append(out, rec)
		}
	}
	return out, nil
}

var _ repository.RecusaRepository = (*stubRecusaRepo)(nil)

type stubPrestadorRepo struct {
	prestadores map[uuid.UUID]*model.Prestador
}

func newStubPrestadorRepo() *stubPrestadorRepo {
	return &stubPrestadorRepo{prestadores: make(map[uuid.UUID]*model.Prestador)}
}

func (r *stubPrestadorRepo) Create(_ context.Context, p *model.Prestador) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.prestadores[p.ID] = p
	return nil
}

func (r *stubPrestadorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Prestador, error) {
	p, ok := r.prestadores[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubPrestadorRepo) List(_ context.Context) ([]model.Prestador, error) {
	var out []model.Prestador
	for _, p := range r.prestadores {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPrestadorRepo) Update(_ context.Context, p *model.Prestador) error {
	r.prestadores[p.ID] = p
	return nil
}

func (r *stubPrestadorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.prestadores[id]; ok {
		p.Ativo = false
	}
	return nil
}

var _ repository.PrestadorRepository = (*stubPrestadorRepo)(nil)

// ── Test fixture ─────────────────────────────────────────────────────────────

type servicoFixture struct {
	svc           *servicoService
	repo          *stubServicoRepo
	lancamentos   *stubLancamentoRepo
	lancPrestador *stubLancPrestadorRepo
	recusas       *stubRecusaRepo
	prestadores   *stubPrestadorRepo
	prestador     *model.Prestador
	agora         time.Time
}

func newServicoFixture(t *testing.T) *servicoFixture {
	t.Helper()
	f := &servicoFixture{
		repo:          newStubServicoRepo(),
		lancamentos:   newStubLancamentoRepo(),
		lancPrestador: newStubLancPrestadorRepo(),
		recusas:       &stubRecusaRepo{},
		prestadores:   newStubPrestadorRepo(),
		agora:         time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	f.prestador = &model.Prestador{
		ID:                 uuid.New(),
		Nome:               "João Motorista",
		PercentualComissao: decimal.NewFromInt(20),
		Ativo:              true,
	}
	require.NoError(t, f.prestadores.Create(context.Background(), f.prestador))

	svc := NewServicoService(f.repo, f.lancamentos, f.lancPrestador, f.recusas, f.prestadores, nil)
	f.svc = svc.(*servicoService)
	f.svc.agora = func() time.Time { return f.agora }
	return f
}

func (f *servicoFixture) criarServico(t *testing.T, ator Ator) *dto.ServicoResponse {
	t.Helper()
	nome := "Mercado Central"
	resp, err := f.svc.Criar(context.Background(), ator, dto.CriarServicoRequest{
		ClienteNome:     &nome,
		PrestadorID:     f.prestador.ID.String(),
		ValorCentavos:   10000,
		MetodoPagamento: "pix",
		Paradas: []dto.ParadaRequest{
			{Tipo: "coleta", Endereco: "Rua A, 100"},
			{Tipo: "entrega", Endereco: "Rua B, 200"},
		},
	})
	require.NoError(t, err)
	return resp
}

func admin() Ator {
	return Ator{ID: uuid.New(), Rol: model.RolAdmin}
}

func operador() Ator {
	return Ator{ID: uuid.New(), Rol: model.RolOperador}
}

func prestadorAtor(prestadorID uuid.UUID) Ator {
	return Ator{ID: uuid.New(), Rol: model.RolPrestador, PrestadorID: &prestadorID}
}

// ── Criar ────────────────────────────────────────────────────────────────────

func TestCriarServico_GeraReceitaEComissao(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())

	assert.Equal(t, "00001", resp.Numero)
	assert.Equal(t, "aguardando_aceite", resp.Status)
	assert.Equal(t, int64(10000), resp.ValorCentavos)
	// 20% of 100.00
	assert.Equal(t, int64(2000), resp.ComissaoCentavos)

	servicoID := uuid.MustParse(resp.ID)
	empresa, _ := f.lancamentos.FindByServicoID(context.Background(), servicoID)
	require.Len(t, empresa, 1)
	assert.Equal(t, model.LancamentoReceita, empresa[0].Tipo)
	assert.Equal(t, int64(10000), empresa[0].ValorCentavos)
	assert.Equal(t, model.PagamentoPendente, empresa[0].StatusPagamento)

	comissoes, _ := f.lancPrestador.FindByServicoID(context.Background(), servicoID)
	require.Len(t, comissoes, 1)
	assert.Equal(t, model.LancamentoComissao, comissoes[0].Tipo)
	assert.Equal(t, int64(2000), comissoes[0].ValorCentavos)
	assert.Equal(t, f.prestador.ID, comissoes[0].PrestadorID)
}

func TestCriarServico_ClienteIDEClienteNomeExclusivos(t *testing.T) {
	f := newServicoFixture(t)
	clienteID := uuid.New().String()
	nome := "Padaria Sul"

	_, err := f.svc.Criar(context.Background(), operador(), dto.CriarServicoRequest{
		ClienteID:       &clienteID,
		ClienteNome:     &nome,
		PrestadorID:     f.prestador.ID.String(),
		ValorCentavos:   5000,
		MetodoPagamento: "dinheiro",
		Paradas: []dto.ParadaRequest{
			{Tipo: "coleta", Endereco: "Rua A, 100"},
			{Tipo: "entrega", Endereco: "Rua B, 200"},
		},
	})
	assert.True(t, IsValidation(err))
}

func TestCriarServico_RotaSemEntrega(t *testing.T) {
	f := newServicoFixture(t)
	nome := "Cliente X"
	_, err := f.svc.Criar(context.Background(), operador(), dto.CriarServicoRequest{
		ClienteNome:     &nome,
		PrestadorID:     f.prestador.ID.String(),
		ValorCentavos:   5000,
		MetodoPagamento: "pix",
		Paradas: []dto.ParadaRequest{
			{Tipo: "coleta", Endereco: "Rua A, 100"},
			{Tipo: "coleta", Endereco: "Rua C, 300"},
		},
	})
	assert.True(t, IsValidation(err))
}

func TestCriarServico_AgendadoSemData(t *testing.T) {
	f := newServicoFixture(t)
	nome := "Cliente Y"
	_, err := f.svc.Criar(context.Background(), operador(), dto.CriarServicoRequest{
		ClienteNome:     &nome,
		PrestadorID:     f.prestador.ID.String(),
		ValorCentavos:   5000,
		MetodoPagamento: "pix",
		Agendado:        true,
		Paradas: []dto.ParadaRequest{
			{Tipo: "coleta", Endereco: "Rua A, 100"},
			{Tipo: "entrega", Endereco: "Rua B, 200"},
		},
	})
	assert.True(t, IsValidation(err))
}

// ── AlocarProximoNumero ──────────────────────────────────────────────────────

func TestAlocarNumero_SequenciaFormatada(t *testing.T) {
	f := newServicoFixture(t)
	n1, err := f.svc.AlocarProximoNumero(context.Background())
	require.NoError(t, err)
	n2, err := f.svc.AlocarProximoNumero(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00001", n1)
	assert.Equal(t, "00002", n2)
}

func TestAlocarNumero_FallbackVarredura(t *testing.T) {
	f := newServicoFixture(t)
	f.repo.seqErr = errors.New("sequence unavailable")
	f.repo.numeros = []string{"00001", "00003", "00007", "LEGADO-9"}

	n, err := f.svc.AlocarProximoNumero(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00008", n)
}

func TestAlocarNumero_FallbackVarreduraVazia(t *testing.T) {
	f := newServicoFixture(t)
	f.repo.seqErr = errors.New("sequence unavailable")

	n, err := f.svc.AlocarProximoNumero(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00001", n)
}

func TestAlocarNumero_ModoDegradadoUnico(t *testing.T) {
	f := newServicoFixture(t)
	f.repo.seqErr = errors.New("sequence unavailable")
	f.repo.listErr = errors.New("scan failed")

	n, err := f.svc.AlocarProximoNumero(context.Background())
	require.NoError(t, err)
	// Clock-derived: unique beats sequential.
	assert.NotEmpty(t, n)
	assert.NotEqual(t, "00001", n)
}

// ── Transicionar ─────────────────────────────────────────────────────────────

func TestTransicao_FluxoCompleto(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)
	ator := prestadorAtor(f.prestador.ID)

	resp, err := f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "aceito"})
	require.NoError(t, err)
	assert.Equal(t, "aceito", resp.Status)
	require.NotNil(t, resp.AceitoEm)

	resp, err = f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "coletado"})
	require.NoError(t, err)
	assert.Equal(t, "coletado", resp.Status)

	resp, err = f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "concluido", MarcarPago: true})
	require.NoError(t, err)
	assert.Equal(t, "concluido", resp.Status)
	assert.Equal(t, "pago", resp.StatusPagamento)
	require.NotNil(t, resp.ConcluidoEm)

	// Completion marked paid flips the linked company entry.
	empresa, _ := f.lancamentos.FindByServicoID(context.Background(), id)
	require.Len(t, empresa, 1)
	assert.Equal(t, model.PagamentoPago, empresa[0].StatusPagamento)
}

func TestTransicao_AceiteIdempotente(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)
	ator := prestadorAtor(f.prestador.ID)

	r1, err := f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "aceito"})
	require.NoError(t, err)

	f.agora = f.agora.Add(time.Hour)
	r2, err := f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "aceito"})
	require.NoError(t, err)
	// Repeated accept never overwrites the original stamp.
	assert.Equal(t, *r1.AceitoEm, *r2.AceitoEm)
	assert.Equal(t, *r1.AceitoPor, *r2.AceitoPor)
}

func TestTransicao_SaltoInvalido(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Transicionar(context.Background(), prestadorAtor(f.prestador.ID), id, dto.TransicaoRequest{Alvo: "concluido"})
	assert.True(t, IsStateConflict(err))
}

func TestTransicao_AceitePorOutroPrestador(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	outro := prestadorAtor(uuid.New())
	_, err := f.svc.Transicionar(context.Background(), outro, id, dto.TransicaoRequest{Alvo: "aceito"})
	assert.True(t, IsStateConflict(err))
}

func TestTransicao_RecusaExigeMotivo(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)
	ator := prestadorAtor(f.prestador.ID)

	vazio := "   "
	_, err := f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "recusado", Motivo: &vazio})
	assert.True(t, IsValidation(err))

	// Validated before any write: no refusal record, status unchanged.
	assert.Empty(t, f.recusas.recusas)
	atual, _ := f.repo.FindByID(context.Background(), id)
	assert.Equal(t, model.StatusAguardandoAceite, atual.Status)
}

func TestTransicao_RecusaRegistraMotivo(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)
	ator := prestadorAtor(f.prestador.ID)

	motivo := "veículo em manutenção"
	r, err := f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "recusado", Motivo: &motivo})
	require.NoError(t, err)
	assert.Equal(t, "recusado", r.Status)

	require.Len(t, f.recusas.recusas, 1)
	assert.Equal(t, motivo, f.recusas.recusas[0].Motivo)
	assert.Equal(t, f.prestador.ID, f.recusas.recusas[0].PrestadorID)
}

// ── Atualizar ────────────────────────────────────────────────────────────────

func TestAtualizar_RecalculaComissaoECascata(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	novoValor := int64(20000)
	r, err := f.svc.Atualizar(context.Background(), operador(), id, dto.AtualizarServicoRequest{ValorCentavos: &novoValor})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), r.ValorCentavos)
	assert.Equal(t, int64(4000), r.ComissaoCentavos)

	empresa, _ := f.lancamentos.FindByServicoID(context.Background(), id)
	require.Len(t, empresa, 1)
	assert.Equal(t, int64(20000), empresa[0].ValorCentavos)

	comissoes, _ := f.lancPrestador.FindByServicoID(context.Background(), id)
	require.Len(t, comissoes, 1)
	assert.Equal(t, int64(4000), comissoes[0].ValorCentavos)
}

func TestAtualizar_JanelaDe24hExpirada(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Transicionar(context.Background(), prestadorAtor(f.prestador.ID), id, dto.TransicaoRequest{Alvo: "aceito"})
	require.NoError(t, err)

	f.agora = f.agora.Add(25 * time.Hour)
	novoValor := int64(9000)
	_, err = f.svc.Atualizar(context.Background(), operador(), id, dto.AtualizarServicoRequest{ValorCentavos: &novoValor})
	assert.True(t, IsStateConflict(err))

	// Admin bypasses the window.
	_, err = f.svc.Atualizar(context.Background(), admin(), id, dto.AtualizarServicoRequest{ValorCentavos: &novoValor})
	assert.NoError(t, err)
}

func TestAtualizar_IdentidadeBloqueadaAposAceite(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Transicionar(context.Background(), prestadorAtor(f.prestador.ID), id, dto.TransicaoRequest{Alvo: "aceito"})
	require.NoError(t, err)

	outro := uuid.New().String()
	_, err = f.svc.Atualizar(context.Background(), operador(), id, dto.AtualizarServicoRequest{PrestadorID: &outro})
	assert.True(t, IsStateConflict(err))
}

// ── Cancelar / Reativar ──────────────────────────────────────────────────────

func TestCancelarEReativar_RoundTrip(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)
	ator := admin()

	motivo := "cliente desistiu"
	r, err := f.svc.Cancelar(context.Background(), ator, id, &motivo)
	require.NoError(t, err)
	assert.Equal(t, "cancelado", r.Status)
	assert.Equal(t, int64(0), r.ValorCentavos)
	assert.Equal(t, int64(0), r.ComissaoCentavos)
	require.NotNil(t, r.ValorOriginalCentavos)
	assert.Equal(t, int64(10000), *r.ValorOriginalCentavos)
	assert.Equal(t, int64(2000), *r.ComissaoOriginalCentavos)

	// Linked ledger amounts are zeroed; rows survive.
	empresa, _ := f.lancamentos.FindByServicoID(context.Background(), id)
	require.Len(t, empresa, 1)
	assert.Equal(t, int64(0), empresa[0].ValorCentavos)
	comissoes, _ := f.lancPrestador.FindByServicoID(context.Background(), id)
	require.Len(t, comissoes, 1)
	assert.Equal(t, int64(0), comissoes[0].ValorCentavos)

	r, err = f.svc.Reativar(context.Background(), ator, id)
	require.NoError(t, err)
	assert.Equal(t, "aguardando_aceite", r.Status)
	assert.Equal(t, int64(10000), r.ValorCentavos)
	assert.Equal(t, int64(2000), r.ComissaoCentavos)
	assert.Nil(t, r.ValorOriginalCentavos)
	assert.Nil(t, r.MotivoCancelamento)

	empresa, _ = f.lancamentos.FindByServicoID(context.Background(), id)
	assert.Equal(t, int64(10000), empresa[0].ValorCentavos)
	comissoes, _ = f.lancPrestador.FindByServicoID(context.Background(), id)
	assert.Equal(t, int64(2000), comissoes[0].ValorCentavos)
}

func TestCancelar_Duplicado(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Cancelar(context.Background(), admin(), id, nil)
	require.NoError(t, err)
	_, err = f.svc.Cancelar(context.Background(), admin(), id, nil)
	assert.True(t, IsStateConflict(err))
}

func TestReativar_SomenteCancelado(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Reativar(context.Background(), admin(), id)
	assert.True(t, IsStateConflict(err))
}

func TestCancelar_EditarExigeReativacao(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	_, err := f.svc.Cancelar(context.Background(), admin(), id, nil)
	require.NoError(t, err)

	novoValor := int64(5000)
	_, err = f.svc.Atualizar(context.Background(), admin(), id, dto.AtualizarServicoRequest{ValorCentavos: &novoValor})
	assert.True(t, IsStateConflict(err))
}

// ── Excluir ──────────────────────────────────────────────────────────────────

func TestExcluir_RemoveLancamentosVinculados(t *testing.T) {
	f := newServicoFixture(t)
	resp := f.criarServico(t, operador())
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Excluir(context.Background(), id))

	empresa, _ := f.lancamentos.FindByServicoID(context.Background(), id)
	assert.Empty(t, empresa)
	comissoes, _ := f.lancPrestador.FindByServicoID(context.Background(), id)
	assert.Empty(t, comissoes)
	_, err := f.repo.FindByID(context.Background(), id)
	assert.Error(t, err)
}

// ── Atraso derivado ──────────────────────────────────────────────────────────

func TestAtrasado_DerivadoEmLeitura(t *testing.T) {
	f := newServicoFixture(t)
	nome := "Cliente Z"
	agendado := f.agora.Add(2 * time.Hour).Format(time.RFC3339)
	resp, err := f.svc.Criar(context.Background(), operador(), dto.CriarServicoRequest{
		ClienteNome:     &nome,
		PrestadorID:     f.prestador.ID.String(),
		ValorCentavos:   7000,
		MetodoPagamento: "pix",
		Agendado:        true,
		AgendadoPara:    &agendado,
		Paradas: []dto.ParadaRequest{
			{Tipo: "coleta", Endereco: "Rua A, 100"},
			{Tipo: "entrega", Endereco: "Rua B, 200"},
		},
	})
	require.NoError(t, err)
	assert.False(t, resp.Atrasado)
	id := uuid.MustParse(resp.ID)

	// Same stored row, later clock: now late.
	f.agora = f.agora.Add(3 * time.Hour)
	r, err := f.svc.ObterPorID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, r.Atrasado)

	// Completion clears the derived flag regardless of the clock.
	ator := prestadorAtor(f.prestador.ID)
	_, err = f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "aceito"})
	require.NoError(t, err)
	_, err = f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "coletado"})
	require.NoError(t, err)
	r, err = f.svc.Transicionar(context.Background(), ator, id, dto.TransicaoRequest{Alvo: "concluido"})
	require.NoError(t, err)
	assert.False(t, r.Atrasado)
}
