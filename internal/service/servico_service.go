package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"frtransportes/internal/dto"
	"frtransportes/internal/model"
	"frtransportes/internal/repository"
	"frtransportes/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// janelaEdicao is how long after acceptance non-admins may still edit an
	// order's non-identity fields.
	janelaEdicao = 24 * time.Hour

	// cascadeStepTimeout bounds each ledger-cascade step. The store has no
	// cross-entity transactions, so a hung step must fail loudly instead of
	// holding the order lock forever.
	cascadeStepTimeout = 10 * time.Second
)

// Ator identifies who is performing a mutation, extracted from the JWT.
type Ator struct {
	ID          uuid.UUID
	Rol         model.RolUsuario
	PrestadorID *uuid.UUID
}

func (a Ator) Admin() bool { return a.Rol == model.RolAdmin }

type ServicoService interface {
	AlocarProximoNumero(ctx context.Context) (string, error)
	Criar(ctx context.Context, ator Ator, req dto.CriarServicoRequest) (*dto.ServicoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ServicoResponse, error)
	Listar(ctx context.Context, filter dto.ServicoFilter) (*dto.ServicoListResponse, error)
	Atualizar(ctx context.Context, ator Ator, id uuid.UUID, req dto.AtualizarServicoRequest) (*dto.ServicoResponse, error)
	Transicionar(ctx context.Context, ator Ator, id uuid.UUID, req dto.TransicaoRequest) (*dto.ServicoResponse, error)
	Cancelar(ctx context.Context, ator Ator, id uuid.UUID, motivo *string) (*dto.ServicoResponse, error)
	Reativar(ctx context.Context, ator Ator, id uuid.UUID) (*dto.ServicoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type servicoService struct {
	repo           repository.ServicoRepository
	lancamentos    repository.LancamentoRepository
	lancPrestador  repository.LancamentoPrestadorRepository
	recusas        repository.RecusaRepository
	prestadorRepo  repository.PrestadorRepository
	dispatcher     *worker.Dispatcher
	locks          *servicoLocks
	agora          func() time.Time
}

func NewServicoService(
	repo repository.ServicoRepository,
	lancamentos repository.LancamentoRepository,
	lancPrestador repository.LancamentoPrestadorRepository,
	recusas repository.RecusaRepository,
	prestadorRepo repository.PrestadorRepository,
	dispatcher *worker.Dispatcher,
) ServicoService {
	return &servicoService{
		repo:          repo,
		lancamentos:   lancamentos,
		lancPrestador: lancPrestador,
		recusas:       recusas,
		prestadorRepo: prestadorRepo,
		dispatcher:    dispatcher,
		locks:         newServicoLocks(),
		agora:         time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── AlocarProximoNumero ──────────────────────────────────────────────────────
// The authoritative counter is a Postgres sequence (seeded from the
// historical max at migration time), which closes the race two clients hit
// when both scan the list for the current max. The scan survives only as a
// degraded fallback; the final fallback trades sequentiality for uniqueness.

func (s *servicoService) AlocarProximoNumero(ctx context.Context) (string, error) {
	if num, err := s.repo.NextNumero(ctx); err == nil {
		return fmt.Sprintf("%05d", num), nil
	} else {
		log.Warn().Err(err).Msg("servicos_numero_seq indisponível, usando fallback por varredura")
	}

	numeros, err := s.repo.ListNumeros(ctx)
	if err != nil {
		// Degraded mode: unique beats sequential.
		log.Error().Err(err).Msg("varredura de números falhou, usando número derivado do relógio")
		return strconv.FormatInt(s.agora().UnixMilli(), 10), nil
	}

	max := int64(0)
	for _, n := range numeros {
		v, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			continue // legacy non-numeric identifiers never block allocation
		}
		if v > max {
			max = v
		}
	}
	return fmt.Sprintf("%05d", max+1), nil
}

// ── Criar ────────────────────────────────────────────────────────────────────
// Order creation is one unit of work: the order, its route stops, the
// company revenue entry, and the provider commission entry are written in a
// single transaction.

func (s *servicoService) Criar(ctx context.Context, ator Ator, req dto.CriarServicoRequest) (*dto.ServicoResponse, error) {
	prestadorID, err := uuid.Parse(req.PrestadorID)
	if err != nil {
		return nil, validacao("prestador_id inválido")
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, validacao("cliente_id inválido")
		}
		clienteID = &cid
	}

	paradas, err := validarParadas(req.Paradas)
	if err != nil {
		return nil, err
	}

	agendadoPara, err := parseTimestamp(req.AgendadoPara)
	if err != nil {
		return nil, validacao("agendado_para inválido: %v", err)
	}
	if req.Agendado && agendadoPara == nil {
		return nil, validacao("serviço agendado requer agendado_para")
	}

	prestador, err := s.prestadorRepo.FindByID(ctx, prestadorID)
	if err != nil {
		return nil, naoEncontrado("prestador")
	}

	servico := model.Servico{
		ClienteID:        clienteID,
		ClienteNome:      req.ClienteNome,
		PrestadorID:      prestadorID,
		Paradas:          paradas,
		ValorCentavos:    req.ValorCentavos,
		ComissaoCentavos: CalcularComissao(req.ValorCentavos, prestador.PercentualComissao),
		MetodoPagamento:  model.MetodoPagamento(req.MetodoPagamento),
		StatusPagamento:  model.PagamentoPendente,
		Agendado:         req.Agendado,
		AgendadoPara:     agendadoPara,
		Urgente:          req.Urgente,
		Status:           model.StatusAguardandoAceite,
		CriadoPor:        ator.ID,
	}
	if !servico.ClienteValido() {
		return nil, validacao("informe cliente_id ou cliente_nome, nunca ambos")
	}

	numero, err := s.AlocarProximoNumero(ctx)
	if err != nil {
		return nil, err
	}
	servico.Numero = numero

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &servico); err != nil {
			return err
		}

		metodo := servico.MetodoPagamento
		receita := model.Lancamento{
			Tipo:            model.LancamentoReceita,
			Descricao:       fmt.Sprintf("Serviço #%s", servico.Numero),
			ValorCentavos:   servico.ValorCentavos,
			StatusPagamento: model.PagamentoPendente,
			MetodoPagamento: &metodo,
			DataLancamento:  s.agora(),
			ServicoID:       &servico.ID,
			PrestadorID:     &servico.PrestadorID,
		}
		if err := s.lancamentos.Create(ctx, tx, &receita); err != nil {
			return err
		}

		comissao := model.LancamentoPrestador{
			PrestadorID:     servico.PrestadorID,
			Tipo:            model.LancamentoComissao,
			Descricao:       fmt.Sprintf("Comissão serviço #%s", servico.Numero),
			ValorCentavos:   servico.ComissaoCentavos,
			StatusPagamento: model.PagamentoPendente,
			DataLancamento:  s.agora(),
			ServicoID:       &servico.ID,
		}
		return s.lancPrestador.Create(ctx, tx, &comissao)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notificarPrestador(ctx, prestador, fmt.Sprintf("Novo serviço #%s aguardando aceite", servico.Numero))
	return servicoToResponse(&servico, s.agora()), nil
}

// validarParadas enforces the route contract: at least two stops, at least
// one coleta and one entrega, stable order.
func validarParadas(reqs []dto.ParadaRequest) ([]model.Parada, error) {
	if len(reqs) < 2 {
		return nil, validacao("a rota requer ao menos 2 paradas")
	}
	temColeta, temEntrega := false, false
	paradas := make([]model.Parada, 0, len(reqs))
	for i, p := range reqs {
		tipo := model.TipoParada(p.Tipo)
		if !tipo.IsValid() {
			return nil, validacao("tipo de parada inválido: %s", p.Tipo)
		}
		if strings.TrimSpace(p.Endereco) == "" {
			return nil, validacao("endereço da parada %d vazio", i+1)
		}
		switch tipo {
		case model.ParadaColeta:
			temColeta = true
		case model.ParadaEntrega:
			temEntrega = true
		}
		paradas = append(paradas, model.Parada{
			Ordem:      i + 1,
			Tipo:       tipo,
			Endereco:   p.Endereco,
			Observacao: p.Observacao,
		})
	}
	if !temColeta || !temEntrega {
		return nil, validacao("a rota requer ao menos uma coleta e uma entrega")
	}
	return paradas, nil
}

// ── Atualizar ────────────────────────────────────────────────────────────────
// After acceptance, non-admins edit only within 24h of aceito_em and never
// the cliente/prestador identity fields. Value or provider changes recompute
// the commission and cascade onto both linked ledger entries; a cascade
// failure after the primary write surfaces as CascadeFailureError.

func (s *servicoService) Atualizar(ctx context.Context, ator Ator, id uuid.UUID, req dto.AtualizarServicoRequest) (*dto.ServicoResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	servico, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado("serviço")
	}
	if servico.Status == model.StatusCancelado {
		return nil, conflito("serviço cancelado não pode ser editado; reative-o primeiro")
	}
	if servico.Status.Terminal() {
		return nil, conflito("serviço %s não pode ser editado", servico.Status)
	}

	editaIdentidade := req.ClienteID != nil || req.ClienteNome != nil || req.PrestadorID != nil
	if servico.AceitoEm != nil && !ator.Admin() {
		if editaIdentidade {
			return nil, conflito("cliente e prestador ficam bloqueados após o aceite")
		}
		if s.agora().Sub(*servico.AceitoEm) > janelaEdicao {
			return nil, conflito("janela de edição de 24h após o aceite expirou")
		}
	}

	valorAntes := servico.ValorCentavos
	prestadorAntes := servico.PrestadorID

	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, validacao("cliente_id inválido")
		}
		servico.ClienteID = &cid
		servico.ClienteNome = nil
	}
	if req.ClienteNome != nil {
		servico.ClienteNome = req.ClienteNome
		servico.ClienteID = nil
	}
	if req.PrestadorID != nil {
		pid, err := uuid.Parse(*req.PrestadorID)
		if err != nil {
			return nil, validacao("prestador_id inválido")
		}
		servico.PrestadorID = pid
	}
	if req.Paradas != nil {
		paradas, err := validarParadas(*req.Paradas)
		if err != nil {
			return nil, err
		}
		for i := range paradas {
			paradas[i].ServicoID = servico.ID
		}
		servico.Paradas = paradas
	}
	if req.ValorCentavos != nil {
		servico.ValorCentavos = *req.ValorCentavos
	}
	if req.MetodoPagamento != nil {
		servico.MetodoPagamento = model.MetodoPagamento(*req.MetodoPagamento)
	}
	if req.Agendado != nil {
		servico.Agendado = *req.Agendado
	}
	if req.AgendadoPara != nil {
		t, err := parseTimestamp(req.AgendadoPara)
		if err != nil {
			return nil, validacao("agendado_para inválido: %v", err)
		}
		servico.AgendadoPara = t
	}
	if req.Urgente != nil {
		servico.Urgente = *req.Urgente
	}
	if !servico.ClienteValido() {
		return nil, validacao("informe cliente_id ou cliente_nome, nunca ambos")
	}

	mudouValor := servico.ValorCentavos != valorAntes
	mudouPrestador := servico.PrestadorID != prestadorAntes
	if mudouValor || mudouPrestador {
		prestador, err := s.prestadorRepo.FindByID(ctx, servico.PrestadorID)
		if err != nil {
			return nil, naoEncontrado("prestador")
		}
		servico.ComissaoCentavos = CalcularComissao(servico.ValorCentavos, prestador.PercentualComissao)
	}

	ator2 := ator.ID
	servico.ModificadoPor = &ator2

	// Primary write first; the ledger cascade runs after and reports its own
	// failure class so the caller knows primary and ledger may diverge.
	if err := s.repo.Update(ctx, servico); err != nil {
		return nil, err
	}

	if mudouValor || mudouPrestador || req.MetodoPagamento != nil {
		if err := s.cascataValores(ctx, servico); err != nil {
			return nil, err
		}
	}

	return servicoToResponse(servico, s.agora()), nil
}

// cascataValores pushes the order's current value, commission, provider and
// payment method onto its linked ledger entries.
func (s *servicoService) cascataValores(ctx context.Context, servico *model.Servico) error {
	stepCtx, cancel := context.WithTimeout(ctx, cascadeStepTimeout)
	defer cancel()

	empresa, err := s.lancamentos.FindByServicoID(stepCtx, servico.ID)
	if err != nil {
		return falhaCascata("buscar lançamentos da empresa", err)
	}
	for i := range empresa {
		l := &empresa[i]
		if l.Tipo == model.LancamentoReceita {
			l.ValorCentavos = servico.ValorCentavos
		}
		metodo := servico.MetodoPagamento
		l.MetodoPagamento = &metodo
		l.PrestadorID = &servico.PrestadorID
		if err := s.lancamentos.Update(stepCtx, l); err != nil {
			return falhaCascata("atualizar lançamento da empresa", err)
		}
	}

	prestador, err := s.lancPrestador.FindByServicoID(stepCtx, servico.ID)
	if err != nil {
		return falhaCascata("buscar lançamentos do prestador", err)
	}
	for i := range prestador {
		l := &prestador[i]
		if l.Tipo == model.LancamentoComissao {
			l.ValorCentavos = servico.ComissaoCentavos
		}
		l.PrestadorID = servico.PrestadorID
		if err := s.lancPrestador.Update(stepCtx, l); err != nil {
			return falhaCascata("atualizar lançamento do prestador", err)
		}
	}
	return nil
}

// ── Transicionar ─────────────────────────────────────────────────────────────
// aguardando_aceite → aceito → coletado → concluido, with recusado as a side
// branch off aguardando_aceite. Cancellation has its own entry point.
// No transition is retried; failures go back to the caller unchanged.

func (s *servicoService) Transicionar(ctx context.Context, ator Ator, id uuid.UUID, req dto.TransicaoRequest) (*dto.ServicoResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	servico, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado("serviço")
	}

	alvo := model.StatusServico(req.Alvo)
	agora := s.agora()

	switch alvo {
	case model.StatusAceito:
		// Idempotent: a repeated accept never overwrites the original stamp.
		if servico.Status == model.StatusAceito {
			return servicoToResponse(servico, agora), nil
		}
		if servico.Status != model.StatusAguardandoAceite {
			return nil, conflito("apenas serviços aguardando aceite podem ser aceitos")
		}
		if !ator.Admin() && (ator.PrestadorID == nil || *ator.PrestadorID != servico.PrestadorID) {
			return nil, conflito("somente o prestador designado pode aceitar o serviço")
		}
		servico.Status = model.StatusAceito
		if servico.AceitoEm == nil {
			servico.AceitoPor = &ator.ID
			servico.AceitoEm = &agora
		}

	case model.StatusColetado:
		if servico.Status != model.StatusAceito {
			return nil, conflito("apenas serviços aceitos podem ser coletados")
		}
		servico.Status = model.StatusColetado

	case model.StatusConcluido:
		if servico.Status != model.StatusColetado {
			return nil, conflito("apenas serviços coletados podem ser concluídos")
		}
		servico.Status = model.StatusConcluido
		servico.ConcluidoEm = &agora
		if req.MarcarPago {
			servico.StatusPagamento = model.PagamentoPago
		}

	case model.StatusRecusado:
		if servico.Status != model.StatusAguardandoAceite {
			return nil, conflito("apenas serviços aguardando aceite podem ser recusados")
		}
		// Validated BEFORE any write.
		if req.Motivo == nil || strings.TrimSpace(*req.Motivo) == "" {
			return nil, validacao("recusa requer um motivo")
		}
		prestadorID := servico.PrestadorID
		if ator.PrestadorID != nil {
			prestadorID = *ator.PrestadorID
		}
		recusa := model.RecusaServico{
			ServicoID:   servico.ID,
			PrestadorID: prestadorID,
			Motivo:      *req.Motivo,
		}
		if err := s.recusas.Create(ctx, &recusa); err != nil {
			return nil, err
		}
		// The order survives the refusal; only its status changes.
		servico.Status = model.StatusRecusado

	default:
		return nil, validacao("transição para %q não suportada", req.Alvo)
	}

	servico.ModificadoPor = &ator.ID
	if err := s.repo.Update(ctx, servico); err != nil {
		return nil, err
	}

	// PIX flow: completion explicitly marked paid flips the linked company
	// entry to received. Runs after the primary write — cascade class.
	if alvo == model.StatusConcluido && req.MarcarPago {
		if err := s.cascataPagamentoRecebido(ctx, servico); err != nil {
			return nil, err
		}
	}

	return servicoToResponse(servico, agora), nil
}

func (s *servicoService) cascataPagamentoRecebido(ctx context.Context, servico *model.Servico) error {
	stepCtx, cancel := context.WithTimeout(ctx, cascadeStepTimeout)
	defer cancel()

	empresa, err := s.lancamentos.FindByServicoID(stepCtx, servico.ID)
	if err != nil {
		return falhaCascata("buscar lançamentos da empresa", err)
	}
	for i := range empresa {
		l := &empresa[i]
		if l.Tipo != model.LancamentoReceita {
			continue
		}
		l.StatusPagamento = model.PagamentoPago
		if err := s.lancamentos.Update(stepCtx, l); err != nil {
			return falhaCascata("marcar lançamento como recebido", err)
		}
	}
	return nil
}

// ── Cancelar / Reativar ──────────────────────────────────────────────────────
// Cancel snapshots value and commission, zeroes both, and zeroes every
// linked ledger entry (amounts, never rows). Reactivate restores from the
// snapshot and cascades the amounts back. Absent interleaved edits the pair
// is a lossless round trip.

func (s *servicoService) Cancelar(ctx context.Context, ator Ator, id uuid.UUID, motivo *string) (*dto.ServicoResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	servico, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado("serviço")
	}
	if servico.Status == model.StatusCancelado {
		return nil, conflito("serviço já está cancelado")
	}
	if servico.Status.Terminal() {
		return nil, conflito("serviço %s não pode ser cancelado", servico.Status)
	}

	agora := s.agora()
	valor := servico.ValorCentavos
	comissao := servico.ComissaoCentavos

	servico.ValorOriginalCentavos = &valor
	servico.ComissaoOriginalCentavos = &comissao
	servico.ValorCentavos = 0
	servico.ComissaoCentavos = 0
	servico.Status = model.StatusCancelado
	servico.MotivoCancelamento = motivo
	servico.CanceladoPor = &ator.ID
	servico.CanceladoEm = &agora
	servico.ModificadoPor = &ator.ID

	if err := s.repo.Update(ctx, servico); err != nil {
		return nil, err
	}

	if err := s.cascataZerar(ctx, servico.ID); err != nil {
		return nil, err
	}

	return servicoToResponse(servico, agora), nil
}

func (s *servicoService) Reativar(ctx context.Context, ator Ator, id uuid.UUID) (*dto.ServicoResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	servico, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado("serviço")
	}
	if servico.Status != model.StatusCancelado {
		return nil, conflito("apenas serviços cancelados podem ser reativados")
	}

	// Defaults to the current (zeroed) amounts when no snapshot exists.
	if servico.ValorOriginalCentavos != nil {
		servico.ValorCentavos = *servico.ValorOriginalCentavos
	}
	if servico.ComissaoOriginalCentavos != nil {
		servico.ComissaoCentavos = *servico.ComissaoOriginalCentavos
	}
	servico.Status = model.StatusAguardandoAceite
	servico.ValorOriginalCentavos = nil
	servico.ComissaoOriginalCentavos = nil
	servico.MotivoCancelamento = nil
	servico.CanceladoPor = nil
	servico.CanceladoEm = nil
	servico.ModificadoPor = &ator.ID

	if err := s.repo.Update(ctx, servico); err != nil {
		return nil, err
	}

	if err := s.cascataValores(ctx, servico); err != nil {
		return nil, err
	}

	return servicoToResponse(servico, s.agora()), nil
}

// cascataZerar zeroes the amounts of every ledger entry linked to the order.
// Rows are preserved — history stays, totals drop to zero.
func (s *servicoService) cascataZerar(ctx context.Context, servicoID uuid.UUID) error {
	stepCtx, cancel := context.WithTimeout(ctx, cascadeStepTimeout)
	defer cancel()

	empresa, err := s.lancamentos.FindByServicoID(stepCtx, servicoID)
	if err != nil {
		return falhaCascata("buscar lançamentos da empresa", err)
	}
	for i := range empresa {
		empresa[i].ValorCentavos = 0
		if err := s.lancamentos.Update(stepCtx, &empresa[i]); err != nil {
			return falhaCascata("zerar lançamento da empresa", err)
		}
	}

	prestador, err := s.lancPrestador.FindByServicoID(stepCtx, servicoID)
	if err != nil {
		return falhaCascata("buscar lançamentos do prestador", err)
	}
	for i := range prestador {
		prestador[i].ValorCentavos = 0
		if err := s.lancPrestador.Update(stepCtx, &prestador[i]); err != nil {
			return falhaCascata("zerar lançamento do prestador", err)
		}
	}
	return nil
}

// ── Excluir ──────────────────────────────────────────────────────────────────
// Deleting an order removes its linked ledger entries in the same
// transaction (the only flow where ledger rows are deleted).

func (s *servicoService) Excluir(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return naoEncontrado("serviço")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.lancamentos.DeleteByServicoID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.lancPrestador.DeleteByServicoID(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *servicoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ServicoResponse, error) {
	servico, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado("serviço")
	}
	return servicoToResponse(servico, s.agora()), nil
}

func (s *servicoService) Listar(ctx context.Context, filter dto.ServicoFilter) (*dto.ServicoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	servicos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	agora := s.agora()
	items := make([]dto.ServicoResponse, 0, len(servicos))
	for i := range servicos {
		items = append(items, *servicoToResponse(&servicos[i], agora))
	}
	return &dto.ServicoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *servicoService) notificarPrestador(ctx context.Context, prestador *model.Prestador, mensagem string) {
	if s.dispatcher == nil || prestador.Email == nil || *prestador.Email == "" {
		return
	}
	// Best-effort — fire & forget.
	_ = s.dispatcher.EnqueueNotificacao(ctx, worker.NotificacaoPayload{
		Destinatario: *prestador.Email,
		Assunto:      "FR Transportes",
		Mensagem:     mensagem,
	})
}

func parseTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	utc := t.UTC()
	return &utc, nil
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02T15:04:05Z")
	return &s
}

func servicoToResponse(v *model.Servico, agora time.Time) *dto.ServicoResponse {
	paradas := make([]dto.ParadaResponse, 0, len(v.Paradas))
	for _, p := range v.Paradas {
		paradas = append(paradas, dto.ParadaResponse{
			Ordem:      p.Ordem,
			Tipo:       string(p.Tipo),
			Endereco:   p.Endereco,
			Observacao: p.Observacao,
		})
	}

	var clienteID *string
	if v.ClienteID != nil {
		s := v.ClienteID.String()
		clienteID = &s
	}
	var aceitoPor *string
	if v.AceitoPor != nil {
		s := v.AceitoPor.String()
		aceitoPor = &s
	}

	return &dto.ServicoResponse{
		ID:                       v.ID.String(),
		Numero:                   v.Numero,
		ClienteID:                clienteID,
		ClienteNome:              v.ClienteNome,
		PrestadorID:              v.PrestadorID.String(),
		Paradas:                  paradas,
		ValorCentavos:            v.ValorCentavos,
		ComissaoCentavos:         v.ComissaoCentavos,
		MetodoPagamento:          string(v.MetodoPagamento),
		StatusPagamento:          string(v.StatusPagamento),
		Agendado:                 v.Agendado,
		AgendadoPara:             formatTimestamp(v.AgendadoPara),
		Urgente:                  v.Urgente,
		Status:                   string(v.Status),
		Atrasado:                 v.EstaAtrasado(agora),
		ValorOriginalCentavos:    v.ValorOriginalCentavos,
		ComissaoOriginalCentavos: v.ComissaoOriginalCentavos,
		MotivoCancelamento:       v.MotivoCancelamento,
		CanceladoEm:              formatTimestamp(v.CanceladoEm),
		AceitoPor:                aceitoPor,
		AceitoEm:                 formatTimestamp(v.AceitoEm),
		ConcluidoEm:              formatTimestamp(v.ConcluidoEm),
		CreatedAt:                v.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
