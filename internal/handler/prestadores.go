package handler

import (
	"net/http"

	"frtransportes/internal/apierror"
	"frtransportes/internal/dto"
	"frtransportes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PrestadoresHandler struct {
	svc       service.PrestadorService
	saldo     service.SaldoService
	quitacoes service.QuitacaoService
}

func NewPrestadoresHandler(
	svc service.PrestadorService,
	saldo service.SaldoService,
	quitacoes service.QuitacaoService,
) *PrestadoresHandler {
	return &PrestadoresHandler{svc: svc, saldo: saldo, quitacoes: quitacoes}
}

func (h *PrestadoresHandler) Criar(c *gin.Context) {
	var req dto.CriarPrestadorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PrestadoresHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrestadoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar prestadores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrestadoresHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarPrestadorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PrestadoresHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Saldo godoc
// @Summary      Saldo do prestador no período
// @Description  Visão derivada em tempo de leitura: somas por tipo apenas de lançamentos pagos, pendências contadas à parte, comissões de serviços cancelados excluídas.
// @Tags         prestadores
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  string true "UUID do prestador"
// @Param        inicio query string true "Data YYYY-MM-DD"
// @Param        fim    query string true "Data YYYY-MM-DD (inclusivo)"
// @Success      200    {object} dto.SaldoPrestadorResponse
// @Router       /v1/prestadores/{id}/saldo [get]
func (h *PrestadoresHandler) Saldo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var periodo dto.PeriodoFilter
	if err := c.ShouldBindQuery(&periodo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.saldo.CalcularSaldo(c.Request.Context(), id, periodo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Quitar godoc
// @Summary      Quitar saldo do período
// @Description  Gera um lançamento de pagamento que zera o saldo e grava o registro de quitação reversível.
// @Tags         prestadores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do prestador"
// @Param        body body dto.QuitarPeriodoRequest true "Período"
// @Success      201  {object} dto.QuitacaoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/prestadores/{id}/quitacoes [post]
func (h *PrestadoresHandler) Quitar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.QuitarPeriodoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.quitacoes.QuitarPeriodo(c.Request.Context(), atorFromClaims(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PrestadoresHandler) ListarQuitacoes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.quitacoes.ListarPorPrestador(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReverterQuitacao godoc
// @Summary      Reverter quitação
// @Description  Exclui o lançamento de pagamento e marca a quitação como revertida. Os status dos lançamentos quitados não são restaurados.
// @Tags         prestadores
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da quitação"
// @Success      200 {object} dto.QuitacaoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/quitacoes/{id}/reverter [post]
func (h *PrestadoresHandler) ReverterQuitacao(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.quitacoes.ReverterQuitacao(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
