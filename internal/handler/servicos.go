package handler

import (
	"net/http"

	"frtransportes/internal/apierror"
	"frtransportes/internal/dto"
	"frtransportes/internal/model"
	"frtransportes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ServicosHandler struct{ svc service.ServicoService }

func NewServicosHandler(svc service.ServicoService) *ServicosHandler {
	return &ServicosHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar serviço
// @Description  Cria um serviço e, na mesma transação, a receita da empresa e a comissão do prestador.
// @Tags         servicos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarServicoRequest true "Dados do serviço"
// @Success      201  {object} dto.ServicoResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/servicos [post]
func (h *ServicosHandler) Criar(c *gin.Context) {
	var req dto.CriarServicoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), atorFromClaims(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ProximoNumero godoc
// @Summary      Reservar o próximo número de serviço
// @Tags         servicos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Router       /v1/servicos/proximo-numero [get]
func (h *ServicosHandler) ProximoNumero(c *gin.Context) {
	numero, err := h.svc.AlocarProximoNumero(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao alocar número"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"numero": numero})
}

func (h *ServicosHandler) Obter(c *gin.Context) {
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

// Listar godoc
// @Summary      Listar serviços
// @Description  Lista paginada com filtros de status e data. Prestadores enxergam apenas os próprios serviços.
// @Tags         servicos
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status ou all"
// @Param        data   query string false "Data YYYY-MM-DD"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.ServicoListResponse
// @Router       /v1/servicos [get]
func (h *ServicosHandler) Listar(c *gin.Context) {
	var filter dto.ServicoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	// Provider logins are always scoped to their own orders.
	ator := atorFromClaims(c)
	if ator.Rol == model.RolPrestador {
		filter.PrestadorID = ator.PrestadorID
	}

	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar serviços"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary      Atualizar serviço
// @Description  Patch parcial. Campos de identidade travam após o aceite; edição fora da janela de 24h exige admin. Valores recalculam a comissão em cascata.
// @Tags         servicos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do serviço"
// @Param        body body dto.AtualizarServicoRequest true "Campos a alterar"
// @Success      200  {object} dto.ServicoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/servicos/{id} [put]
func (h *ServicosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarServicoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), atorFromClaims(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transicionar godoc
// @Summary      Transicionar status do serviço
// @Description  aceito | coletado | concluido | recusado. Recusa exige motivo; conclusão pode marcar o pagamento como pago.
// @Tags         servicos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do serviço"
// @Param        body body dto.TransicaoRequest true "Transição"
// @Success      200  {object} dto.ServicoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/servicos/{id}/transicao [post]
func (h *ServicosHandler) Transicionar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.TransicaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transicionar(c.Request.Context(), atorFromClaims(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar serviço
// @Description  Zera valores com snapshot para reativação e zera a receita e a comissão vinculadas.
// @Tags         servicos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do serviço"
// @Param        body body dto.CancelarServicoRequest false "Motivo"
// @Success      200  {object} dto.ServicoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/servicos/{id}/cancelar [post]
func (h *ServicosHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelarServicoRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), atorFromClaims(c), id, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reativar godoc
// @Summary      Reativar serviço cancelado
// @Description  Restaura os valores do snapshot e reaplica receita e comissão.
// @Tags         servicos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do serviço"
// @Success      200 {object} dto.ServicoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/servicos/{id}/reativar [post]
func (h *ServicosHandler) Reativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Reativar(c.Request.Context(), atorFromClaims(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excluir godoc
// @Summary      Excluir serviço
// @Description  Exclusão definitiva do serviço e de todos os lançamentos vinculados, em uma transação.
// @Tags         servicos
// @Security     BearerAuth
// @Param        id path string true "UUID do serviço"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/servicos/{id} [delete]
func (h *ServicosHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
