package handler

import (
	"net/http"

	"frtransportes/internal/apierror"
	"frtransportes/internal/dto"
	"frtransportes/internal/service"

	"github.com/gin-gonic/gin"
)

type LancamentosHandler struct{ svc service.LancamentoService }

func NewLancamentosHandler(svc service.LancamentoService) *LancamentosHandler {
	return &LancamentosHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar lançamento financeiro
// @Description  Lançamento avulso da empresa ou do prestador. Com recorrência, expande em N parcelas criadas em bloco.
// @Tags         lancamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarLancamentoRequest true "Lançamento"
// @Success      201  {array}  dto.LancamentoResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/lancamentos [post]
func (h *LancamentosHandler) Criar(c *gin.Context) {
	var req dto.CriarLancamentoRequest
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

// Listar godoc
// @Summary      Listar lançamentos da empresa por período
// @Tags         lancamentos
// @Produce      json
// @Security     BearerAuth
// @Param        inicio query string true "Data YYYY-MM-DD"
// @Param        fim    query string true "Data YYYY-MM-DD (inclusivo)"
// @Success      200    {object} dto.LancamentoListResponse
// @Router       /v1/lancamentos [get]
func (h *LancamentosHandler) Listar(c *gin.Context) {
	var filter dto.LancamentoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LancamentoListResponse{Data: resp})
}
