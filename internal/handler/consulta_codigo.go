package handler

import (
	"net/http"
	"strings"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsultaCodigoHandler looks a product up by its codigo. Lookups go through
// the Redis product cache when one is configured.
type ConsultaCodigoHandler struct{ svc service.InventarioService }

func NewConsultaCodigoHandler(svc service.InventarioService) *ConsultaCodigoHandler {
	return &ConsultaCodigoHandler{svc: svc}
}

// PorCodigo godoc
// @Summary Consulta de producto por código
// @Tags inventario
// @Produce json
// @Param codigo path string true "Código del producto"
// @Success 200 {object} dto.ProductoInfo
// @Failure 404 {object} apierror.APIError
// @Router /api/inventario/codigo/{codigo} [get]
func (h *ConsultaCodigoHandler) PorCodigo(c *gin.Context) {
	codigo := strings.TrimSpace(c.Param("codigo"))
	if codigo == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Código inválido"))
		return
	}
	resp, err := h.svc.PorCodigo(c.Request.Context(), codigo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
