package handler

import (
	"net/http"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Lista godoc
// @Summary Lista de productos
// @Tags inventario
// @Produce json
// @Param estado query string false "Activo|Inactivo|Descontinuado"
// @Param sort_by query string false "Columna de orden"
// @Param direction query string false "asc|desc"
// @Success 200 {object} dto.ProductoListaResponse
// @Router /api/inventario/lista [get]
func (h *InventarioHandler) Lista(c *gin.Context) {
	var filter dto.ProductoListaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos"))
		return
	}
	resp, err := h.svc.Lista(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detalle godoc
// @Summary Detalle de un producto con sus estadísticas
// @Tags inventario
// @Produce json
// @Param id path int true "ID del producto"
// @Success 200 {object} dto.ProductoDetalleResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/inventario/producto/{id} [get]
func (h *InventarioHandler) Detalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crea un producto
// @Tags inventario
// @Accept json
// @Produce json
// @Param body body dto.CrearProductoRequest true "Producto"
// @Success 201 {object} dto.MutacionResponse
// @Failure 400 {object} apierror.ValidationError
// @Failure 409 {object} apierror.APIError
// @Router /api/inventario/producto [post]
func (h *InventarioHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Producto creado exitosamente", id))
}

func (h *InventarioHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Actualizar(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Producto actualizado exitosamente", id))
}

func (h *InventarioHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Producto eliminado exitosamente", id))
}

func (h *InventarioHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas lists products at or under their minimum stock.
func (h *InventarioHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
