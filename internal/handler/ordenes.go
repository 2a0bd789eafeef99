package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdenesHandler struct {
	ordenes        service.OrdenService
	interlocutores service.InterlocutorService
}

func NewOrdenesHandler(ordenes service.OrdenService, interlocutores service.InterlocutorService) *OrdenesHandler {
	return &OrdenesHandler{ordenes: ordenes, interlocutores: interlocutores}
}

// Listar godoc
// @Summary Órdenes con su interlocutor resuelto
// @Tags ordenes
// @Produce json
// @Success 200 {array} dto.OrdenFilaResponse
// @Router /home/ordenes [get]
func (h *OrdenesHandler) Listar(c *gin.Context) {
	resp, err := h.ordenes.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Clientes(c *gin.Context) {
	resp, err := h.interlocutores.Clientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdenesHandler) Proveedores(c *gin.Context) {
	resp, err := h.interlocutores.Proveedores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crea una orden de entrada o salida
// @Tags ordenes
// @Accept json
// @Produce json
// @Param body body dto.OrdenRequest true "Orden"
// @Success 201 {object} dto.MutacionResponse
// @Failure 400 {object} apierror.ValidationError
// @Router /home/orden [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.OrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.ordenes.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Orden creada exitosamente", id))
}

func (h *OrdenesHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.ordenes.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza una orden
// @Tags ordenes
// @Accept json
// @Produce json
// @Param id path int true "ID de la orden"
// @Param body body dto.OrdenRequest true "Orden"
// @Success 200 {object} dto.MutacionResponse
// @Failure 400 {object} apierror.ValidationError
// @Failure 404 {object} apierror.APIError
// @Router /home/orden/{id} [put]
func (h *OrdenesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.OrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.ordenes.Actualizar(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Orden actualizada exitosamente", id))
}

func (h *OrdenesHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ordenes.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Orden eliminada exitosamente", id))
}

// PDF godoc
// @Summary Descarga la orden en PDF
// @Tags ordenes
// @Produce application/pdf
// @Param id path int true "ID de la orden"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /home/orden/{id}/pdf [get]
func (h *OrdenesHandler) PDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.ordenes.PDF(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="orden-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
