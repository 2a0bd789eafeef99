package handler

import (
	"net/http"

	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/model"
	"github.com/glYohanny/Gucci/internal/service"

	"github.com/gin-gonic/gin"
)

// InterlocutoresHandler serves clients and suppliers. Routes are registered
// once per kind; each method returns the handler bound to that kind.
type InterlocutoresHandler struct{ svc service.InterlocutorService }

func NewInterlocutoresHandler(svc service.InterlocutorService) *InterlocutoresHandler {
	return &InterlocutoresHandler{svc: svc}
}

// Lista godoc
// @Summary Clientes y proveedores
// @Tags interlocutores
// @Produce json
// @Success 200 {object} dto.InterlocutorListaResponse
// @Router /api/interlocutor/lista [get]
func (h *InterlocutoresHandler) Lista(c *gin.Context) {
	resp, err := h.svc.Lista(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearCliente godoc
// @Summary Crea un cliente
// @Tags interlocutores
// @Accept json
// @Produce json
// @Param body body dto.CrearClienteRequest true "Cliente"
// @Success 201 {object} dto.MutacionResponse
// @Failure 400 {object} apierror.ValidationError
// @Router /api/interlocutor/cliente [post]
func (h *InterlocutoresHandler) CrearCliente(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.crear(c, model.InterlocutorCliente, req.Datos())
}

// CrearProveedor godoc
// @Summary Crea un proveedor
// @Tags interlocutores
// @Accept json
// @Produce json
// @Param body body dto.CrearProveedorRequest true "Proveedor"
// @Success 201 {object} dto.MutacionResponse
// @Failure 400 {object} apierror.ValidationError
// @Router /api/interlocutor/proveedor [post]
func (h *InterlocutoresHandler) CrearProveedor(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.crear(c, model.InterlocutorProveedor, req.Datos())
}

func (h *InterlocutoresHandler) crear(c *gin.Context, tipo model.TipoInterlocutor, datos dto.InterlocutorDatos) {
	id, err := h.svc.Crear(c.Request.Context(), tipo, datos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(tipo.Etiqueta()+" creado exitosamente", id))
}

func (h *InterlocutoresHandler) Detalle(tipo model.TipoInterlocutor) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		resp, err := h.svc.Detalle(c.Request.Context(), tipo, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *InterlocutoresHandler) Actualizar(tipo model.TipoInterlocutor) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req dto.ActualizarInterlocutorRequest
		if !bindAndValidate(c, &req) {
			return
		}
		if err := h.svc.Actualizar(c.Request.Context(), tipo, id, req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(tipo.Etiqueta()+" actualizado exitosamente", id))
	}
}

func (h *InterlocutoresHandler) Eliminar(tipo model.TipoInterlocutor) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := h.svc.Eliminar(c.Request.Context(), tipo, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(tipo.Etiqueta()+" eliminado exitosamente", id))
	}
}

// Ordenes pages through the orders of one client or supplier
// (page and per_page default to 1 and 10).
func (h *InterlocutoresHandler) Ordenes(tipo model.TipoInterlocutor) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		resp, err := h.svc.Ordenes(c.Request.Context(), tipo, id, queryInt(c, "page", 1), queryInt(c, "per_page", 10))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Buscar godoc
// @Summary Busca clientes y proveedores por nombre o empresa
// @Tags interlocutores
// @Produce json
// @Param q query string true "Término"
// @Param tipo query string false "todos|cliente|proveedor"
// @Success 200 {array} dto.BusquedaInterlocutor
// @Router /api/buscar [get]
func (h *InterlocutoresHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("q"), c.DefaultQuery("tipo", "todos"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InterlocutoresHandler) Estadisticas(c *gin.Context) {
	resp, err := h.svc.Estadisticas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
