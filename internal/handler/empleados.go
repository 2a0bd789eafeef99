package handler

import (
	"net/http"

	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/service"

	"github.com/gin-gonic/gin"
)

type EmpleadosHandler struct{ svc service.EmpleadoService }

func NewEmpleadosHandler(svc service.EmpleadoService) *EmpleadosHandler {
	return &EmpleadosHandler{svc: svc}
}

// Tabla godoc
// @Summary Tabla de empleados
// @Tags empleados
// @Produce json
// @Success 200 {array} dto.EmpleadoFilaResponse
// @Router /empleados/tabla_empleados [get]
func (h *EmpleadosHandler) Tabla(c *gin.Context) {
	resp, err := h.svc.Tabla(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmpleadosHandler) Regiones(c *gin.Context) {
	resp, err := h.svc.Regiones(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmpleadosHandler) Comunas(c *gin.Context) {
	regionID, ok := parseID(c, "region_id")
	if !ok {
		return
	}
	resp, err := h.svc.Comunas(c.Request.Context(), regionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidarRegionComuna godoc
// @Summary Valida que la comuna pertenezca a la región
// @Tags empleados
// @Accept json
// @Produce json
// @Param body body dto.ValidarRegionComunaRequest true "Región y comuna"
// @Success 200 {object} dto.MutacionResponse
// @Failure 400 {object} apierror.APIError
// @Router /empleados/validar-region-comuna [post]
func (h *EmpleadosHandler) ValidarRegionComuna(c *gin.Context) {
	var req dto.ValidarRegionComunaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ValidarRegionComuna(c.Request.Context(), req.RegionID, req.ComunaID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Validación exitosa", 0))
}

// Guardar godoc
// @Summary Crea un empleado con su cuenta y permisos
// @Tags empleados
// @Accept json
// @Produce json
// @Param body body dto.CrearEmpleadoRequest true "Empleado"
// @Success 201 {object} dto.EmpleadoCreadoResponse
// @Failure 400 {object} apierror.ValidationError
// @Failure 409 {object} apierror.APIError
// @Router /empleados/guardar [post]
func (h *EmpleadosHandler) Guardar(c *gin.Context) {
	var req dto.CrearEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.EmpleadoCreadoResponse{
		Success: true,
		Message: "Empleado creado exitosamente",
		ID:      id,
		UserID:  id,
	})
}

// Obtener godoc
// @Summary Detalle de un empleado
// @Tags empleados
// @Produce json
// @Param id path int true "ID del empleado"
// @Success 200 {object} dto.EmpleadoDetalleResponse
// @Failure 404 {object} apierror.APIError
// @Router /empleados/obtener/{id} [get]
func (h *EmpleadosHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	emp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EmpleadoDetalleResponse{Success: true, Data: *emp})
}

func (h *EmpleadosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEmpleadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Actualizar(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Empleado actualizado correctamente", 0))
}

func (h *EmpleadosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Empleado eliminado correctamente", 0))
}
