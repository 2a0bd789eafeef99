package handler

import (
	"net/http"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/middleware"
	"github.com/glYohanny/Gucci/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /login_autenticacion [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerificarToken godoc
// @Summary Verifica el token de la sesión
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TokenResponse
// @Router /verificar_token [get]
func (h *AuthHandler) VerificarToken(c *gin.Context) {
	c.JSON(http.StatusOK, dto.TokenResponse{Mensaje: "Token válido", UserID: middleware.GetUsuarioID(c)})
}

// Logout is a stateless acknowledgement; clients discard the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Sesión cerrada exitosamente"})
}

// RecuperarPassword godoc
// @Summary Solicita la recuperación de contraseña
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RecuperarPasswordRequest true "Email"
// @Success 200 {object} dto.MensajeResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /recuperar_password [post]
func (h *AuthHandler) RecuperarPassword(c *gin.Context) {
	var req dto.RecuperarPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Email es requerido"))
		return
	}
	if err := h.svc.RecuperarPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Se han enviado las instrucciones de recuperación a tu email"})
}
