package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/repository"
	"github.com/glYohanny/Gucci/internal/worker"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// msgCredenciales is shared by unknown usernames and wrong passwords.
const msgCredenciales = "Usuario o contraseña incorrectos"

// hashFicticio is compared against when the username does not exist, so both
// failure paths pay the same bcrypt cost.
var hashFicticio = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("gucci-sin-cuenta"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// EmailEnqueuer is satisfied by *worker.Dispatcher.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload worker.EmailJobPayload) error
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	VerificarToken(token string) (uint, error)
	RecuperarPassword(ctx context.Context, email string) error
}

type authService struct {
	usuarios repository.UsuarioRepository
	tokens   *TokenManager
	emails   EmailEnqueuer
	now      func() time.Time
	comparar func(hash, plain []byte) error
}

func NewAuthService(usuarios repository.UsuarioRepository, tokens *TokenManager, emails EmailEnqueuer) AuthService {
	return &authService{
		usuarios: usuarios,
		tokens:   tokens,
		emails:   emails,
		now:      time.Now,
		comparar: bcrypt.CompareHashAndPassword,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	nombre := strings.TrimSpace(req.NombreUsuario)
	clave := []byte(normalizarContrasena(req.Contrasena))
	cuenta, err := s.usuarios.FindCuentaByNombreUsuario(ctx, nombre)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = s.comparar(hashFicticio(), clave)
		return nil, apierror.Autenticacion(msgCredenciales)
	}
	if err != nil {
		return nil, err
	}
	if err := s.comparar([]byte(cuenta.Contrasena), clave); err != nil {
		return nil, apierror.Autenticacion(msgCredenciales)
	}

	if err := s.usuarios.TouchUltimoAcceso(ctx, cuenta.ID, s.now().UTC()); err != nil {
		return nil, err
	}
	usuario, err := s.usuarios.FindByID(ctx, cuenta.UsuarioID)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Emitir(usuario.ID)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Uint("usuario_id", usuario.ID).Msg("login exitoso")
	resp := &dto.LoginResponse{
		Mensaje:        "Login exitoso",
		IDUsuario:      usuario.ID,
		Estado:         cuenta.Estado,
		NombreCompleto: usuario.NombreCompleto,
		TipoUsuario:    usuario.TipoUsuario,
		Rut:            usuario.Rut,
		Token:          token,
	}
	if cuenta.Cargo != nil {
		resp.Cargo = *cuenta.Cargo
	}
	return resp, nil
}

func (s *authService) VerificarToken(token string) (uint, error) {
	return s.tokens.Verificar(token)
}

// RecuperarPassword queues a recovery notice for the account owning email.
func (s *authService) RecuperarPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apierror.Validacion("Email es requerido")
	}
	usuario, err := s.usuarios.FindByEmail(ctx, email)
	if err != nil {
		return noEncontrado(err, "No se encontró una cuenta asociada a este email")
	}
	if usuario.Cuenta == nil {
		return apierror.NoEncontrado("No se encontró una cuenta asociada a este email")
	}
	body := fmt.Sprintf(
		"Hola %s,\n\nRecibimos una solicitud para recuperar el acceso de la cuenta %q.\n"+
			"Contacta al administrador del sistema para restablecer tu contraseña.\n",
		usuario.NombreCompleto, usuario.Cuenta.NombreUsuario)
	return s.emails.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: usuario.Email,
		Subject: "Recuperación de contraseña",
		Body:    body,
	})
}

// normalizarContrasena is applied both when hashing and when logging in.
func normalizarContrasena(plain string) string { return strings.TrimSpace(plain) }

func hashContrasena(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(normalizarContrasena(plain)), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
