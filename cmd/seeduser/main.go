// cmd/seeduser/main.go: siembra regiones/comunas y crea el administrador inicial.
// Uso: go run ./cmd/seeduser
package main

import (
	"context"
	"os"
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/config"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/infra"
	"github.com/glYohanny/Gucci/internal/model"
	"github.com/glYohanny/Gucci/internal/repository"
	"github.com/glYohanny/Gucci/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	empleados := service.NewEmpleadoService(
		repository.NewUsuarioRepository(db),
		repository.NewRegionRepository(db),
		repository.NewPermisoRepository(db),
		model.ReglasPorDefecto(),
	)
	ctx := context.Background()

	sembradas, err := empleados.SembrarRegiones(ctx, regionesChile())
	if err != nil {
		log.Fatal().Err(err).Msg("seed regiones")
	}
	log.Info().Bool("sembradas", sembradas).Msg("regiones")

	usuario := envOr("SEED_USERNAME", "admin")
	password := envOr("SEED_PASSWORD", "admin1234")
	cargo := "Administrador"
	id, err := empleados.Crear(ctx, dto.CrearEmpleadoRequest{
		TipoUsuario:     "Administrador",
		Sexo:            "Otro",
		NombreCompleto:  "Administrador Gucci",
		Email:           envOr("SEED_EMAIL", "admin@gucci.local"),
		FechaNacimiento: "1990-01-01",
		Rut:             envOr("SEED_RUT", "11111111-1"),
		NombreUsuario:   usuario,
		Contrasena:      password,
		Estado:          model.CuentaActiva,
		Cargo:           &cargo,
		Permisos: map[string]map[string]bool{
			"empleados":    {"ver": true, "crear": true, "editar": true, "eliminar": true},
			"inventario":   {"ver": true, "crear": true, "editar": true, "eliminar": true},
			"ordenes":      {"ver": true, "crear": true, "editar": true, "eliminar": true},
			"interlocutor": {"ver": true, "crear": true, "editar": true, "eliminar": true},
		},
	})
	switch {
	case apierror.Is(err, apierror.KindConflicto):
		log.Info().Str("usuario", usuario).Msg("administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Uint("id", id).Str("usuario", usuario).Msg("administrador creado")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
