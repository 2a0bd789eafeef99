package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/infra"
	"github.com/glYohanny/Gucci/internal/model"
	"github.com/glYohanny/Gucci/internal/repository"
	"github.com/glYohanny/Gucci/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, infra.AutoMigrate(db))
	return db
}

// servicios wires every service over one database.
type servicios struct {
	db           *gorm.DB
	usuarios     repository.UsuarioRepository
	productos    repository.ProductoRepository
	ordenesRepo  repository.OrdenRepository
	movimientos  repository.MovimientoStockRepository
	empleados    EmpleadoService
	auth         AuthService
	tokens       *TokenManager
	correos      *fakeEnqueuer
	interlocutor InterlocutorService
	inventario   InventarioService
	ordenes      OrdenService
}

func nuevosServicios(t *testing.T) *servicios {
	t.Helper()
	db := newTestDB(t)
	s := &servicios{
		db:          db,
		usuarios:    repository.NewUsuarioRepository(db),
		productos:   repository.NewProductoRepository(db),
		ordenesRepo: repository.NewOrdenRepository(db),
		movimientos: repository.NewMovimientoStockRepository(db),
		tokens:      NewTokenManager("secreto-de-prueba", time.Hour),
		correos:     &fakeEnqueuer{},
	}
	interlocutores := repository.NewInterlocutorRepository(db)
	reglas := model.ReglasPorDefecto()

	s.empleados = NewEmpleadoService(s.usuarios, repository.NewRegionRepository(db), repository.NewPermisoRepository(db), reglas)
	s.auth = NewAuthService(s.usuarios, s.tokens, s.correos)
	s.interlocutor = NewInterlocutorService(interlocutores, s.ordenesRepo, reglas)
	s.inventario = NewInventarioService(s.productos, s.ordenesRepo, nil)
	s.ordenes = NewOrdenService(s.ordenesRepo, interlocutores, s.productos, s.movimientos, nil)
	return s
}

type fakeEnqueuer struct {
	mu   sync.Mutex
	jobs []worker.EmailJobPayload
}

func (f *fakeEnqueuer) EnqueueEmail(_ context.Context, p worker.EmailJobPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, p)
	return nil
}

// fallaPermisos fails on the first permission lookup.
type fallaPermisos struct{}

func (fallaPermisos) FindOrCreate(context.Context, string, string) (*model.Permiso, error) {
	return nil, errors.New("permisos no disponibles")
}
func (fallaPermisos) Grant(context.Context, uint, uint) error { return nil }
func (fallaPermisos) ListByUsuario(context.Context, uint) ([]model.Permiso, error) {
	return nil, nil
}
func (f fallaPermisos) WithTx(*gorm.DB) repository.PermisoRepository { return f }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func empleadoBase(usuario, email, rut string) dto.CrearEmpleadoRequest {
	return dto.CrearEmpleadoRequest{
		TipoUsuario:     "Administrador",
		Sexo:            "F",
		NombreCompleto:  "Ana Rojas",
		Email:           email,
		FechaNacimiento: "1990-05-12",
		Rut:             rut,
		NombreUsuario:   usuario,
		Contrasena:      "clave-segura",
		Cargo:           ptr("Gerente"),
	}
}

func requireKind(t *testing.T, err error, kind apierror.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apierror.KindOf(err), "error: %v", err)
}
