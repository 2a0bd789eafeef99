//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/glYohanny/Gucci/internal/config"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/infra"
	"github.com/glYohanny/Gucci/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type buzon struct {
	mu       sync.Mutex
	enviados []string
}

func (b *buzon) Send(to, _, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enviados = append(b.enviados, to)
	return nil
}

func (b *buzon) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.enviados)
}

// nuevoEntornoE2E runs the whole stack: SQL migrations on Postgres, the
// Redis product cache and the Redis-backed email queue with one worker.
func nuevoEntornoE2E(t *testing.T) (*entorno, *buzon) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("gucci_test"),
		tcPostgres.WithUsername("gucci"),
		tcPostgres.WithPassword("gucci"),
		testcontainers.WithWaitStrategy(tcPostgres.BasicWaitStrategies()...),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })
	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(context.Background()) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		CORSOrigins:        "*",
		DatabaseURL:        pgURL,
		RunMigrations:      true,
		RedisURL:           rdURL,
		CacheTTLMinutes:    5,
		JWTSecret:          "secreto-e2e",
		JWTExpirationHours: 1,
		RequireAuth:        true,
		WorkerPoolSize:     1,
	}

	db, err := infra.NewDatabase(cfg)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	correo := &buzon{}
	handlers := map[string]worker.Handler{worker.JobEmail: worker.NewEmailWorker(correo)}
	dispatcher := worker.NewDispatcher(rdb, handlers)
	workers := worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	t.Cleanup(func() {
		cancel()
		workers.Wait()
	})

	r, err := New(ctx, cfg, db, rdb, infra.NewMailer(cfg), dispatcher)
	require.NoError(t, err)
	return &entorno{r: r, db: db}, correo
}

func TestE2E_CicloCompleto(t *testing.T) {
	e, correo := nuevoEntornoE2E(t)
	e.sembrarAdmin(t)
	token := e.login(t)

	w := e.do(t, http.MethodPost, "/api/interlocutor/cliente",
		map[string]any{"nombre_cliente": "Boutique Norte", "empresa_cliente": "Norte Ltda"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cli := decode[dto.MutacionResponse](t, w)

	w = e.do(t, http.MethodPost, "/api/inventario/producto", map[string]any{
		"codigo": "PAN-010", "nombre": "Pantalón Chino", "tipo_prenda": "Pantalón",
		"valor_compra": 12000, "valor_venta": 24990, "stock_actual": 4, "stock_minimo": 2,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	prod := decode[dto.MutacionResponse](t, w)

	// Warm the Redis cache, then move stock: the order must invalidate it.
	w = e.do(t, http.MethodGet, "/api/inventario/codigo/PAN-010", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[dto.ProductoInfo](t, w).StockActual)

	orden := map[string]any{
		"tipo_orden":      "Salida",
		"interlocutor_id": cli.ID,
		"fecha_orden":     "2024-06-10",
		"estado_orden":    "Completada",
		"productos":       []map[string]any{{"producto_id": prod.ID, "cantidad": 3}},
	}
	w = e.do(t, http.MethodPost, "/home/orden", orden, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ordenID := decode[dto.MutacionResponse](t, w).ID

	w = e.do(t, http.MethodGet, "/api/inventario/codigo/PAN-010", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.ProductoInfo](t, w).StockActual)

	w = e.do(t, http.MethodGet, "/api/inventario/alertas", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	alertas := decode[[]dto.AlertaStockResponse](t, w)
	require.Len(t, alertas, 1)
	assert.Equal(t, 1, alertas[0].Faltante)

	// A second sale of 3 exceeds the remaining stock and is rolled back.
	w = e.do(t, http.MethodPost, "/home/orden", orden, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	orden["estado_orden"] = "Cancelada"
	w = e.do(t, http.MethodPut, "/home/orden/"+itoa(ordenID), orden, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodGet, "/api/inventario/codigo/PAN-010", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decode[dto.ProductoInfo](t, w).StockActual)

	w = e.do(t, http.MethodGet, "/api/estadisticas", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[dto.EstadisticasResponse](t, w)
	assert.EqualValues(t, 1, stats.Totales.Clientes)

	w = e.do(t, http.MethodGet, "/api/buscar?q=norte&tipo=cliente", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.BusquedaInterlocutor](t, w), 1)

	w = e.do(t, http.MethodPost, "/recuperar_password", map[string]string{"email": "pedro@gucci.cl"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Eventually(t, func() bool { return correo.total() == 1 }, 10*time.Second, 100*time.Millisecond)

	w = e.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	h := decode[map[string]any](t, w)
	assert.Equal(t, "connected", h["redis"])
	assert.EqualValues(t, 0, h["email_dlq"])
}
