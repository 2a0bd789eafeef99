package router

import (
	"context"
	"fmt"
	"time"

	"github.com/glYohanny/Gucci/internal/config"
	"github.com/glYohanny/Gucci/internal/handler"
	"github.com/glYohanny/Gucci/internal/middleware"
	"github.com/glYohanny/Gucci/internal/model"
	"github.com/glYohanny/Gucci/internal/repository"
	"github.com/glYohanny/Gucci/internal/service"
	"github.com/glYohanny/Gucci/internal/web"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
//
// rdb may be nil, which disables the product cache. The rate limiters purge
// their entries until ctx is done.
func New(
	ctx context.Context,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	mailer handler.MailerState,
	emails service.EmailEnqueuer,
) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	globalLimiter := middleware.NewRateLimiter("global", cfg.RateLimitPerMinute, time.Minute,
		"Demasiadas solicitudes. Intente nuevamente en un momento.")
	loginLimiter := middleware.NewRateLimiter("login", cfg.LoginRateLimitPerMinute, time.Minute,
		"Demasiados intentos de login. Intente nuevamente en un minuto.")
	go globalLimiter.Run(ctx)
	go loginLimiter.Run(ctx)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log.Logger))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler())
	r.Use(globalLimiter.Middleware())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("router: parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	regionRepo := repository.NewRegionRepository(db)
	permisoRepo := repository.NewPermisoRepository(db)
	interlocutorRepo := repository.NewInterlocutorRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	reglas := model.ReglasPorDefecto()
	tokens := service.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	cache := service.NewProductoCache(rdb, time.Duration(cfg.CacheTTLMinutes)*time.Minute)

	authSvc := service.NewAuthService(usuarioRepo, tokens, emails)
	empleadoSvc := service.NewEmpleadoService(usuarioRepo, regionRepo, permisoRepo, reglas)
	interlocutorSvc := service.NewInterlocutorService(interlocutorRepo, ordenRepo, reglas)
	inventarioSvc := service.NewInventarioService(productoRepo, ordenRepo, cache)
	ordenSvc := service.NewOrdenService(ordenRepo, interlocutorRepo, productoRepo, movimientoRepo, cache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	empleadosH := handler.NewEmpleadosHandler(empleadoSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc, interlocutorSvc)
	interH := handler.NewInterlocutoresHandler(interlocutorSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	codigoH := handler.NewConsultaCodigoHandler(inventarioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailer))

	for path, p := range handler.Paginas {
		if path == "/inventario/detalle" {
			r.GET(path, handler.InventarioDetalle(p))
			continue
		}
		r.GET(path, handler.Page(p))
	}

	jwtMW := middleware.JWTAuth(tokens)

	r.POST("/login_autenticacion", loginLimiter.Middleware(), authH.Login)
	r.POST("/recuperar_password", loginLimiter.Middleware(), authH.RecuperarPassword)
	r.GET("/verificar_token", jwtMW, authH.VerificarToken)
	r.POST("/logout", jwtMW, authH.Logout)

	// API groups require a token unless REQUIRE_AUTH=false
	var protegido []gin.HandlerFunc
	if cfg.RequireAuth {
		protegido = append(protegido, jwtMW)
	}

	emp := r.Group("/empleados", protegido...)
	{
		emp.GET("/tabla_empleados", empleadosH.Tabla)
		emp.GET("/regiones", empleadosH.Regiones)
		emp.GET("/comunas/:region_id", empleadosH.Comunas)
		emp.POST("/validar-region-comuna", empleadosH.ValidarRegionComuna)
		emp.POST("/guardar", empleadosH.Guardar)
		emp.GET("/obtener/:id", empleadosH.Obtener)
		emp.PUT("/actualizar/:id", empleadosH.Actualizar)
		emp.DELETE("/eliminar/:id", empleadosH.Eliminar)
	}

	home := r.Group("/home", protegido...)
	{
		home.GET("/ordenes", ordenesH.Listar)
		home.GET("/clientes", ordenesH.Clientes)
		home.GET("/proveedores", ordenesH.Proveedores)
		home.POST("/orden", ordenesH.Crear)
		home.GET("/orden/:id", ordenesH.Obtener)
		home.PUT("/orden/:id", ordenesH.Actualizar)
		home.DELETE("/orden/:id", ordenesH.Eliminar)
		home.GET("/orden/:id/pdf", ordenesH.PDF)
	}

	api := r.Group("/api", protegido...)
	{
		api.GET("/interlocutor/lista", interH.Lista)
		api.POST("/interlocutor/cliente", interH.CrearCliente)
		api.POST("/interlocutor/proveedor", interH.CrearProveedor)
		for _, tipo := range []model.TipoInterlocutor{model.InterlocutorCliente, model.InterlocutorProveedor} {
			g := api.Group("/interlocutor/" + string(tipo))
			g.GET("/:id", interH.Detalle(tipo))
			g.PUT("/:id", interH.Actualizar(tipo))
			g.DELETE("/:id", interH.Eliminar(tipo))
			g.GET("/:id/ordenes", interH.Ordenes(tipo))
		}
		api.GET("/buscar", interH.Buscar)
		api.GET("/estadisticas", interH.Estadisticas)

		inv := api.Group("/inventario")
		{
			inv.GET("/lista", inventarioH.Lista)
			inv.POST("/producto", inventarioH.Crear)
			inv.GET("/producto/:id", inventarioH.Detalle)
			inv.PUT("/producto/:id", inventarioH.Actualizar)
			inv.DELETE("/producto/:id", inventarioH.Eliminar)
			inv.GET("/buscar", inventarioH.Buscar)
			inv.GET("/alertas", inventarioH.Alertas)
			inv.GET("/codigo/:codigo", codigoH.PorCodigo)
		}
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}
