package router

import (
	"time"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/config"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/handler"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/middleware"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	eventoRepo := repository.NewEventoRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	eventoSvc := service.NewEventoService(eventoRepo)
	catalogoSvc := service.NewCatalogoService(insumoRepo, productoRepo)
	costoSvc := service.NewCostoService(productoRepo, inventarioRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, productoRepo, insumoRepo, pedidoRepo, movimientoRepo, costoSvc)
	pedidoSvc := service.NewPedidoService(pedidoRepo, eventoRepo, inventarioRepo, inventarioSvc, dispatcher)
	estadisticasSvc := service.NewEstadisticasService(eventoRepo, inventarioRepo, pedidoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	eventosH := handler.NewEventosHandler(eventoSvc)
	insumosH := handler.NewInsumosHandler(catalogoSvc)
	productosH := handler.NewProductosHandler(catalogoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc, costoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	cocinaH := handler.NewCocinaHandler(pedidoSvc, rdb)
	estadisticasH := handler.NewEstadisticasHandler(estadisticasSvc, dispatcher, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: admin, caja, cocina — declared per-endpoint

		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.POST("/:id/reactivar", usuariosH.Reactivar)
		}

		// Eventos — all roles can read (caja and cocina need the evento
		// context), only admin mutates
		v1.GET("/eventos", middleware.RequireRole("admin", "caja", "cocina"), eventosH.Listar)
		v1.GET("/eventos/:id", middleware.RequireRole("admin", "caja", "cocina"), eventosH.Obtener)
		eventos := v1.Group("/eventos", middleware.RequireRole("admin"))
		{
			eventos.POST("", eventosH.Crear)
			eventos.PUT("/:id", eventosH.Actualizar)
			eventos.DELETE("/:id", eventosH.Eliminar)
		}

		// Catálogo — admin only
		insumos := v1.Group("/insumos", middleware.RequireRole("admin"))
		{
			insumos.POST("", insumosH.Crear)
			insumos.GET("", insumosH.Listar)
			insumos.PUT("/:id", insumosH.Actualizar)
			insumos.DELETE("/:id", insumosH.Desactivar)
			insumos.POST("/:id/reactivar", insumosH.Reactivar)
		}
		productos := v1.Group("/productos", middleware.RequireRole("admin"))
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/:id", productosH.Obtener)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Desactivar)
			productos.POST("/:id/reactivar", productosH.Reactivar)
			productos.GET("/:id/insumos", productosH.ObtenerReceta)
			productos.PUT("/:id/insumos", productosH.ActualizarReceta)
		}

		// Inventario por evento — admin administers; caja reads to armar pedidos
		v1.GET("/eventos/:id/inventario/productos", middleware.RequireRole("admin", "caja"), inventarioH.ListarProductos)
		v1.GET("/eventos/:id/inventario/insumos", middleware.RequireRole("admin"), inventarioH.ListarInsumos)
		v1.GET("/eventos/:id/inventario/movimientos", middleware.RequireRole("admin"), inventarioH.ListarMovimientos)
		v1.GET("/eventos/:id/productos/:productoID/costo", middleware.RequireRole("admin"), inventarioH.CalcularCosto)
		invAdmin := v1.Group("/eventos/:id/inventario", middleware.RequireRole("admin"))
		{
			invAdmin.POST("/productos", inventarioH.CargarProductos)
			invAdmin.POST("/insumos", inventarioH.CargarInsumos)
			invAdmin.PUT("/productos/:productoID", inventarioH.ActualizarProducto)
			invAdmin.PUT("/insumos/:insumoID", inventarioH.ActualizarInsumo)
			invAdmin.DELETE("/productos/:productoID", inventarioH.EliminarProducto)
			invAdmin.DELETE("/insumos/:insumoID", inventarioH.EliminarInsumo)
		}

		// Pedidos — caja crea y consulta; cancelación también admin
		v1.POST("/eventos/:id/pedidos", middleware.RequireRole("caja", "admin"), pedidosH.Crear)
		v1.GET("/eventos/:id/pedidos", middleware.RequireRole("caja", "admin"), pedidosH.Listar)
		v1.POST("/pedidos/:id/cancelar", middleware.RequireRole("caja", "admin"), pedidosH.Cancelar)

		// Cocina — tablero y transiciones de preparación
		cocina := v1.Group("/cocina/eventos/:id/pedidos", middleware.RequireRole("cocina", "admin"))
		{
			cocina.GET("", cocinaH.Tablero)
			cocina.POST("/:pedidoID/iniciar", cocinaH.Iniciar)
			cocina.POST("/:pedidoID/completar", cocinaH.Completar)
		}

		// Estadísticas — admin only
		estadisticas := v1.Group("/eventos/:id/estadisticas", middleware.RequireRole("admin"))
		{
			estadisticas.GET("", estadisticasH.Resumen)
			estadisticas.GET("/pdf", estadisticasH.DescargarPDF)
			estadisticas.POST("/email", estadisticasH.EnviarPDF)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
