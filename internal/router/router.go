package router

import (
	"time"

	"github.com/4ndreams/GPS-sub001/internal/config"
	"github.com/4ndreams/GPS-sub001/internal/handler"
	"github.com/4ndreams/GPS-sub001/internal/infra"
	"github.com/4ndreams/GPS-sub001/internal/middleware"
	"github.com/4ndreams/GPS-sub001/internal/realtime"
	"github.com/4ndreams/GPS-sub001/internal/repository"
	"github.com/4ndreams/GPS-sub001/internal/service"
	"github.com/4ndreams/GPS-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, pagoCB *infra.CircuitBreaker) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	pagoClient := infra.NewPagoClient(cfg.PagoAPIURL, cfg.PagoAccessToken)
	storage := infra.NewStorageClient(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket)
	publisher := realtime.NewRedisPublisher(rdb)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	notificacionRepo := repository.NewNotificacionRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	bodegaRepo := repository.NewBodegaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	notificacionSvc := service.NewNotificacionService(notificacionRepo, dispatcher, publisher, cfg.AdminEmail)
	ordenSvc := service.NewOrdenService(ordenRepo, notificacionSvc, publisher)
	despachoSvc := service.NewDespachoService(ordenRepo, notificacionSvc, publisher)
	productoSvc := service.NewProductoService(productoRepo, storage)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, ventaRepo, dispatcher, cfg.PDFStoragePath)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, pagoClient, pagoCB, cfg.PDFStoragePath)
	bodegaSvc := service.NewBodegaService(bodegaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	ordenH := handler.NewOrdenHandler(ordenSvc)
	despachoH := handler.NewDespachoHandler(despachoSvc)
	notificacionH := handler.NewNotificacionHandler(notificacionSvc)
	productoH := handler.NewProductoHandler(productoSvc)
	cotizacionH := handler.NewCotizacionHandler(cotizacionSvc)
	ventaH := handler.NewVentaHandler(ventaSvc)
	bodegaH := handler.NewBodegaHandler(bodegaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, pagoCB))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public storefront: catalog browsing, quotation requests, checkout and
	// the payment-gateway webhook need no session.
	r.GET("/api/products", productoH.Listar)
	r.GET("/api/products/:id", productoH.ObtenerPorID)
	r.POST("/api/producto-personalizado", cotizacionH.Crear)
	r.POST("/api/orders", ventaH.CrearOrdenCompra)
	r.POST("/api/orders/webhook", ventaH.Webhook)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		// Roles: tienda, fabrica, administrador — declared per-endpoint
		orden := api.Group("/orden")
		{
			orden.GET("", middleware.RequireRole("tienda", "fabrica", "administrador"), ordenH.Listar)
			orden.GET("/estadisticas", middleware.RequireRole("tienda", "fabrica", "administrador"), ordenH.Estadisticas)
			orden.GET("/:id", middleware.RequireRole("tienda", "fabrica", "administrador"), ordenH.ObtenerPorID)
			orden.POST("", middleware.RequireRole("tienda", "fabrica", "administrador"), ordenH.Crear)
			orden.PUT("/:id", middleware.RequireRole("fabrica", "administrador"), ordenH.Actualizar)
			orden.PATCH("/:id/completar", middleware.RequireRole("fabrica", "administrador"), ordenH.MarcarCompletada)
			orden.PATCH("/:id/cancelar", middleware.RequireRole("tienda", "fabrica", "administrador"), ordenH.Cancelar)
			orden.PATCH("/:id/recepcion", middleware.RequireRole("tienda", "administrador"), ordenH.ConfirmarRecepcion)
			orden.DELETE("/:id", middleware.RequireRole("administrador"), ordenH.Eliminar)
		}

		api.POST("/despachos", middleware.RequireRole("fabrica", "administrador"), despachoH.Crear)

		bodegas := api.Group("/bodegas")
		{
			bodegas.GET("", middleware.RequireRole("tienda", "fabrica", "administrador"), bodegaH.Listar)
			bodegas.GET("/:id", middleware.RequireRole("tienda", "fabrica", "administrador"), bodegaH.ObtenerPorID)
			bodegas.POST("", middleware.RequireRole("administrador"), bodegaH.Crear)
			bodegas.PATCH("/:id", middleware.RequireRole("administrador"), bodegaH.Actualizar)
		}

		notif := api.Group("/notificaciones", middleware.RequireRole("tienda", "fabrica", "administrador"))
		{
			notif.GET("", notificacionH.Listar)
			notif.POST("", notificacionH.Crear)
			notif.GET("/stream", handler.Stream(rdb))
			notif.PATCH("/:id/leida", notificacionH.MarcarLeida)
			notif.GET("/alertas/activas", notificacionH.AlertasActivas)
			notif.POST("/alertas/:id/resolver", notificacionH.ResolverAlerta)
		}

		// Catalog write operations — administrador only
		prods := api.Group("/products", middleware.RequireRole("administrador"))
		{
			prods.POST("", productoH.Crear)
			prods.PATCH("/:id", productoH.Actualizar)
			prods.DELETE("/:id", productoH.Eliminar)
			prods.POST("/:id/imagenes", productoH.SubirImagen)
		}

		cotiz := api.Group("/producto-personalizado", middleware.RequireRole("fabrica", "administrador"))
		{
			cotiz.GET("", cotizacionH.Listar)
			cotiz.GET("/:id", cotizacionH.ObtenerPorID)
			cotiz.PATCH("/:id", cotizacionH.Actualizar)
			cotiz.PATCH("/:id/estado", cotizacionH.CambiarEstado)
		}

		api.GET("/orders", middleware.RequireRole("administrador"), ventaH.Listar)
		api.GET("/orders/:id", middleware.RequireRole("administrador"), ventaH.ObtenerPorID)

		usuarios := api.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
