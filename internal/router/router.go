package router

import (
	"time"

	"tiendapos/internal/config"
	"tiendapos/internal/handler"
	"tiendapos/internal/infra"
	"tiendapos/internal/middleware"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/service"
	"tiendapos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, imageCB *infra.CircuitBreaker) *gin.Engine {
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
	imageClient := infra.NewImageClient(cfg.ImageServiceURL)
	publisher := infra.NewRedisPublisher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	contenedorRepo := repository.NewContenedorRepository(db)
	traspasoRepo := repository.NewTraspasoRepository(db)
	corteRepo := repository.NewCorteRepository(db)
	negocioRepo := repository.NewNegocioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo)
	ventaSvc := service.NewVentaService(ticketRepo, productoRepo, publisher, dispatcher)
	contenedorSvc := service.NewContenedorService(contenedorRepo)
	traspasoSvc := service.NewTraspasoService(traspasoRepo, productoRepo, negocioRepo, imageClient, imageCB, cfg.PDFStoragePath)
	corteSvc := service.NewCorteService(corteRepo, ticketRepo, dispatcher, cfg.ReportEmail)
	reporteSvc := service.NewReporteService(ticketRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	contenedoresH := handler.NewContenedoresHandler(contenedorSvc)
	traspasosH := handler.NewTraspasosHandler(traspasoSvc)
	cortesH := handler.NewCortesHandler(corteSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check kiosk — no auth required so the in-store scanner works
	r.GET("/v1/precio/:codigo", productosH.ConsultarPrecio)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := []string{model.RolVendedor, model.RolAdministrador, model.RolSuperAdministrador}
	admins := []string{model.RolAdministrador, model.RolSuperAdministrador}

	v1 := r.Group("/v1", jwtMW)
	{
		// Ventas — any staff member can sell and consult tickets
		v1.POST("/ventas", middleware.RequireRole(staff...), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole(staff...), ventasH.Listar)
		v1.GET("/ventas/:id", middleware.RequireRole(staff...), ventasH.Obtener)

		// Productos — staff reads, admins write
		v1.GET("/productos", middleware.RequireRole(staff...), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole(staff...), productosH.Obtener)
		prods := v1.Group("/productos", middleware.RequireRole(admins...))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.POST("/:id/stock", productosH.AgregarStock)
		}

		// Contenedores — admins only
		cont := v1.Group("/contenedores", middleware.RequireRole(admins...))
		{
			cont.POST("", contenedoresH.Precargar)
			cont.GET("", contenedoresH.Listar)
			cont.GET("/:numero", contenedoresH.Obtener)
			cont.PUT("/:numero/recibir", contenedoresH.Recibir)
		}

		// Traspasos — staff can move stock, every movement keeps its evidence
		tras := v1.Group("/traspasos", middleware.RequireRole(staff...))
		{
			tras.POST("", traspasosH.Crear)
			tras.GET("", traspasosH.Listar)
			tras.GET("/:id", traspasosH.Obtener)
		}

		// Cortes de caja — staff closes the day, admins review history
		v1.POST("/cortes", middleware.RequireRole(staff...), cortesH.Crear)
		v1.GET("/cortes", middleware.RequireRole(admins...), cortesH.Listar)

		// Reportes — admins only
		rep := v1.Group("/reportes", middleware.RequireRole(admins...))
		{
			rep.GET("/ventas", reportesH.Resumen)
			rep.GET("/ventas/excel", reportesH.ExportarExcel)
		}

		// Usuarios — super admin and sistemas manage accounts
		usuarios := v1.Group("/usuarios", middleware.RequireRole(model.RolSuperAdministrador, model.RolSistemas))
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
