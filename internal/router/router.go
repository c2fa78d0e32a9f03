package router

import (
	"time"

	"frtransportes/internal/config"
	"frtransportes/internal/handler"
	"frtransportes/internal/middleware"
	"frtransportes/internal/repository"
	"frtransportes/internal/service"
	"frtransportes/internal/worker"

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
	clienteRepo := repository.NewClienteRepository(db)
	prestadorRepo := repository.NewPrestadorRepository(db)
	servicoRepo := repository.NewServicoRepository(db)
	lancamentoRepo := repository.NewLancamentoRepository(db)
	lancPrestadorRepo := repository.NewLancamentoPrestadorRepository(db)
	quitacaoRepo := repository.NewQuitacaoRepository(db)
	recusaRepo := repository.NewRecusaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	prestadorSvc := service.NewPrestadorService(prestadorRepo)
	servicoSvc := service.NewServicoService(servicoRepo, lancamentoRepo, lancPrestadorRepo, recusaRepo, prestadorRepo, dispatcher)
	lancamentoSvc := service.NewLancamentoService(lancamentoRepo, lancPrestadorRepo)
	saldoSvc := service.NewSaldoService(lancPrestadorRepo)
	quitacaoSvc := service.NewQuitacaoService(quitacaoRepo, lancPrestadorRepo, saldoSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	prestadoresH := handler.NewPrestadoresHandler(prestadorSvc, saldoSvc, quitacaoSvc)
	servicosH := handler.NewServicosHandler(servicoSvc)
	lancamentosH := handler.NewLancamentosHandler(lancamentoSvc)

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
		// Roles: admin, operador, prestador — declared per-endpoint
		v1.GET("/servicos/proximo-numero", middleware.RequireRole("admin", "operador"), servicosH.ProximoNumero)
		v1.POST("/servicos", middleware.RequireRole("admin", "operador"), servicosH.Criar)
		v1.GET("/servicos", middleware.RequireRole("admin", "operador", "prestador"), servicosH.Listar)
		v1.GET("/servicos/:id", middleware.RequireRole("admin", "operador", "prestador"), servicosH.Obter)
		v1.PUT("/servicos/:id", middleware.RequireRole("admin", "operador"), servicosH.Atualizar)
		// Providers drive the lifecycle of their own orders: accept, collect,
		// complete, refuse.
		v1.POST("/servicos/:id/transicao", middleware.RequireRole("admin", "operador", "prestador"), servicosH.Transicionar)
		v1.POST("/servicos/:id/cancelar", middleware.RequireRole("admin", "operador"), servicosH.Cancelar)
		v1.POST("/servicos/:id/reativar", middleware.RequireRole("admin", "operador"), servicosH.Reativar)
		v1.DELETE("/servicos/:id", middleware.RequireRole("admin"), servicosH.Excluir)

		lanc := v1.Group("/lancamentos", middleware.RequireRole("admin", "operador"))
		{
			lanc.POST("", lancamentosH.Criar)
			lanc.GET("", lancamentosH.Listar)
		}

		v1.GET("/prestadores", middleware.RequireRole("admin", "operador"), prestadoresH.Listar)
		v1.GET("/prestadores/:id", middleware.RequireRole("admin", "operador", "prestador"), prestadoresH.Obter)
		v1.GET("/prestadores/:id/saldo", middleware.RequireRole("admin", "operador", "prestador"), prestadoresH.Saldo)
		v1.GET("/prestadores/:id/quitacoes", middleware.RequireRole("admin", "operador"), prestadoresH.ListarQuitacoes)
		prest := v1.Group("/prestadores", middleware.RequireRole("admin"))
		{
			prest.POST("", prestadoresH.Criar)
			prest.PUT("/:id", prestadoresH.Atualizar)
			prest.DELETE("/:id", prestadoresH.Desativar)
			prest.POST("/:id/quitacoes", prestadoresH.Quitar)
		}
		v1.POST("/quitacoes/:id/reverter", middleware.RequireRole("admin"), prestadoresH.ReverterQuitacao)

		clientes := v1.Group("/clientes", middleware.RequireRole("admin", "operador"))
		{
			clientes.POST("", clientesH.Criar)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obter)
			clientes.PUT("/:id", clientesH.Atualizar)
			clientes.DELETE("/:id", clientesH.Desativar)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
			usuarios.PATCH("/:id/reativar", usuariosH.Reativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
