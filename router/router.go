package router

import (
	"time"

	"nativus/api"
	"nativus/config"
	_ "nativus/docs"
	"nativus/metrics"
	"nativus/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires all routes.
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())

	// Observability: request counter plus the scrape endpoint.
	metrics.Init()
	r.Use(metrics.RequestCounter())
	r.GET("/metrics", metrics.Handler())

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		auth.Use(middleware.LoginRateLimit(10, time.Minute))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Everything below carries an authenticated account identifier.
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			dashboardHandler := api.NewDashboardHandler()
			authorized.GET("/dashboard", dashboardHandler.Overview)

			customerHandler := api.NewCustomerHandler()
			customers := authorized.Group("/customers")
			{
				customers.POST("", customerHandler.Create)
				customers.GET("", customerHandler.List)
				customers.DELETE("/:id", customerHandler.Delete)
			}

			orderHandler := api.NewOrderHandler()
			orders := authorized.Group("/orders")
			{
				orders.POST("", orderHandler.Create)
				orders.GET("", orderHandler.List)
				orders.DELETE("/:id", orderHandler.Delete)
			}

			ledgerHandler := api.NewLedgerHandler()
			ledger := authorized.Group("/ledger")
			{
				ledger.POST("", ledgerHandler.Create)
				ledger.GET("", ledgerHandler.List)
				ledger.DELETE("/:id", ledgerHandler.Delete)
			}

			taskHandler := api.NewTaskHandler()
			tasks := authorized.Group("/tasks")
			{
				tasks.POST("", taskHandler.Create)
				tasks.GET("", taskHandler.List)
				tasks.DELETE("/:id", taskHandler.Delete)
			}

			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/customers", exportHandler.ExportCustomers)
				export.GET("/orders", exportHandler.ExportOrders)
				export.GET("/expenses", exportHandler.ExportExpenses)
				export.GET("/tasks", exportHandler.ExportTasks)
			}
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
