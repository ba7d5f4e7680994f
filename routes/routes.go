package routes

import (
	"allure-backend/config"
	"allure-backend/controllers"
	"allure-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "allure-backend"

// Handlers bundles the controllers the router mounts.
type Handlers struct {
	Auth      *controllers.AuthController
	Customers *controllers.CustomerController
	Orders    *controllers.OrderController
	Settings  *controllers.SettingsController
	Dashboard *controllers.DashboardController
	Push      *controllers.PushController
}

// SetupRouter wires the HTTP surface. mediaDir is served under the
// configured media base URL.
func SetupRouter(cfg *config.AppConfig, h Handlers, mediaDir string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	r.Use(otelgin.Middleware(serviceName))
	r.Use(config.PerformanceLogger(cfg.SlowRequestThreshold))

	if mediaDir != "" {
		r.Static(cfg.MediaBaseURL, mediaDir)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)

		auth.Use(utils.AuthMiddleware(cfg.JWTSecret))
		auth.GET("/me", h.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(cfg.JWTSecret))
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", h.Customers.CreateCustomer)
			customers.GET("", h.Customers.GetCustomers)
			customers.GET("/:id", h.Customers.GetCustomer)
			customers.PUT("/:id", h.Customers.UpdateCustomer)
			customers.DELETE("/:id", h.Customers.DeleteCustomer)
			customers.GET("/:id/measurements", h.Customers.GetMeasurementPrefill)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", h.Orders.CreateOrder)
			orders.GET("", h.Orders.GetOrders)
			orders.GET("/:id", h.Orders.GetOrder)
			orders.DELETE("/:id", h.Orders.DeleteOrder)
			orders.PATCH("/:id/status", h.Orders.UpdateStatus)
			orders.POST("/:id/payments", h.Orders.RecordPayment)
			orders.GET("/:id/pdf", h.Orders.DownloadSlip)
			orders.GET("/:id/whatsapp", h.Orders.ShareWhatsApp)
			orders.POST("/:id/whatsapp", h.Orders.SendWhatsApp)
		}

		api.GET("/catalog/garments", controllers.GetGarmentCatalog)

		// Settings routes
		api.GET("/settings", h.Settings.GetSettings)
		api.PUT("/settings", h.Settings.UpdateSettings)

		// Dashboard and reports
		api.GET("/dashboard", h.Dashboard.GetDashboardOverview)
		api.GET("/reports", h.Dashboard.GetReportAnalytics)

		// Push routes
		push := api.Group("/push")
		{
			push.GET("/vapid-public-key", h.Push.VAPIDPublicKey)
			push.POST("/subscribe", h.Push.Subscribe)
			push.DELETE("/subscribe", h.Push.Unsubscribe)
			if cfg.PushSendQPS > 0 {
				push.POST("/send", utils.RateLimit(config.ResPushSend), h.Push.Send)
			} else {
				push.POST("/send", h.Push.Send)
			}
			push.POST("/reminders", h.Push.SendReminders)
		}
	}

	return r
}
