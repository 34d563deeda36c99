package routes

import (
	"net/http"
	"slices"
	"time"

	"invoices-dashboard/cache"
	"invoices-dashboard/config"
	"invoices-dashboard/controllers"
	"invoices-dashboard/services"
	"invoices-dashboard/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are the wired services the router hands to its controllers.
type Dependencies struct {
	Config  *config.Config
	Queries *services.QueryService
	Actions *services.ActionService
	Views   *cache.ViewCache
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	origins := deps.Config.CORSOrigins
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return slices.Contains(origins, origin)
		},
	}))

	r.Use(config.PerformanceLogger(config.SlowRequestThreshold))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secret := []byte(deps.Config.JWTSecret)
	authController := &controllers.AuthController{
		Queries: deps.Queries,
		Secret:  secret,
		TTL:     time.Duration(deps.Config.JWTExpiryHours) * time.Hour,
	}
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.GET("/me", utils.AuthMiddleware(secret), authController.Me)
	}

	// every cached view sits behind auth so a hit is never served anonymously
	protected := []gin.HandlerFunc{utils.AuthMiddleware(secret), deps.Views.Middleware()}

	dashboardController := &controllers.DashboardController{Queries: deps.Queries}
	dashboard := r.Group(services.DashboardView, protected...)
	{
		dashboard.GET("/revenue", dashboardController.GetRevenue)
		dashboard.GET("/latest-invoices", dashboardController.GetLatestInvoices)
		dashboard.GET("/cards", dashboardController.GetCardData)
	}

	invoiceController := &controllers.InvoiceController{Queries: deps.Queries, Actions: deps.Actions}
	invoices := r.Group(services.InvoicesView, protected...)
	{
		invoices.GET("", invoiceController.GetInvoices)
		invoices.GET("/pages", invoiceController.GetInvoicePages)
		invoices.GET("/:id", invoiceController.GetInvoice)
		invoices.POST("", invoiceController.CreateInvoice)
		invoices.PUT("/:id", invoiceController.UpdateInvoice)
		invoices.DELETE("/:id", invoiceController.DeleteInvoice)
	}

	customerController := &controllers.CustomerController{Queries: deps.Queries}
	customers := r.Group(services.CustomersView, protected...)
	{
		customers.GET("", customerController.GetCustomers)
		customers.GET("/table", customerController.GetCustomerTable)
	}

	return r
}
