package router

import (
	"github.com/Xfhreall/armaso-pos/config"
	"github.com/Xfhreall/armaso-pos/controllers"
	"github.com/Xfhreall/armaso-pos/kds"
	"github.com/Xfhreall/armaso-pos/middlewares"
	"github.com/Xfhreall/armaso-pos/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, hub *kds.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders(cfg.CookieSecure))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	// Services
	authSvc := services.NewAuthService(db, cfg.SessionSecret, cfg.SessionTTL)
	menuSvc := services.NewMenuService(db)
	orderSvc := services.NewOrderService(db)
	voucherSvc := services.NewVoucherService(db)
	analyticsSvc := services.NewAnalyticsService(db, cfg.Location, cfg.Locale)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, cfg.CookieSecure)
	menuCtrl := controllers.NewMenuController(menuSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, hub)
	voucherCtrl := controllers.NewVoucherController(voucherSvc)
	statsCtrl := controllers.NewStatsController(analyticsSvc)
	reportCtrl := controllers.NewReportController(analyticsSvc)
	kdsCtrl := controllers.NewKDSController(hub, cfg.CORSOrigins)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRatePerMinute)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", loginLimiter.RateLimit(), authCtrl.Login)
		auth.POST("/logout", authCtrl.Logout)
		auth.GET("/session", authCtrl.GetSession)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(authSvc))
	{
		menus := api.Group("/menus")
		{
			menus.GET("", menuCtrl.GetAllMenus)
			menus.GET("/active", menuCtrl.GetActiveMenus)
			menus.GET("/category/:category", menuCtrl.GetMenusByCategory)
			menus.GET("/:id", menuCtrl.GetMenuByID)
			menus.POST("", menuCtrl.CreateMenu)
			menus.PUT("/:id", menuCtrl.UpdateMenu)
			menus.DELETE("/:id", menuCtrl.DeleteMenu)
			menus.PATCH("/:id/active", menuCtrl.ToggleMenuActive)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", orderCtrl.CreateOrder)
			orders.GET("", orderCtrl.GetAllOrders)
			orders.GET("/kitchen", orderCtrl.GetKitchenOrders)
			orders.PATCH("/status", orderCtrl.UpdateMultipleOrderStatus)
			orders.GET("/:id", orderCtrl.GetOrderByID)
			orders.PATCH("/:id/status", orderCtrl.UpdateOrderStatus)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/daily", statsCtrl.GetDailyStats)
			stats.GET("/weekly", statsCtrl.GetWeeklyStats)
		}

		vouchers := api.Group("/vouchers")
		{
			vouchers.GET("", voucherCtrl.GetAllVouchers)
			vouchers.POST("", voucherCtrl.CreateVoucher)
			vouchers.GET("/logs", voucherCtrl.GetVoucherLogs)
			vouchers.POST("/validate", voucherCtrl.ValidateVoucher)
			vouchers.POST("/apply", voucherCtrl.ApplyVoucher)
			vouchers.PUT("/:id", voucherCtrl.UpdateVoucher)
			vouchers.DELETE("/:id", voucherCtrl.DeleteVoucher)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/weekly.xlsx", reportCtrl.WeeklyExcel)
			reports.GET("/weekly.pdf", reportCtrl.WeeklyPDF)
		}

		api.GET("/kitchen/ws", kdsCtrl.KDSHandler)
	}

	return r
}
