package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pulizieapp/cleaning-planner/auth"
	"github.com/pulizieapp/cleaning-planner/cache"
	"github.com/pulizieapp/cleaning-planner/controllers"
	"github.com/pulizieapp/cleaning-planner/middlewares"
)

const monthCacheTTL = 5 * time.Minute

// SetupRouter wires middlewares, controllers and routes. rdb may be nil:
// sessions then live in process memory and the calendar cache is disabled.
func SetupRouter(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before the routes so it is part of every handler chain.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	var sessions auth.SessionStore
	var monthCache *cache.MonthCache
	if rdb != nil {
		sessions = auth.NewRedisStore(rdb, auth.DefaultTTL)
		monthCache = cache.NewMonthCache(rdb, monthCacheTTL)
	} else {
		sessions = auth.NewMemoryStore(auth.DefaultTTL)
	}

	userCtrl := controllers.NewUserController(db, sessions)
	orderCtrl := controllers.NewOrderController(db, monthCache)
	clientCtrl := controllers.NewClientController(db)
	calendarCtrl := controllers.NewCalendarController(db, monthCache)
	exportCtrl := controllers.NewExportController(db)
	statsCtrl := controllers.NewStatsController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ICS download for calendar apps, authorized by a signed token.
	r.GET("/calendar/export", exportCtrl.ExportByToken)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.SessionAuth(sessions))

	admin.POST("/logout", userCtrl.Logout)
	admin.GET("/profile", userCtrl.GetProfile)
	admin.DELETE("/account", userCtrl.DeleteAccount)

	// ORDERS
	admin.GET("/orders", orderCtrl.GetAllOrders)
	admin.POST("/orders", orderCtrl.CreateOrder)
	admin.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	admin.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
	admin.PUT("/orders/:order_id", orderCtrl.UpdateOrder)
	admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	admin.POST("/orders/:order_id/favorite", orderCtrl.ToggleFavorite)
	admin.GET("/orders/:order_id/export", exportCtrl.ExportOrder)
	admin.GET("/orders/:order_id/export-link", exportCtrl.ExportLink)

	// CALENDAR
	admin.GET("/calendar/:year/:month", calendarCtrl.GetMonth)
	admin.GET("/sort-modes/:mode/next", calendarCtrl.NextSortMode)

	// CLIENTS
	admin.GET("/clients", clientCtrl.GetAllClients)
	admin.POST("/clients", clientCtrl.CreateClient)
	admin.GET("/clients/:client_id", clientCtrl.GetClientByID)
	admin.GET("/clients/:client_id/orders", clientCtrl.GetClientOrders)
	admin.PATCH("/clients/:client_id", clientCtrl.UpdateClient)
	admin.DELETE("/clients/:client_id", clientCtrl.DeleteClient)

	// DASHBOARD
	admin.GET("/dashboard/stats", statsCtrl.GetDashboardStats)
	admin.GET("/reports/export", statsCtrl.ExportReport)

	return r
}
