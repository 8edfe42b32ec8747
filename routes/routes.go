package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, feed *ws.OrderFeedHub) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg)
	custCtrl := controllers.NewCustomerController(db)
	dishCtrl := controllers.NewDishController(db)
	orderCtrl := controllers.NewOrderController(db, feed)
	ratingCtrl := controllers.NewRatingController(db)
	anaCtrl := controllers.NewAnalyticsController(db)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(), authCtrl.Me)
	}

	// Public reads
	r.GET("/customers/:id", custCtrl.Get)
	r.GET("/customers/:id/ratings", ratingCtrl.ListByCustomer)
	r.GET("/dishes/:id", dishCtrl.Get)
	r.GET("/orders/:id", orderCtrl.Get)
	r.GET("/orders/:id/items", orderCtrl.ListLines)
	r.GET("/orders/:id/customer", orderCtrl.Placer)
	r.GET("/orders/:id/total", orderCtrl.Total)

	// Analytics (public reads)
	ana := r.Group("/analytics")
	{
		ana.GET("/top-spenders", anaCtrl.TopSpenders)
		ana.GET("/top-rated", anaCtrl.TopRatedDishes)
		ana.GET("/price-increases", anaCtrl.PriceIncreases)
		ana.GET("/profit/:year", anaCtrl.CumulativeProfit)
		ana.GET("/most-ordered", anaCtrl.MostOrdered)
		ana.GET("/rated-low-not-ordered", anaCtrl.RatedLowNotOrdered)
		ana.GET("/customers/:id/recommendations", anaCtrl.Recommendations)
		ana.GET("/customers/:id/ordered-top-rated", anaCtrl.OrderedTopRated)
	}

	// Writes (staff/admin)
	w := r.Group("/", middlewares.AuthMiddleware("staff", "admin"))
	{
		w.POST("/customers", custCtrl.Create)
		w.DELETE("/customers/:id", custCtrl.Delete)
		w.DELETE("/customers/:id/ratings/:dishId", ratingCtrl.Delete)

		w.POST("/dishes", dishCtrl.Create)
		w.PATCH("/dishes/:id/price", dishCtrl.UpdatePrice)
		w.PATCH("/dishes/:id/active", dishCtrl.UpdateActive)
		w.DELETE("/dishes/:id", dishCtrl.Delete)

		w.POST("/orders", orderCtrl.Create)
		w.DELETE("/orders/:id", orderCtrl.Delete)
		w.POST("/orders/:id/items", orderCtrl.AddLine)
		w.DELETE("/orders/:id/items/:dishId", orderCtrl.RemoveLine)
		w.POST("/orders/:id/placement", orderCtrl.Place)

		w.POST("/ratings", ratingCtrl.Create)
	}

	// Live order feed (staff dashboard)
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), feed.HandleWebSocket)
}
