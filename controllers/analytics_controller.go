package controllers

import (
	"strconv"
	"time"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	svc *services.AnalyticsService
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{svc: services.NewAnalyticsService(db)}
}

// GET /analytics/top-spenders (ลูกค้าที่ mean order subtotal สูงสุด)
func (ac *AnalyticsController) TopSpenders(c *gin.Context) {
	ids, err := ac.svc.TopSpenders()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, ids)
}

// GET /analytics/top-rated (5 จานคะแนนเฉลี่ยสูงสุด)
func (ac *AnalyticsController) TopRatedDishes(c *gin.Context) {
	ids, err := ac.svc.TopRatedDishes()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, ids)
}

// GET /analytics/customers/:id/ordered-top-rated
func (ac *AnalyticsController) OrderedTopRated(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	did, err := ac.svc.CustomerOrderedTopRated(id)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"customerId": id, "orderedTopRated": did})
}

// GET /analytics/price-increases (จานที่ขึ้นราคาแล้วไม่คุ้ม)
func (ac *AnalyticsController) PriceIncreases(c *gin.Context) {
	ids, err := ac.svc.UnprofitablePriceIncreases()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, ids)
}

// GET /analytics/profit/:year (ยอดสะสมรายเดือน เรียง 12 -> 1)
func (ac *AnalyticsController) CumulativeProfit(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		resp.BadRequest(c, "invalid year")
		return
	}

	months, err := ac.svc.CumulativeMonthlyProfit(year)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, months)
}

// GET /analytics/customers/:id/recommendations
func (ac *AnalyticsController) Recommendations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ids, err := ac.svc.DishRecommendations(id)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, ids)
}

// GET /analytics/most-ordered?from=...&to=... (RFC3339)
func (ac *AnalyticsController) MostOrdered(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		resp.BadRequest(c, "invalid from")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		resp.BadRequest(c, "invalid to")
		return
	}

	dish, err := ac.svc.MostOrderedDishInRange(from, to)
	if err != nil {
		writeErr(c, err)
		return
	}
	if dish == nil {
		resp.NotFound(c, "no dish ordered in period")
		return
	}
	resp.OK(c, toDishOut(dish))
}

// GET /analytics/rated-low-not-ordered
func (ac *AnalyticsController) RatedLowNotOrdered(c *gin.Context) {
	ids, err := ac.svc.RatedLowButNeverOrdered()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, ids)
}
