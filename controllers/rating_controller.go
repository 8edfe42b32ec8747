package controllers

import (
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RatingController struct {
	svc *services.RatingService
}

func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{svc: services.NewRatingService(db)}
}

type createRatingReq struct {
	CustomerID uint `json:"customerId" binding:"required"`
	DishID     uint `json:"dishId" binding:"required"`
	Value      int  `json:"value" binding:"required,min=1,max=5"`
}

// POST /ratings (ให้คะแนนซ้ำไม่ได้ ต้องลบก่อน)
func (rc *RatingController) Create(c *gin.Context) {
	var req createRatingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := rc.svc.Create(req.CustomerID, req.DishID, req.Value); err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, gin.H{
		"customerId": req.CustomerID,
		"dishId":     req.DishID,
		"value":      req.Value,
	})
}

// DELETE /customers/:id/ratings/:dishId
func (rc *RatingController) Delete(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		return
	}
	dishID, ok := parseID(c, "dishId")
	if !ok {
		return
	}

	if err := rc.svc.Delete(customerID, dishID); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"customerId": customerID, "dishId": dishID})
}

// GET /customers/:id/ratings (เรียงตาม dish id)
func (rc *RatingController) ListByCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ratings, err := rc.svc.ListByCustomer(customerID)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, ratings)
}
