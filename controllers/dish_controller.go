package controllers

import (
	"backend/entity"
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DishController struct {
	svc *services.DishService
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{svc: services.NewDishService(db)}
}

type dishOut struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	IsActive bool    `json:"isActive"`
}

func toDishOut(d *entity.Dish) dishOut {
	return dishOut{ID: d.ID, Name: d.Name, Price: fromCents(d.Price), IsActive: d.IsActive}
}

type createDishReq struct {
	ID       uint    `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	IsActive *bool   `json:"isActive" binding:"required"`
}

// POST /dishes
func (dc *DishController) Create(c *gin.Context) {
	var req createDishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	d := &entity.Dish{
		ID:       req.ID,
		Name:     req.Name,
		Price:    toCents(req.Price),
		IsActive: *req.IsActive,
	}
	if err := dc.svc.Create(d); err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, toDishOut(d))
}

// GET /dishes/:id
func (dc *DishController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	d, err := dc.svc.Get(id)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, toDishOut(d))
}

type updatePriceReq struct {
	Price float64 `json:"price" binding:"required"`
}

// PATCH /dishes/:id/price (เปลี่ยนได้เฉพาะจาน active)
func (dc *DishController) UpdatePrice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updatePriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := dc.svc.UpdatePrice(id, toCents(req.Price)); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "price": req.Price})
}

type updateActiveReq struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// PATCH /dishes/:id/active
func (dc *DishController) UpdateActive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateActiveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := dc.svc.UpdateActive(id, *req.IsActive); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "isActive": *req.IsActive})
}

// DELETE /dishes/:id
func (dc *DishController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := dc.svc.Delete(id); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
