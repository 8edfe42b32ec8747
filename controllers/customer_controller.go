package controllers

import (
	"backend/entity"
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomerController struct {
	svc *services.CustomerService
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{svc: services.NewCustomerService(db)}
}

type createCustomerReq struct {
	ID       uint   `json:"id" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Age      int    `json:"age" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// POST /customers
func (cc *CustomerController) Create(c *gin.Context) {
	var req createCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cust := &entity.Customer{
		ID:       req.ID,
		FullName: req.FullName,
		Age:      req.Age,
		Phone:    req.Phone,
	}
	if err := cc.svc.Create(cust); err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, cust)
}

// GET /customers/:id
func (cc *CustomerController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cust, err := cc.svc.Get(id)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, cust)
}

// DELETE /customers/:id
func (cc *CustomerController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := cc.svc.Delete(id); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
