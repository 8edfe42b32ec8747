package controllers

import (
	"time"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	svc *services.OrderService
	ana *services.AnalyticsService
}

func NewOrderController(db *gorm.DB, feed services.OrderFeed) *OrderController {
	svc := services.NewOrderService(db)
	svc.Feed = feed
	return &OrderController{
		svc: svc,
		ana: services.NewAnalyticsService(db),
	}
}

type orderOut struct {
	ID              uint      `json:"id"`
	OrderDate       time.Time `json:"orderDate"`
	DeliveryFee     float64   `json:"deliveryFee"`
	DeliveryAddress string    `json:"deliveryAddress"`
}

func toOrderOut(o *entity.Order) orderOut {
	return orderOut{
		ID:              o.ID,
		OrderDate:       o.OrderDate,
		DeliveryFee:     fromCents(o.DeliveryFee),
		DeliveryAddress: o.DeliveryAddress,
	}
}

type lineOut struct {
	DishID    uint    `json:"dishId"`
	Amount    int     `json:"amount"`
	UnitPrice float64 `json:"unitPrice"`
}

type createOrderReq struct {
	ID              uint      `json:"id" binding:"required"`
	OrderDate       time.Time `json:"orderDate" binding:"required"`
	DeliveryFee     float64   `json:"deliveryFee"`
	DeliveryAddress string    `json:"deliveryAddress" binding:"required"`
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	o := &entity.Order{
		ID:              req.ID,
		OrderDate:       req.OrderDate,
		DeliveryFee:     toCents(req.DeliveryFee),
		DeliveryAddress: req.DeliveryAddress,
	}
	if err := oc.svc.Create(o); err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, toOrderOut(o))
}

// GET /orders/:id
func (oc *OrderController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	o, err := oc.svc.Get(id)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, toOrderOut(o))
}

// DELETE /orders/:id
func (oc *OrderController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := oc.svc.Delete(id); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// GET /orders/:id/total (มูลค่า order รวมค่าส่งแล้ว)
func (oc *OrderController) Total(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	total, err := oc.ana.OrderSubtotal(id)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": id, "total": total})
}

// ---------------- Lines ----------------

type addLineReq struct {
	DishID uint `json:"dishId" binding:"required"`
	Amount *int `json:"amount" binding:"required"`
}

// POST /orders/:id/items
func (oc *OrderController) AddLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req addLineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	line, err := oc.svc.AddLine(id, req.DishID, *req.Amount)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, lineOut{
		DishID:    line.DishID,
		Amount:    line.Amount,
		UnitPrice: fromCents(line.UnitPrice),
	})
}

// DELETE /orders/:id/items/:dishId
func (oc *OrderController) RemoveLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dishID, ok := parseID(c, "dishId")
	if !ok {
		return
	}

	if err := oc.svc.RemoveLine(id, dishID); err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": id, "dishId": dishID})
}

// GET /orders/:id/items (เรียงตาม dish id)
func (oc *OrderController) ListLines(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	lines, err := oc.svc.ListLines(id)
	if err != nil {
		writeErr(c, err)
		return
	}

	out := make([]lineOut, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineOut{
			DishID:    l.DishID,
			Amount:    l.Amount,
			UnitPrice: fromCents(l.UnitPrice),
		})
	}
	resp.OK(c, out)
}

// ---------------- Placement ----------------

type placeOrderReq struct {
	CustomerID uint `json:"customerId" binding:"required"`
}

// POST /orders/:id/placement
func (oc *OrderController) Place(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := oc.svc.PlaceOrder(req.CustomerID, id); err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, gin.H{"orderId": id, "customerId": req.CustomerID})
}

// GET /orders/:id/customer (ใครสั่ง order นี้)
func (oc *OrderController) Placer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cust, err := oc.svc.GetPlacer(id)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, cust)
}
