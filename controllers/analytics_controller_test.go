package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/entity"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAnalyticsRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&entity.Customer{},
		&entity.Dish{},
		&entity.Order{},
		&entity.OrderLine{},
		&entity.OrderPlacement{},
		&entity.Rating{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctrl := NewAnalyticsController(db)
	r := gin.New()
	ana := r.Group("/analytics")
	{
		ana.GET("/top-spenders", ctrl.TopSpenders)
		ana.GET("/top-rated", ctrl.TopRatedDishes)
		ana.GET("/profit/:year", ctrl.CumulativeProfit)
		ana.GET("/most-ordered", ctrl.MostOrdered)
		ana.GET("/customers/:id/recommendations", ctrl.Recommendations)
	}
	return r, db
}

func seedAnalyticsScenario(t *testing.T, db *gorm.DB) {
	t.Helper()

	orderSvc := services.NewOrderService(db)
	dishSvc := services.NewDishService(db)
	custSvc := services.NewCustomerService(db)
	rateSvc := services.NewRatingService(db)

	fatal := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	fatal(custSvc.Create(&entity.Customer{ID: 1, FullName: "Dana Levi", Age: 30, Phone: "0500000001"}))
	fatal(custSvc.Create(&entity.Customer{ID: 2, FullName: "Omer Katz", Age: 25, Phone: "0500000002"}))
	fatal(dishSvc.Create(&entity.Dish{ID: 1, Name: "pizza margherita", Price: 5000, IsActive: true}))
	fatal(dishSvc.Create(&entity.Dish{ID: 2, Name: "veggie burger", Price: 3000, IsActive: true}))
	fatal(orderSvc.Create(&entity.Order{ID: 1, OrderDate: time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC), DeliveryFee: 1000, DeliveryAddress: "Haifa st 1"}))

	if _, err := orderSvc.AddLine(1, 1, 2); err != nil {
		t.Fatalf("seed line: %v", err)
	}
	fatal(orderSvc.PlaceOrder(1, 1))
	fatal(rateSvc.Create(1, 1, 5))
	fatal(rateSvc.Create(2, 1, 4))
	fatal(rateSvc.Create(2, 2, 5))
}

func getJSON(t *testing.T, r *gin.Engine, path string) (int, map[string]json.RawMessage) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json from %s: %v (%s)", path, err, w.Body.String())
	}
	return w.Code, body
}

func TestAnalyticsEndpoints(t *testing.T) {
	r, db := setupAnalyticsRouter(t)
	seedAnalyticsScenario(t, db)

	code, body := getJSON(t, r, "/analytics/top-spenders")
	if code != http.StatusOK {
		t.Fatalf("top-spenders: expected 200, got %d", code)
	}
	var ids []uint
	if err := json.Unmarshal(body["data"], &ids); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected [1], got %v", ids)
	}

	code, body = getJSON(t, r, "/analytics/top-rated")
	if code != http.StatusOK {
		t.Fatalf("top-rated: expected 200, got %d", code)
	}
	if err := json.Unmarshal(body["data"], &ids); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	// dish 2 (5.0) มาก่อน dish 1 (4.5)
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Fatalf("expected [2 1], got %v", ids)
	}

	// c1 ชอบ dish 1 ร่วมกับ c2 -> แนะนำ dish 2 (dish 1 สั่งไปแล้ว)
	code, body = getJSON(t, r, "/analytics/customers/1/recommendations")
	if code != http.StatusOK {
		t.Fatalf("recommendations: expected 200, got %d", code)
	}
	if err := json.Unmarshal(body["data"], &ids); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected [2], got %v", ids)
	}
}

func TestCumulativeProfitEndpoint(t *testing.T) {
	r, db := setupAnalyticsRouter(t)
	seedAnalyticsScenario(t, db)

	code, body := getJSON(t, r, "/analytics/profit/2023")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	var months []services.MonthProfit
	if err := json.Unmarshal(body["data"], &months); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(months))
	}
	if months[0].Month != 12 || months[11].Month != 1 {
		t.Fatalf("expected months 12..1, got %d..%d", months[0].Month, months[11].Month)
	}
	// order เดียว: 2×50.00 + 10.00 = 110.00 สะสมทุกเดือน
	if months[0].Total != 110.0 || months[11].Total != 110.0 {
		t.Fatalf("expected 110.0, got %v / %v", months[0].Total, months[11].Total)
	}

	code, _ = getJSON(t, r, "/analytics/profit/abc")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad year, got %d", code)
	}
}

func TestMostOrderedEndpoint(t *testing.T) {
	r, db := setupAnalyticsRouter(t)
	seedAnalyticsScenario(t, db)

	code, body := getJSON(t, r,
		"/analytics/most-ordered?from=2023-01-01T00:00:00Z&to=2023-12-31T23:59:59Z")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	var dish struct {
		ID    uint    `json:"id"`
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(body["data"], &dish); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if dish.ID != 1 {
		t.Fatalf("expected dish 1, got %d", dish.ID)
	}
	if dish.Price != 50.0 {
		t.Fatalf("expected price 50.0 at the API boundary, got %v", dish.Price)
	}

	// ช่วงที่ไม่มีการสั่งเลย -> 404
	code, _ = getJSON(t, r,
		"/analytics/most-ordered?from=2020-01-01T00:00:00Z&to=2020-12-31T23:59:59Z")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty period, got %d", code)
	}

	code, _ = getJSON(t, r, "/analytics/most-ordered?from=not-a-date&to=2020-12-31T23:59:59Z")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad from, got %d", code)
	}
}
