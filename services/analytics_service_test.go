package services

import (
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"backend/entity"
)

// --------------------------------------------------
// Fake Record Store
// --------------------------------------------------

type fakeStore struct {
	orders     []entity.Order
	lines      []entity.OrderLine
	dishes     []entity.Dish
	ratings    []entity.Rating
	placements []entity.OrderPlacement

	failAll error // ถ้า set ทุก read จะล้ม
}

func (f *fakeStore) OrderByID(id uint) (*entity.Order, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DishByID(id uint) (*entity.Dish, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	for i := range f.dishes {
		if f.dishes[i].ID == id {
			d := f.dishes[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) OrderLines(orderID uint) ([]entity.OrderLine, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []entity.OrderLine
	for _, l := range f.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DishID < out[j].DishID })
	return out, nil
}

func (f *fakeStore) AllOrderLines() ([]entity.OrderLine, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]entity.OrderLine(nil), f.lines...), nil
}

func (f *fakeStore) AllOrders() ([]entity.Order, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]entity.Order(nil), f.orders...), nil
}

func (f *fakeStore) OrdersByYear(year int) ([]entity.Order, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []entity.Order
	for _, o := range f.orders {
		if o.OrderDate.Year() == year {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) OrdersInRange(from, to time.Time) ([]entity.Order, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []entity.Order
	for _, o := range f.orders {
		if !o.OrderDate.Before(from) && !o.OrderDate.After(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) AllDishes() ([]entity.Dish, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]entity.Dish(nil), f.dishes...), nil
}

func (f *fakeStore) AllRatings() ([]entity.Rating, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]entity.Rating(nil), f.ratings...), nil
}

func (f *fakeStore) RatingsByCustomer(customerID uint) ([]entity.Rating, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []entity.Rating
	for _, r := range f.ratings {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) RatingsByDish(dishID uint) ([]entity.Rating, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []entity.Rating
	for _, r := range f.ratings {
		if r.DishID == dishID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) AllPlacements() ([]entity.OrderPlacement, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return append([]entity.OrderPlacement(nil), f.placements...), nil
}

func (f *fakeStore) CustomerPlacedOrders(customerID uint) ([]uint, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []uint
	for _, p := range f.placements {
		if p.CustomerID == customerID {
			out = append(out, p.OrderID)
		}
	}
	return out, nil
}

func (f *fakeStore) OrderedDishIDs(customerID uint) (map[uint]struct{}, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	ownOrders := make(map[uint]struct{})
	for _, p := range f.placements {
		if p.CustomerID == customerID {
			ownOrders[p.OrderID] = struct{}{}
		}
	}
	out := make(map[uint]struct{})
	for _, l := range f.lines {
		if _, ok := ownOrders[l.OrderID]; ok {
			out[l.DishID] = struct{}{}
		}
	}
	return out, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// --------------------------------------------------
// Order Valuation
// --------------------------------------------------

func TestOrderSubtotal(t *testing.T) {
	store := &fakeStore{
		orders: []entity.Order{
			{ID: 1, OrderDate: date(2024, 3, 1), DeliveryFee: 1500, DeliveryAddress: "Haifa st 1"},
			{ID: 2, OrderDate: date(2024, 3, 2), DeliveryFee: 2000, DeliveryAddress: "Tel Aviv 2"},
		},
		lines: []entity.OrderLine{
			{OrderID: 1, DishID: 1, Amount: 2, UnitPrice: 5000},
			{OrderID: 1, DishID: 2, Amount: 3, UnitPrice: 3000},
		},
	}
	svc := &AnalyticsService{Store: store}

	// 2×50.00 + 3×30.00 + 15.00 = 205.00
	got, err := svc.OrderSubtotal(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 205.0 {
		t.Fatalf("expected 205.0, got %v", got)
	}

	// order ไม่มี line -> ได้ค่าส่งเป๊ะ ๆ
	got, err = svc.OrderSubtotal(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 20.0 {
		t.Fatalf("expected delivery fee 20.0, got %v", got)
	}

	// order ไม่มีจริง -> 0
	got, err = svc.OrderSubtotal(99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 for missing order, got %v", got)
	}

	if _, err := svc.OrderSubtotal(0); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestOrderSubtotalStoreFailure(t *testing.T) {
	store := &fakeStore{failAll: errors.New("connection reset")}
	svc := &AnalyticsService{Store: store}

	if _, err := svc.OrderSubtotal(1); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

// --------------------------------------------------
// Cohort Ranking
// --------------------------------------------------

func TestTopSpenders(t *testing.T) {
	store := &fakeStore{
		orders: []entity.Order{
			{ID: 1, OrderDate: date(2024, 1, 1), DeliveryFee: 1000, DeliveryAddress: "addr one"},
			{ID: 2, OrderDate: date(2024, 1, 2), DeliveryFee: 3000, DeliveryAddress: "addr two"},
			{ID: 3, OrderDate: date(2024, 1, 3), DeliveryFee: 2000, DeliveryAddress: "addr three"},
			// order 4 ไม่มี placement ต้องไม่นับให้ใครเลย
			{ID: 4, OrderDate: date(2024, 1, 4), DeliveryFee: 99999, DeliveryAddress: "addr four"},
		},
		placements: []entity.OrderPlacement{
			{OrderID: 1, CustomerID: 1},
			{OrderID: 2, CustomerID: 2},
			{OrderID: 3, CustomerID: 3},
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.TopSpenders()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []uint{2}) {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestTopSpendersKeepsTies(t *testing.T) {
	store := &fakeStore{
		orders: []entity.Order{
			// customer 2: สอง order เฉลี่ย 30.00; customer 1: order เดียว 30.00 เสมอกัน
			{ID: 1, OrderDate: date(2024, 1, 1), DeliveryFee: 3000, DeliveryAddress: "addr one"},
			{ID: 2, OrderDate: date(2024, 1, 2), DeliveryFee: 2000, DeliveryAddress: "addr two"},
			{ID: 3, OrderDate: date(2024, 1, 3), DeliveryFee: 4000, DeliveryAddress: "addr three"},
		},
		placements: []entity.OrderPlacement{
			{OrderID: 1, CustomerID: 1},
			{OrderID: 2, CustomerID: 2},
			{OrderID: 3, CustomerID: 2},
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.TopSpenders()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []uint{1, 2}) {
		t.Fatalf("expected [1 2], got %v", got)
	}
}

func TestTopSpendersEmpty(t *testing.T) {
	svc := &AnalyticsService{Store: &fakeStore{}}

	got, err := svc.TopSpenders()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestTopRatedDishes(t *testing.T) {
	store := &fakeStore{
		dishes: []entity.Dish{
			{ID: 1, Name: "pizza", Price: 5000, IsActive: true},
			{ID: 2, Name: "burger", Price: 3000, IsActive: true},
			{ID: 3, Name: "salad", Price: 2000, IsActive: true},
			{ID: 4, Name: "pasta", Price: 3500, IsActive: true},
			{ID: 5, Name: "ramen", Price: 4000, IsActive: true},
			{ID: 6, Name: "tacos", Price: 2500, IsActive: true},
		},
		ratings: []entity.Rating{
			{CustomerID: 1, DishID: 1, Value: 5},
			{CustomerID: 2, DishID: 1, Value: 4}, // dish 1 -> 4.5
			{CustomerID: 1, DishID: 2, Value: 2}, // dish 2 -> 2.0
			{CustomerID: 1, DishID: 3, Value: 4}, // dish 3 -> 4.0
			// dish 4,5,6 ไม่มีคะแนน -> 3.0 ทั้งคู่ เรียง id น้อยก่อน
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.TopRatedDishes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint{1, 3, 4, 5, 6} // 4.5, 4.0, 3.0, 3.0, 3.0 dish 2 (2.0) หลุด
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCustomerOrderedTopRated(t *testing.T) {
	store := &fakeStore{
		dishes: []entity.Dish{
			{ID: 1, Name: "pizza", Price: 5000, IsActive: true},
			{ID: 2, Name: "burger", Price: 3000, IsActive: true},
		},
		orders: []entity.Order{
			{ID: 1, OrderDate: date(2024, 1, 1), DeliveryFee: 0, DeliveryAddress: "addr one"},
		},
		lines: []entity.OrderLine{
			{OrderID: 1, DishID: 1, Amount: 1, UnitPrice: 5000},
		},
		placements: []entity.OrderPlacement{
			{OrderID: 1, CustomerID: 7},
		},
	}
	svc := &AnalyticsService{Store: store}

	did, err := svc.CustomerOrderedTopRated(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !did {
		t.Fatal("customer 7 ordered a top-rated dish, expected true")
	}

	did, err = svc.CustomerOrderedTopRated(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if did {
		t.Fatal("customer 8 never ordered, expected false")
	}
}

// --------------------------------------------------
// Price-Change Profitability
// --------------------------------------------------

func TestUnprofitablePriceIncreases(t *testing.T) {
	store := &fakeStore{
		dishes: []entity.Dish{
			// ขายที่ 50.00 เฉลี่ย 1.5 จาน -> กำไร 75.00
			// เคยขายที่ 40.00 เฉลี่ย 2 จาน -> กำไร 80.00 -> ติด flag
			{ID: 4, Name: "banana split", Price: 5000, IsActive: true},
			// ไม่เคยขายต่ำกว่าราคาปัจจุบัน -> ห้ามติดไม่ว่ากำไรเป็นยังไง
			{ID: 5, Name: "espresso", Price: 1000, IsActive: true},
		},
		lines: []entity.OrderLine{
			{OrderID: 5, DishID: 4, Amount: 1, UnitPrice: 5000},
			{OrderID: 6, DishID: 4, Amount: 2, UnitPrice: 5000},
			{OrderID: 7, DishID: 4, Amount: 2, UnitPrice: 4000},
			{OrderID: 8, DishID: 4, Amount: 2, UnitPrice: 4000},
			{OrderID: 5, DishID: 5, Amount: 1, UnitPrice: 1000},
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.UnprofitablePriceIncreases()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []uint{4}) {
		t.Fatalf("expected [4], got %v", got)
	}
}

func TestUnprofitablePriceIncreasesSkipsInactive(t *testing.T) {
	store := &fakeStore{
		dishes: []entity.Dish{
			{ID: 4, Name: "banana split", Price: 5000, IsActive: false},
		},
		lines: []entity.OrderLine{
			{OrderID: 5, DishID: 4, Amount: 1, UnitPrice: 5000},
			{OrderID: 7, DishID: 4, Amount: 5, UnitPrice: 4000},
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.UnprofitablePriceIncreases()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("inactive dish must not be flagged, got %v", got)
	}
}

// --------------------------------------------------
// Cumulative Monthly Profit
// --------------------------------------------------

func TestCumulativeMonthlyProfit(t *testing.T) {
	store := &fakeStore{
		orders: []entity.Order{
			// มกราคมสอง order รวม 60.00 + 75.00 -> ทุกเดือนรายงาน 135.00
			{ID: 1, OrderDate: date(2023, 1, 5), DeliveryFee: 6000, DeliveryAddress: "addr one"},
			{ID: 2, OrderDate: date(2023, 1, 20), DeliveryFee: 7500, DeliveryAddress: "addr two"},
			// คนละปี ต้องไม่ปน
			{ID: 3, OrderDate: date(2022, 6, 1), DeliveryFee: 100000, DeliveryAddress: "addr three"},
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.CumulativeMonthlyProfit(2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(got))
	}
	for i, mp := range got {
		if mp.Month != 12-i {
			t.Fatalf("entry %d: expected month %d, got %d", i, 12-i, mp.Month)
		}
		if mp.Total != 135.0 {
			t.Fatalf("month %d: expected 135.0, got %v", mp.Month, mp.Total)
		}
	}
}

func TestCumulativeMonthlyProfitPrefixSemantics(t *testing.T) {
	store := &fakeStore{
		orders: []entity.Order{
			{ID: 1, OrderDate: date(2023, 3, 5), DeliveryFee: 1000, DeliveryAddress: "addr one"},
			{ID: 2, OrderDate: date(2023, 7, 5), DeliveryFee: 2000, DeliveryAddress: "addr two"},
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.CumulativeMonthlyProfit(2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byMonth := make(map[int]float64, 12)
	for _, mp := range got {
		byMonth[mp.Month] = mp.Total
	}

	if byMonth[1] != 0 || byMonth[2] != 0 {
		t.Fatalf("months before first order must be 0, got %v %v", byMonth[1], byMonth[2])
	}
	// ≤ เดือน ไม่ใช่ = เดือน: เดือนที่ไม่มี order ต้อง carry ยอดสะสมต่อ
	for m := 3; m <= 6; m++ {
		if byMonth[m] != 10.0 {
			t.Fatalf("month %d: expected carried 10.0, got %v", m, byMonth[m])
		}
	}
	for m := 7; m <= 12; m++ {
		if byMonth[m] != 30.0 {
			t.Fatalf("month %d: expected 30.0, got %v", m, byMonth[m])
		}
	}

	// prefix sum ต้อง non-decreasing เสมอ
	for m := 2; m <= 12; m++ {
		if byMonth[m] < byMonth[m-1] {
			t.Fatalf("cumulative total decreased at month %d", m)
		}
	}
}

func TestCumulativeMonthlyProfitEmptyYear(t *testing.T) {
	svc := &AnalyticsService{Store: &fakeStore{}}

	got, err := svc.CumulativeMonthlyProfit(2019)
	if err != nil {
		t.Fatalf("empty year is not an error: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(got))
	}
	for _, mp := range got {
		if mp.Total != 0 {
			t.Fatalf("month %d: expected 0, got %v", mp.Month, mp.Total)
		}
	}
}

// --------------------------------------------------
// Most ordered dish in a period
// --------------------------------------------------

func TestMostOrderedDishInRange(t *testing.T) {
	store := &fakeStore{
		dishes: []entity.Dish{
			{ID: 1, Name: "pizza", Price: 5000, IsActive: true},
			{ID: 2, Name: "burger", Price: 3000, IsActive: true},
		},
		orders: []entity.Order{
			{ID: 101, OrderDate: date(2023, 1, 1), DeliveryFee: 1000, DeliveryAddress: "addr one"},
			{ID: 102, OrderDate: date(2023, 1, 2), DeliveryFee: 1000, DeliveryAddress: "addr two"},
			{ID: 103, OrderDate: date(2023, 2, 1), DeliveryFee: 1000, DeliveryAddress: "addr three"},
		},
		lines: []entity.OrderLine{
			{OrderID: 101, DishID: 1, Amount: 3, UnitPrice: 5000},
			{OrderID: 102, DishID: 2, Amount: 2, UnitPrice: 3000},
			// นอกช่วง ถึงยอดเยอะก็ห้ามนับ
			{OrderID: 103, DishID: 2, Amount: 50, UnitPrice: 3000},
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.MostOrderedDishInRange(date(2023, 1, 1), date(2023, 1, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != 1 {
		t.Fatalf("expected dish 1, got %+v", got)
	}

	// ช่วงที่ไม่มี order เลย
	got, err = svc.MostOrderedDishInRange(date(2020, 1, 1), date(2020, 12, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty period, got %+v", got)
	}
}

// --------------------------------------------------
// Rated low but never ordered
// --------------------------------------------------

func TestRatedLowButNeverOrdered(t *testing.T) {
	store := &fakeStore{
		dishes: []entity.Dish{
			{ID: 1, Name: "pizza", Price: 5000, IsActive: true},
			{ID: 2, Name: "burger", Price: 3000, IsActive: true},
		},
		ratings: []entity.Rating{
			// dish 1 คะแนนต่ำ -> อยู่ในกลุ่มแย่สุด
			{CustomerID: 1, DishID: 1, Value: 1},
			{CustomerID: 2, DishID: 1, Value: 2},
		},
		orders: []entity.Order{
			{ID: 1, OrderDate: date(2024, 1, 1), DeliveryFee: 0, DeliveryAddress: "addr one"},
		},
		lines: []entity.OrderLine{
			{OrderID: 1, DishID: 1, Amount: 1, UnitPrice: 5000},
		},
		placements: []entity.OrderPlacement{
			// customer 2 เคยสั่ง dish 1 เอง -> ไม่เข้าข่าย
			{OrderID: 1, CustomerID: 2},
		},
	}
	svc := &AnalyticsService{Store: store}

	got, err := svc.RatedLowButNeverOrdered()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []uint{1}) {
		t.Fatalf("expected [1], got %v", got)
	}
}

// --------------------------------------------------
// Idempotence analytic ซ้ำบน snapshot เดิมต้องได้ผลเดิม
// --------------------------------------------------

func TestAnalyticsIdempotent(t *testing.T) {
	store := &fakeStore{
		dishes: []entity.Dish{
			{ID: 1, Name: "pizza", Price: 5000, IsActive: true},
			{ID: 2, Name: "burger", Price: 3000, IsActive: true},
		},
		orders: []entity.Order{
			{ID: 1, OrderDate: date(2023, 4, 1), DeliveryFee: 1500, DeliveryAddress: "addr one"},
		},
		lines: []entity.OrderLine{
			{OrderID: 1, DishID: 1, Amount: 2, UnitPrice: 5000},
		},
		placements: []entity.OrderPlacement{
			{OrderID: 1, CustomerID: 1},
		},
		ratings: []entity.Rating{
			{CustomerID: 1, DishID: 1, Value: 5},
			{CustomerID: 2, DishID: 1, Value: 4},
		},
	}
	svc := &AnalyticsService{Store: store}

	first, err := svc.CumulativeMonthlyProfit(2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.CumulativeMonthlyProfit(2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same snapshot, different results")
	}

	r1, err := svc.DishRecommendations(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := svc.DishRecommendations(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatal("same snapshot, different recommendations")
	}
}
