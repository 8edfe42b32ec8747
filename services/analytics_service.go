package services

import (
	"fmt"
	"sort"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// RecordStore คือ read path ที่ analytics engine ใช้
// engine อ่านอย่างเดียว ไม่ mutate อะไรทั้งนั้น
// lookup ที่ key ไม่เจอ -> collection ว่าง / nil ไม่ใช่ error
type RecordStore interface {
	OrderByID(id uint) (*entity.Order, error)
	DishByID(id uint) (*entity.Dish, error)
	OrderLines(orderID uint) ([]entity.OrderLine, error)
	AllOrderLines() ([]entity.OrderLine, error)
	AllOrders() ([]entity.Order, error)
	OrdersByYear(year int) ([]entity.Order, error)
	OrdersInRange(from, to time.Time) ([]entity.Order, error)
	AllDishes() ([]entity.Dish, error)
	AllRatings() ([]entity.Rating, error)
	RatingsByCustomer(customerID uint) ([]entity.Rating, error)
	RatingsByDish(dishID uint) ([]entity.Rating, error)
	AllPlacements() ([]entity.OrderPlacement, error)
	CustomerPlacedOrders(customerID uint) ([]uint, error)
	OrderedDishIDs(customerID uint) (map[uint]struct{}, error)
}

type AnalyticsService struct {
	Store RecordStore
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{Store: repository.NewAnalyticsRepository(db)}
}

// คะแนน default ของจานที่ไม่มีใครให้คะแนน (คิดเป็น 3.0)
const (
	defaultRatingNum   = 3
	defaultRatingDenom = 1

	topRatedCount = 5
)

func storeFailed(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// cmpRatio เทียบ a/b กับ c/d ด้วย cross multiplication (b,d > 0)
// จะได้ไม่มี rounding จากการหาร float
func cmpRatio(a, b, c, d int64) int {
	l := a * d
	r := c * b
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func centsToFloat(cents int64) float64 {
	return float64(cents) / 100.0
}

// lineTotal = amount × ราคาที่ snapshot ไว้ตอนสั่ง
func lineTotal(l entity.OrderLine) int64 {
	return int64(l.Amount) * l.UnitPrice
}

// ---------------- Order Valuation ----------------

// OrderSubtotal คืน Σ(amount × unit price) + delivery fee เป็นบาท
// order ไม่มี line -> ได้ค่าส่งเฉย ๆ; order ไม่มีจริง -> 0
// (อยากแยกสองเคสนี้ให้เช็ค existence ต่างหาก)
func (s *AnalyticsService) OrderSubtotal(orderID uint) (float64, error) {
	if orderID == 0 {
		return 0, ErrInvalidParams
	}

	o, err := s.Store.OrderByID(orderID)
	if err != nil {
		return 0, storeFailed(err)
	}
	if o == nil {
		return 0, nil
	}

	lines, err := s.Store.OrderLines(orderID)
	if err != nil {
		return 0, storeFailed(err)
	}

	cents := o.DeliveryFee
	for _, l := range lines {
		cents += lineTotal(l)
	}
	return centsToFloat(cents), nil
}

// subtotal เป็นสตางค์ของทุก order ใช้ร่วมกันหลาย query
func (s *AnalyticsService) orderSubtotalCents(orders []entity.Order) (map[uint]int64, error) {
	lines, err := s.Store.AllOrderLines()
	if err != nil {
		return nil, storeFailed(err)
	}

	totals := make(map[uint]int64, len(orders))
	for _, o := range orders {
		totals[o.ID] = o.DeliveryFee
	}
	for _, l := range lines {
		if _, ok := totals[l.OrderID]; ok {
			totals[l.OrderID] += lineTotal(l)
		}
	}
	return totals, nil
}

// ---------------- Cohort Ranking ----------------

// TopSpenders คืนลูกค้าทุกคนที่ mean order subtotal สูงสุด (เสมอกันเอาหมด)
// order ที่ไม่มี placement ไม่นับให้ใคร
func (s *AnalyticsService) TopSpenders() ([]uint, error) {
	placements, err := s.Store.AllPlacements()
	if err != nil {
		return nil, storeFailed(err)
	}
	if len(placements) == 0 {
		return []uint{}, nil
	}

	orders, err := s.Store.AllOrders()
	if err != nil {
		return nil, storeFailed(err)
	}
	totals, err := s.orderSubtotalCents(orders)
	if err != nil {
		return nil, err
	}

	type spent struct {
		sum   int64
		count int64
	}
	perCustomer := make(map[uint]*spent)
	for _, p := range placements {
		total, ok := totals[p.OrderID]
		if !ok {
			continue // placement ชี้ order ที่ไม่มีแล้ว
		}
		sp := perCustomer[p.CustomerID]
		if sp == nil {
			sp = &spent{}
			perCustomer[p.CustomerID] = sp
		}
		sp.sum += total
		sp.count++
	}

	// หา mean สูงสุดด้วย cross multiplication แล้วเก็บทุกคนที่เสมอ
	var best *spent
	for _, sp := range perCustomer {
		if best == nil || cmpRatio(sp.sum, sp.count, best.sum, best.count) > 0 {
			best = sp
		}
	}
	if best == nil {
		return []uint{}, nil
	}

	var out []uint
	for id, sp := range perCustomer {
		if cmpRatio(sp.sum, sp.count, best.sum, best.count) == 0 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type dishRating struct {
	dishID uint
	sum    int64 // ผลรวมคะแนน หรือ default
	count  int64
}

// effectiveRatings คืนคะแนนเฉลี่ยของทุกจาน (จานไม่มีคะแนน = 3.0)
func (s *AnalyticsService) effectiveRatings() ([]dishRating, error) {
	dishes, err := s.Store.AllDishes()
	if err != nil {
		return nil, storeFailed(err)
	}
	ratings, err := s.Store.AllRatings()
	if err != nil {
		return nil, storeFailed(err)
	}

	sums := make(map[uint]*dishRating, len(dishes))
	out := make([]dishRating, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, dishRating{dishID: d.ID})
	}
	for i := range out {
		sums[out[i].dishID] = &out[i]
	}
	for _, r := range ratings {
		if dr, ok := sums[r.DishID]; ok {
			dr.sum += int64(r.Value)
			dr.count++
		}
	}
	for i := range out {
		if out[i].count == 0 {
			out[i].sum = defaultRatingNum
			out[i].count = defaultRatingDenom
		}
	}
	return out, nil
}

// TopRatedDishes คืน 5 จานคะแนนเฉลี่ยสูงสุด (เสมอกัน -> id น้อยก่อน)
func (s *AnalyticsService) TopRatedDishes() ([]uint, error) {
	rated, err := s.effectiveRatings()
	if err != nil {
		return nil, err
	}

	sort.Slice(rated, func(i, j int) bool {
		c := cmpRatio(rated[i].sum, rated[i].count, rated[j].sum, rated[j].count)
		if c != 0 {
			return c > 0
		}
		return rated[i].dishID < rated[j].dishID
	})

	n := topRatedCount
	if len(rated) < n {
		n = len(rated)
	}
	out := make([]uint, 0, n)
	for _, dr := range rated[:n] {
		out = append(out, dr.dishID)
	}
	return out, nil
}

// CustomerOrderedTopRated = ลูกค้าเคยสั่งจานใน top-5 หรือเปล่า
func (s *AnalyticsService) CustomerOrderedTopRated(customerID uint) (bool, error) {
	if customerID == 0 {
		return false, ErrInvalidParams
	}

	top, err := s.TopRatedDishes()
	if err != nil {
		return false, err
	}
	ordered, err := s.Store.OrderedDishIDs(customerID)
	if err != nil {
		return false, storeFailed(err)
	}

	for _, id := range top {
		if _, ok := ordered[id]; ok {
			return true, nil
		}
	}
	return false, nil
}

// RatedLowButNeverOrdered คืนลูกค้าที่ให้คะแนน < 3 กับจานใน 5 อันดับแย่สุด
// ทั้งที่ไม่เคยสั่งจานนั้นเองเลย
func (s *AnalyticsService) RatedLowButNeverOrdered() ([]uint, error) {
	rated, err := s.effectiveRatings()
	if err != nil {
		return nil, err
	}

	// 5 จานคะแนนเฉลี่ยต่ำสุด (เสมอกัน -> id น้อยก่อน)
	sort.Slice(rated, func(i, j int) bool {
		c := cmpRatio(rated[i].sum, rated[i].count, rated[j].sum, rated[j].count)
		if c != 0 {
			return c < 0
		}
		return rated[i].dishID < rated[j].dishID
	})
	n := topRatedCount
	if len(rated) < n {
		n = len(rated)
	}
	worst := make(map[uint]struct{}, n)
	for _, dr := range rated[:n] {
		worst[dr.dishID] = struct{}{}
	}

	ratings, err := s.Store.AllRatings()
	if err != nil {
		return nil, storeFailed(err)
	}

	orderedByCust := make(map[uint]map[uint]struct{})
	found := make(map[uint]struct{})
	for _, r := range ratings {
		if r.Value >= 3 {
			continue
		}
		if _, ok := worst[r.DishID]; !ok {
			continue
		}
		ordered, ok := orderedByCust[r.CustomerID]
		if !ok {
			ordered, err = s.Store.OrderedDishIDs(r.CustomerID)
			if err != nil {
				return nil, storeFailed(err)
			}
			orderedByCust[r.CustomerID] = ordered
		}
		if _, ok := ordered[r.DishID]; !ok {
			found[r.CustomerID] = struct{}{}
		}
	}

	out := make([]uint, 0, len(found))
	for id := range found {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ---------------- Price-Change Profitability ----------------

// UnprofitablePriceIncreases หาจาน active ที่ขึ้นราคาแล้วกำไรเฉลี่ยต่อ order
// แย่กว่าตอนราคาเดิม: avg(amount)×ราคาปัจจุบัน < max(avg(amount)×ราคาเก่า)
// เทียบเฉพาะราคาเก่าที่ต่ำกว่าราคาปัจจุบันเท่านั้น จานที่ไม่เคยขายถูกกว่านี้ไม่ติด
func (s *AnalyticsService) UnprofitablePriceIncreases() ([]uint, error) {
	dishes, err := s.Store.AllDishes()
	if err != nil {
		return nil, storeFailed(err)
	}
	lines, err := s.Store.AllOrderLines()
	if err != nil {
		return nil, storeFailed(err)
	}

	type bucket struct {
		sumAmount int64
		count     int64
	}
	// dish -> ราคาขายจริง -> ยอดรวม amount
	sold := make(map[uint]map[int64]*bucket)
	for _, l := range lines {
		prices, ok := sold[l.DishID]
		if !ok {
			prices = make(map[int64]*bucket)
			sold[l.DishID] = prices
		}
		b := prices[l.UnitPrice]
		if b == nil {
			b = &bucket{}
			prices[l.UnitPrice] = b
		}
		b.sumAmount += int64(l.Amount)
		b.count++
	}

	var flagged []uint
	for _, d := range dishes {
		if !d.IsActive {
			continue
		}
		prices := sold[d.ID]
		current := prices[d.Price]
		if current == nil {
			continue // ยังไม่เคยขายที่ราคาปัจจุบัน
		}

		// กำไรเฉลี่ย = (sumAmount × price) / count เทียบแบบ cross multiply
		var bestNum, bestDen int64
		for price, b := range prices {
			if price >= d.Price {
				continue
			}
			num := b.sumAmount * price
			if bestDen == 0 || cmpRatio(num, b.count, bestNum, bestDen) > 0 {
				bestNum, bestDen = num, b.count
			}
		}
		if bestDen == 0 {
			continue // ไม่มีราคาเก่าที่ต่ำกว่า -> ไม่มีอะไรให้เทียบ
		}

		if cmpRatio(current.sumAmount*d.Price, current.count, bestNum, bestDen) < 0 {
			flagged = append(flagged, d.ID)
		}
	}

	sort.Slice(flagged, func(i, j int) bool { return flagged[i] < flagged[j] })
	if flagged == nil {
		flagged = []uint{}
	}
	return flagged, nil
}

// ---------------- Cumulative Monthly Profit ----------------

type MonthProfit struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// CumulativeMonthlyProfit คืนยอดสะสมตั้งแต่มกราคมถึงเดือนนั้น ๆ ของปีที่ขอ
// ครบ 12 entry เสมอ เรียงเดือน 12 -> 1 (เดือนไม่มี order ก็ carry ยอดเดิมต่อ)
// ระวัง: filter เดือนเป็น <= ไม่ใช่ = (prefix sum ไม่ใช่ยอดรายเดือน)
func (s *AnalyticsService) CumulativeMonthlyProfit(year int) ([]MonthProfit, error) {
	if year <= 0 {
		return nil, ErrInvalidParams
	}

	orders, err := s.Store.OrdersByYear(year)
	if err != nil {
		return nil, storeFailed(err)
	}
	totals, err := s.orderSubtotalCents(orders)
	if err != nil {
		return nil, err
	}

	var monthCents [13]int64
	for _, o := range orders {
		monthCents[int(o.OrderDate.Month())] += totals[o.ID]
	}

	var running int64
	var cumulative [13]int64
	for m := 1; m <= 12; m++ {
		running += monthCents[m]
		cumulative[m] = running
	}

	out := make([]MonthProfit, 0, 12)
	for m := 12; m >= 1; m-- {
		out = append(out, MonthProfit{Month: m, Total: centsToFloat(cumulative[m])})
	}
	return out, nil
}

// ---------------- Most ordered dish in a period ----------------

// MostOrderedDishInRange คืนจานที่ยอดสั่ง (Σamount) สูงสุดในช่วงเวลา
// เสมอกัน -> id น้อยก่อน; ไม่มี line ในช่วงเลย -> nil
func (s *AnalyticsService) MostOrderedDishInRange(from, to time.Time) (*entity.Dish, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, ErrInvalidParams
	}

	orders, err := s.Store.OrdersInRange(from, to)
	if err != nil {
		return nil, storeFailed(err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	inRange := make(map[uint]struct{}, len(orders))
	for _, o := range orders {
		inRange[o.ID] = struct{}{}
	}

	lines, err := s.Store.AllOrderLines()
	if err != nil {
		return nil, storeFailed(err)
	}

	amounts := make(map[uint]int64)
	for _, l := range lines {
		if _, ok := inRange[l.OrderID]; ok {
			amounts[l.DishID] += int64(l.Amount)
		}
	}
	if len(amounts) == 0 {
		return nil, nil
	}

	var bestID uint
	var bestAmount int64 = -1
	for id, amount := range amounts {
		if amount > bestAmount || (amount == bestAmount && id < bestID) {
			bestID, bestAmount = id, amount
		}
	}

	d, err := s.Store.DishByID(bestID)
	if err != nil {
		return nil, storeFailed(err)
	}
	return d, nil
}
