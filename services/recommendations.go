package services

import (
	"sort"
)

// คะแนนขั้นต่ำที่ถือว่า "ชอบ" จานนั้น ใช้ทั้งสร้าง similarity edge
// และเลือกจานที่จะแนะนำ
const likeThreshold = 4

// DishRecommendations แนะนำจานให้ลูกค้า จากลูกค้าที่ "คล้ายกัน"
//
// u กับ v คล้ายกันเมื่อทั้งคู่ให้คะแนนจานเดียวกัน ≥ 4 และความคล้าย
// ขยายแบบ transitive: คล้ายกับคนที่คล้ายกับเราก็นับด้วย แม้จะไม่มีจาน
// ร่วมกันโดยตรง closure นี้คำนวณด้วย BFS บนกราฟ ลูกค้า<->จาน พร้อม
// visited set กันวนลูป (กราฟมี cycle ได้สบาย ๆ)
//
// ผลลัพธ์ = จานที่สมาชิก closure ให้ ≥ 4 หักจานที่ลูกค้าเองเคยสั่ง
// เรียง id น้อยไปมาก; ลูกค้าไม่มีจริง / ไม่เคยให้คะแนน / ไม่มีใครคล้าย
// -> ลิสต์ว่าง ไม่ใช่ error
func (s *AnalyticsService) DishRecommendations(customerID uint) ([]uint, error) {
	if customerID == 0 {
		return nil, ErrInvalidParams
	}

	own, err := s.Store.RatingsByCustomer(customerID)
	if err != nil {
		return nil, storeFailed(err)
	}

	// frontier เริ่มจากจานที่ลูกค้าเองให้ ≥ 4
	var dishQueue []uint
	visitedDish := make(map[uint]struct{})
	for _, r := range own {
		if r.Value >= likeThreshold {
			visitedDish[r.DishID] = struct{}{}
			dishQueue = append(dishQueue, r.DishID)
		}
	}

	similar := make(map[uint]struct{})    // S(c) (ตัวเองไม่อยู่ในนี้)
	candidates := make(map[uint]struct{}) // จานที่สมาชิก S(c) ให้ ≥ 4

	// BFS สลับชั้น จาน -> คนที่ให้จานนั้น ≥ 4 -> จานอื่นที่คนนั้นให้ ≥ 4 -> ...
	// หยุดเมื่อไม่มีสมาชิกใหม่ (fixed point)
	for len(dishQueue) > 0 {
		dishID := dishQueue[0]
		dishQueue = dishQueue[1:]

		raters, err := s.Store.RatingsByDish(dishID)
		if err != nil {
			return nil, storeFailed(err)
		}
		for _, r := range raters {
			if r.Value < likeThreshold {
				continue
			}
			if r.CustomerID == customerID {
				continue // self-loop ไม่ใช่ hop
			}
			if _, seen := similar[r.CustomerID]; seen {
				continue
			}
			similar[r.CustomerID] = struct{}{}

			liked, err := s.Store.RatingsByCustomer(r.CustomerID)
			if err != nil {
				return nil, storeFailed(err)
			}
			for _, lr := range liked {
				if lr.Value < likeThreshold {
					continue
				}
				candidates[lr.DishID] = struct{}{}
				if _, seen := visitedDish[lr.DishID]; !seen {
					visitedDish[lr.DishID] = struct{}{}
					dishQueue = append(dishQueue, lr.DishID)
				}
			}
		}
	}

	if len(candidates) == 0 {
		return []uint{}, nil
	}

	// หักจานที่ลูกค้าเคยสั่งเอง ไม่ว่าคะแนนจะว่ายังไง
	ordered, err := s.Store.OrderedDishIDs(customerID)
	if err != nil {
		return nil, storeFailed(err)
	}

	out := make([]uint, 0, len(candidates))
	for id := range candidates {
		if _, ok := ordered[id]; ok {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
