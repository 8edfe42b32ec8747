package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"backend/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderFeedHub กระจายเหตุการณ์ order ให้ staff dashboard ที่ต่อ WS อยู่
type OrderFeedHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan OrderEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// OrderEvent = เหตุการณ์ที่ส่งออกไปทาง feed
type OrderEvent struct {
	Type    string    `json:"type"` // "order_created" | "order_deleted"
	OrderID uint      `json:"orderId"`
	Total   float64   `json:"total,omitempty"`
	At      time.Time `json:"at"`
}

func NewOrderFeedHub() *OrderFeedHub {
	return &OrderFeedHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan OrderEvent),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// คอยฟัง register/unregister/broadcast ตลอดเวลา
func (h *OrderFeedHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// services.OrderFeed implementation

func (h *OrderFeedHub) OrderCreated(o *entity.Order) {
	h.broadcast <- OrderEvent{
		Type:    "order_created",
		OrderID: o.ID,
		Total:   float64(o.DeliveryFee) / 100.0,
		At:      time.Now(),
	}
}

func (h *OrderFeedHub) OrderDeleted(id uint) {
	h.broadcast <- OrderEvent{
		Type:    "order_deleted",
		OrderID: id,
		At:      time.Now(),
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders
func (h *OrderFeedHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn
	go h.drain(conn)
}

// feed เป็นขาออกอย่างเดียว อ่านทิ้งไว้เพื่อจับตอน client หลุด
func (h *OrderFeedHub) drain(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
