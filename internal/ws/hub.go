package ws

import (
	"encoding/json"
	"time"

	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/pkg/logger"
)

// OrderEvent is the payload pushed to connected dashboards whenever an
// order changes status.
type OrderEvent struct {
	Type      string            `json:"type"`
	OrderID   uint              `json:"order_id"`
	OrderCode string            `json:"order_code"`
	Status    model.OrderStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
}

// Hub fans order events out to every connected client.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run owns the client set. Must run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id": client.UserID,
				"total":   len(h.clients),
			})

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				logger.Info("WebSocket client unregistered", map[string]interface{}{
					"user_id": client.UserID,
					"total":   len(h.clients),
				})
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop it
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// PublishOrderStatus satisfies the order service's publisher interface.
// Non-blocking: when the broadcast buffer is full the event is dropped
// and logged.
func (h *Hub) PublishOrderStatus(orderID uint, orderCode string, status model.OrderStatus) {
	event := OrderEvent{
		Type:      "order_status",
		OrderID:   orderID,
		OrderCode: orderCode,
		Status:    status,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, map[string]interface{}{
			"order_id": orderID,
		})
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("Order event dropped, broadcast buffer full", map[string]interface{}{
			"order_id": orderID,
		})
	}
}
