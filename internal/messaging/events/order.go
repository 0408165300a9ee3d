package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/shopcart/internal/messaging"
	"github.com/google/uuid"
)

type OrderPlacedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	SessionID string    `json:"session_id,omitempty"`
	ItemCount int       `json:"item_count"`
	Total     string    `json:"total"`
	Currency  string    `json:"currency"`
	PlacedAt  time.Time `json:"placed_at"`
}

func (o OrderPlacedEvent) Subject() string {
	return messaging.OrdersPlacedSubject
}

func (o OrderPlacedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
