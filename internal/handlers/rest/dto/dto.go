package dto

import (
	"github.com/shopspring/decimal"
)

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type Item struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPriceNOK decimal.Decimal `json:"unit_price_NOK"`
}

type Delivery struct {
	EstimatedPickupTime   string `json:"estimated_pickup_time"`
	EstimatedDeliveryTime string `json:"estimated_delivery_time"`
}

type Countdown struct {
	ElapsedMinutes    int  `json:"elapsed_minutes"`
	ReadyInMinutes    *int `json:"ready_in_minutes,omitempty"`
	PickupInMinutes   *int `json:"pickup_in_minutes,omitempty"`
	DeliveryInMinutes *int `json:"delivery_in_minutes,omitempty"`
	Overdue           bool `json:"overdue"`
}

type Card struct {
	ID                          int64           `json:"id"`
	State                       string          `json:"state"`
	CreatedAt                   string          `json:"created_at"`
	AcceptedAt                  *string         `json:"accepted_at,omitempty"`
	ProjectedPreparationMinutes *int            `json:"projected_preparation_minutes,omitempty"`
	TotalDelayMinutes           int             `json:"total_delay_minutes"`
	Items                       []Item          `json:"items"`
	TotalNOK                    decimal.Decimal `json:"total_NOK"`
	Delivery                    *Delivery       `json:"delivery,omitempty"`
	Countdown                   Countdown       `json:"countdown"`
	Actions                     []string        `json:"actions"`
}

type Board struct {
	New            []Card  `json:"new_orders"`
	InProgress     []Card  `json:"in_progress_orders"`
	AwaitingPickup []Card  `json:"awaiting_pickup_orders"`
	Unlinked       bool    `json:"unlinked"`
	Generation     uint64  `json:"generation"`
	FetchedAt      *string `json:"fetched_at,omitempty"`
	RenderedAt     string  `json:"rendered_at"`
	LastError      string  `json:"last_error,omitempty"`
	Pending        int     `json:"pending"`
	Hidden         int     `json:"hidden"`
}

// CommandRequest - тело команды над заказом. Minutes читается как float,
// дробные и отрицательные значения отклоняются явно.
type CommandRequest struct {
	Minutes *float64 `json:"minutes,omitempty"`
}

type CommandResponse struct {
	OrderID           int64  `json:"order_id"`
	Action            string `json:"action"`
	TotalDelayMinutes *int   `json:"total_delay_minutes,omitempty"`
}

type Notification struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
	Read      bool   `json:"read"`
}

type Notifications struct {
	Items      []Notification `json:"notifications"`
	Unread     bool           `json:"unread"`
	Unlinked   bool           `json:"unlinked"`
	Open       bool           `json:"open"`
	Generation uint64         `json:"generation"`
	FetchedAt  *string        `json:"fetched_at,omitempty"`
	LastError  string         `json:"last_error,omitempty"`
}

type TestOrderLine struct {
	ProductID    int64            `json:"product_id"`
	Quantity     *int             `json:"quantity,omitempty"`
	UnitPriceNOK *decimal.Decimal `json:"unit_price_NOK,omitempty"`
}

type TestOrderRequest struct {
	Items []TestOrderLine `json:"items"`
}

type TestOrderResponse struct {
	ID        int64  `json:"id"`
	EndUserID int64  `json:"end_user_id"`
	CreatedAt string `json:"created_at"`
	Items     []Item `json:"items"`
}
