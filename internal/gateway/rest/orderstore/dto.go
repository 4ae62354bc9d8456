package orderstore

import "github.com/shopspring/decimal"

type errorResponse struct {
	Error string `json:"error"`
}

type orderItemDTO struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPriceNOK decimal.Decimal `json:"unit_price_NOK"`
}

type deliveryDTO struct {
	EstimatedPickupTime   string `json:"estimated_pickup_time"`
	EstimatedDeliveryTime string `json:"estimated_delivery_time"`
}

type orderDTO struct {
	ID                              int64          `json:"id"`
	CreatedAt                       string         `json:"created_at"`
	Items                           []orderItemDTO `json:"items"`
	Delivery                        *deliveryDTO   `json:"delivery,omitempty"`
	AcceptedAt                      *string        `json:"accepted_at,omitempty"`
	ProjectedPreparationTimeMinutes *int           `json:"projected_preparation_time_minutes,omitempty"`
	TotalDelayMinutes               *int           `json:"total_delay_minutes,omitempty"`
}

type ordersResponse struct {
	NewOrders            []orderDTO `json:"new_orders"`
	InProgressOrders     []orderDTO `json:"in_progress_orders"`
	AwaitingPickupOrders []orderDTO `json:"awaiting_pickup_orders"`
}

type orderIDRequest struct {
	OrderID int64 `json:"order_id"`
}

type acceptRequest struct {
	OrderID                         int64 `json:"order_id"`
	ProjectedPreparationTimeMinutes int   `json:"projected_preparation_time_minutes"`
}

type stepRequest struct {
	OrderID          int64  `json:"order_id"`
	Status           string `json:"status"`
	DelaytimeMinutes int    `json:"delaytime_minutes"`
}

type stepResponse struct {
	TotalDelayMinutes *int `json:"total_delay_minutes"`
}

type productLineDTO struct {
	ProductID    int64            `json:"product_id"`
	Quantity     int              `json:"quantity"`
	UnitPriceNOK *decimal.Decimal `json:"unit_price_NOK,omitempty"`
}

type createOrderRequest struct {
	Products []productLineDTO `json:"products"`
}

type createdOrderDTO struct {
	ID        int64  `json:"id"`
	EndUserID int64  `json:"end_user_id"`
	CreatedAt string `json:"created_at"`
}

type createOrderResponse struct {
	Order createdOrderDTO `json:"order"`
	Items []orderItemDTO  `json:"items"`
}

type notificationDTO struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

type notificationsResponse struct {
	Notifications []notificationDTO `json:"notifications"`
}
