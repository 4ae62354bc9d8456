package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderState string

const (
	StateNew            OrderState = "new"
	StateInProgress     OrderState = "in_progress"
	StateAwaitingPickup OrderState = "awaiting_pickup"
	StateTerminal       OrderState = "terminal"
)

func (s OrderState) String() string {
	return string(s)
}

// Rank упорядочивает состояния по конвейеру, терминальное последнее.
func (s OrderState) Rank() int {
	switch s {
	case StateNew:
		return 1
	case StateInProgress:
		return 2
	case StateAwaitingPickup:
		return 3
	case StateTerminal:
		return 4
	default:
		return 0
	}
}

// VisibleStates - корзины доски в порядке показа.
var VisibleStates = []OrderState{StateNew, StateInProgress, StateAwaitingPickup}

type OrderItem struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Delivery struct {
	EstimatedPickupTime   time.Time
	EstimatedDeliveryTime time.Time
}

type Order struct {
	ID                          int64
	CreatedAt                   time.Time
	Items                       []OrderItem
	AcceptedAt                  *time.Time
	ProjectedPreparationMinutes *int
	TotalDelayMinutes           int
	Delivery                    *Delivery
}

func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clone возвращает копию, не разделяющую память с o.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = make([]OrderItem, len(o.Items))
		copy(c.Items, o.Items)
	}
	if o.AcceptedAt != nil {
		at := *o.AcceptedAt
		c.AcceptedAt = &at
	}
	if o.ProjectedPreparationMinutes != nil {
		m := *o.ProjectedPreparationMinutes
		c.ProjectedPreparationMinutes = &m
	}
	if o.Delivery != nil {
		d := *o.Delivery
		c.Delivery = &d
	}
	return c
}

// Snapshot - разбиение видимых заказов по корзинам, как его отдает сервер.
type Snapshot struct {
	New            []Order
	InProgress     []Order
	AwaitingPickup []Order
}

func (s *Snapshot) Bucket(state OrderState) []Order {
	switch state {
	case StateNew:
		return s.New
	case StateInProgress:
		return s.InProgress
	case StateAwaitingPickup:
		return s.AwaitingPickup
	default:
		return nil
	}
}

func (s *Snapshot) SetBucket(state OrderState, orders []Order) {
	switch state {
	case StateNew:
		s.New = orders
	case StateInProgress:
		s.InProgress = orders
	case StateAwaitingPickup:
		s.AwaitingPickup = orders
	}
}

// Find возвращает заказ id и его корзину.
func (s *Snapshot) Find(id int64) (Order, OrderState, bool) {
	for _, state := range VisibleStates {
		for _, order := range s.Bucket(state) {
			if order.ID == id {
				return order, state, true
			}
		}
	}
	return Order{}, "", false
}

func (s *Snapshot) Len() int {
	return len(s.New) + len(s.InProgress) + len(s.AwaitingPickup)
}
