package dto

import (
	"time"

	"orderboard/internal/entities"
	"orderboard/internal/pkg/eta"
	"orderboard/internal/service/board"
	"orderboard/internal/service/feed"
)

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := eta.FormatTimestamp(t)
	return &s
}

func FromItems(items []entities.OrderItem) []Item {
	res := make([]Item, 0, len(items))
	for _, item := range items {
		res = append(res, Item{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			UnitPriceNOK: item.UnitPrice,
		})
	}
	return res
}

func FromCard(card board.Card) Card {
	order := card.Order

	res := Card{
		ID:                          order.ID,
		State:                       string(card.State),
		CreatedAt:                   eta.FormatTimestamp(order.CreatedAt),
		ProjectedPreparationMinutes: order.ProjectedPreparationMinutes,
		TotalDelayMinutes:           order.TotalDelayMinutes,
		Items:                       FromItems(order.Items),
		TotalNOK:                    card.Total,
		Countdown: Countdown{
			ElapsedMinutes:    card.Countdown.ElapsedMinutes,
			ReadyInMinutes:    card.Countdown.ReadyInMinutes,
			PickupInMinutes:   card.Countdown.PickupInMinutes,
			DeliveryInMinutes: card.Countdown.DeliveryInMinutes,
			Overdue:           card.Countdown.Overdue(),
		},
		Actions: make([]string, 0, len(card.Actions)),
	}
	if order.AcceptedAt != nil {
		res.AcceptedAt = timestamp(*order.AcceptedAt)
	}
	if order.Delivery != nil {
		res.Delivery = &Delivery{
			EstimatedPickupTime:   eta.FormatTimestamp(order.Delivery.EstimatedPickupTime),
			EstimatedDeliveryTime: eta.FormatTimestamp(order.Delivery.EstimatedDeliveryTime),
		}
	}
	for _, action := range card.Actions {
		res.Actions = append(res.Actions, action.String())
	}
	return res
}

func fromCards(cards []board.Card) []Card {
	res := make([]Card, 0, len(cards))
	for _, card := range cards {
		res = append(res, FromCard(card))
	}
	return res
}

func FromBoardView(view board.View) Board {
	return Board{
		New:            fromCards(view.New),
		InProgress:     fromCards(view.InProgress),
		AwaitingPickup: fromCards(view.AwaitingPickup),
		Unlinked:       view.Unlinked,
		Generation:     view.Generation,
		FetchedAt:      timestamp(view.FetchedAt),
		RenderedAt:     eta.FormatTimestamp(view.RenderedAt),
		LastError:      view.LastError,
		Pending:        view.Pending,
		Hidden:         view.Hidden,
	}
}

func FromFeedView(view feed.View) Notifications {
	items := make([]Notification, 0, len(view.Items))
	for _, n := range view.Items {
		items = append(items, Notification{
			ID:        n.ID,
			Message:   n.Message,
			CreatedAt: eta.FormatTimestamp(n.CreatedAt),
			Read:      n.Read,
		})
	}

	return Notifications{
		Items:      items,
		Unread:     view.Unread,
		Unlinked:   view.Unlinked,
		Open:       view.Open,
		Generation: view.Generation,
		FetchedAt:  timestamp(view.FetchedAt),
		LastError:  view.LastError,
	}
}

// ToProductLines подставляет количество 1, если оно не задано.
func ToProductLines(lines []TestOrderLine) []entities.ProductLine {
	res := make([]entities.ProductLine, 0, len(lines))
	for _, line := range lines {
		quantity := 1
		if line.Quantity != nil {
			quantity = *line.Quantity
		}
		res = append(res, entities.ProductLine{
			ProductID: line.ProductID,
			Quantity:  quantity,
			UnitPrice: line.UnitPriceNOK,
		})
	}
	return res
}

func FromCreatedOrder(order *entities.CreatedOrder) TestOrderResponse {
	return TestOrderResponse{
		ID:        order.ID,
		EndUserID: order.EndUserID,
		CreatedAt: eta.FormatTimestamp(order.CreatedAt),
		Items:     FromItems(order.Items),
	}
}
