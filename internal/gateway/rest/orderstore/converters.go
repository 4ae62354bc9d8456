package orderstore

import (
	"time"

	"orderboard/internal/entities"
	"orderboard/internal/pkg/eta"
)

func parseTimestamp(field, raw string, now time.Time) time.Time {
	t, ok := eta.ParseTimestamp(raw, now)
	if !ok {
		TimestampParseFallbackTotal.WithLabelValues(field).Inc()
	}
	return t
}

func toDomainItems(items []orderItemDTO) []entities.OrderItem {
	res := make([]entities.OrderItem, 0, len(items))
	for _, item := range items {
		res = append(res, entities.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPriceNOK,
		})
	}
	return res
}

func toDomainOrder(dto orderDTO, now time.Time) entities.Order {
	order := entities.Order{
		ID:        dto.ID,
		CreatedAt: parseTimestamp("created_at", dto.CreatedAt, now),
		Items:     toDomainItems(dto.Items),
	}

	if dto.AcceptedAt != nil {
		at := parseTimestamp("accepted_at", *dto.AcceptedAt, now)
		order.AcceptedAt = &at
	}
	if dto.ProjectedPreparationTimeMinutes != nil {
		minutes := *dto.ProjectedPreparationTimeMinutes
		order.ProjectedPreparationMinutes = &minutes
	}
	if dto.TotalDelayMinutes != nil && *dto.TotalDelayMinutes > 0 {
		order.TotalDelayMinutes = *dto.TotalDelayMinutes
	}
	if dto.Delivery != nil {
		order.Delivery = &entities.Delivery{
			EstimatedPickupTime:   parseTimestamp("estimated_pickup_time", dto.Delivery.EstimatedPickupTime, now),
			EstimatedDeliveryTime: parseTimestamp("estimated_delivery_time", dto.Delivery.EstimatedDeliveryTime, now),
		}
	}
	return order
}

func toDomainOrders(dtos []orderDTO, now time.Time) []entities.Order {
	res := make([]entities.Order, 0, len(dtos))
	for _, dto := range dtos {
		res = append(res, toDomainOrder(dto, now))
	}
	return res
}

func toDomainSnapshot(resp ordersResponse, now time.Time) *entities.Snapshot {
	return &entities.Snapshot{
		New:            toDomainOrders(resp.NewOrders, now),
		InProgress:     toDomainOrders(resp.InProgressOrders, now),
		AwaitingPickup: toDomainOrders(resp.AwaitingPickupOrders, now),
	}
}

func toProductLines(lines []entities.ProductLine) []productLineDTO {
	res := make([]productLineDTO, 0, len(lines))
	for _, line := range lines {
		dto := productLineDTO{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if line.UnitPrice != nil {
			price := *line.UnitPrice
			dto.UnitPriceNOK = &price
		}
		res = append(res, dto)
	}
	return res
}

func toDomainCreatedOrder(resp createOrderResponse, now time.Time) *entities.CreatedOrder {
	return &entities.CreatedOrder{
		ID:        resp.Order.ID,
		EndUserID: resp.Order.EndUserID,
		CreatedAt: parseTimestamp("created_at", resp.Order.CreatedAt, now),
		Items:     toDomainItems(resp.Items),
	}
}

func toDomainNotifications(dtos []notificationDTO, now time.Time) []entities.Notification {
	res := make([]entities.Notification, 0, len(dtos))
	for _, dto := range dtos {
		res = append(res, entities.Notification{
			ID:        dto.ID,
			Message:   dto.Message,
			Read:      dto.Read,
			CreatedAt: parseTimestamp("notification_created_at", dto.CreatedAt, now),
		})
	}
	return res
}
