package board

import (
	"orderboard/internal/entities"
)

// normalize превращает снимок сервера в состояние доски. prior - то, что доска
// знала до запроса.
//
// Заказ попадает ровно в одну корзину, самую дальнюю из тех, где он пришел.
// accepted_at есть только после New. Задержка не уменьшается, а окно доставки,
// однажды полученное, сохраняется.
func normalize(server entities.Snapshot, prior entities.Snapshot) entities.Snapshot {
	best := make(map[int64]entities.OrderState, server.Len())
	for _, state := range entities.VisibleStates {
		for _, order := range server.Bucket(state) {
			if current, ok := best[order.ID]; !ok || state.Rank() > current.Rank() {
				best[order.ID] = state
			}
		}
	}

	known := index(prior)
	emitted := make(map[int64]struct{}, len(best))

	var next entities.Snapshot
	for _, state := range entities.VisibleStates {
		orders := make([]entities.Order, 0, len(server.Bucket(state)))
		for _, order := range server.Bucket(state) {
			if best[order.ID] != state {
				continue
			}
			if _, dup := emitted[order.ID]; dup {
				continue
			}
			emitted[order.ID] = struct{}{}

			prev, seen := known[order.ID]
			orders = append(orders, reconcile(order.Clone(), state, prev, seen))
		}
		next.SetBucket(state, orders)
	}
	return next
}

func reconcile(order entities.Order, state entities.OrderState, prev entities.Order, seen bool) entities.Order {
	if state == entities.StateNew {
		order.AcceptedAt = nil
	} else if order.AcceptedAt == nil {
		at := order.CreatedAt
		if seen && prev.AcceptedAt != nil {
			at = *prev.AcceptedAt
		}
		order.AcceptedAt = &at
	}

	if order.TotalDelayMinutes < 0 {
		order.TotalDelayMinutes = 0
	}
	if !seen {
		return order
	}

	if order.ProjectedPreparationMinutes == nil && prev.ProjectedPreparationMinutes != nil {
		minutes := *prev.ProjectedPreparationMinutes
		order.ProjectedPreparationMinutes = &minutes
	}
	if prev.TotalDelayMinutes > order.TotalDelayMinutes {
		order.TotalDelayMinutes = prev.TotalDelayMinutes
	}
	if prev.Delivery != nil {
		delivery := *prev.Delivery
		order.Delivery = &delivery
	}
	return order
}

func index(snapshot entities.Snapshot) map[int64]entities.Order {
	known := make(map[int64]entities.Order, snapshot.Len())
	for _, state := range entities.VisibleStates {
		for _, order := range snapshot.Bucket(state) {
			known[order.ID] = order
		}
	}
	return known
}

// without возвращает снимок без заказа id.
func without(snapshot entities.Snapshot, id int64) entities.Snapshot {
	var next entities.Snapshot
	for _, state := range entities.VisibleStates {
		orders := make([]entities.Order, 0, len(snapshot.Bucket(state)))
		for _, order := range snapshot.Bucket(state) {
			if order.ID != id {
				orders = append(orders, order)
			}
		}
		next.SetBucket(state, orders)
	}
	return next
}

// moved возвращает снимок, где order лежит в корзине state вместо прежней копии.
// В своей корзине заказ сохраняет позицию, при смене корзины встает в конец.
func moved(snapshot entities.Snapshot, order entities.Order, state entities.OrderState) entities.Snapshot {
	var next entities.Snapshot
	for _, bucket := range entities.VisibleStates {
		orders := make([]entities.Order, 0, len(snapshot.Bucket(bucket))+1)
		placed := false
		for _, existing := range snapshot.Bucket(bucket) {
			if existing.ID != order.ID {
				orders = append(orders, existing)
				continue
			}
			if bucket == state {
				orders = append(orders, order)
				placed = true
			}
		}
		if bucket == state && !placed {
			orders = append(orders, order)
		}
		next.SetBucket(bucket, orders)
	}
	return next
}
