package eta

import (
	"time"

	"orderboard/internal/entities"
)

// Countdown - производные значения для карточки заказа.
// Необязательные поля nil, если у заказа нет нужных отметок времени.
type Countdown struct {
	ElapsedMinutes    int
	ReadyInMinutes    *int
	PickupInMinutes   *int
	DeliveryInMinutes *int
	DeliveryExpired   bool
}

// Overdue - заказ в работе просрочил плановое время готовности.
func (c Countdown) Overdue() bool {
	return c.ReadyInMinutes != nil && *c.ReadyInMinutes < 0
}

type Calculator struct{}

func New() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Countdown(order entities.Order, state entities.OrderState, now time.Time) Countdown {
	base := order.CreatedAt
	if state != entities.StateNew && order.AcceptedAt != nil {
		base = *order.AcceptedAt
	}

	res := Countdown{
		ElapsedMinutes:  ElapsedMinutes(base, now),
		DeliveryExpired: IsDeliveryExpired(order, now),
	}

	if state == entities.StateInProgress {
		if ready, ok := ReadyInMinutes(order, now); ok {
			res.ReadyInMinutes = &ready
		}
	}
	if pickup, ok := PickupInMinutes(order, now); ok {
		res.PickupInMinutes = &pickup
	}
	if delivery, ok := DeliveryInMinutes(order, now); ok {
		res.DeliveryInMinutes = &delivery
	}
	return res
}

// ElapsedMinutes - целые минуты от base до now. base в будущем (рассинхрон
// часов) считается равным now, результат не бывает отрицательным.
func ElapsedMinutes(base, now time.Time) int {
	if base.After(now) {
		base = now
	}
	return int(now.Sub(base) / time.Minute)
}

// ReadyInMinutes = плановое время + задержка - минуты с момента принятия.
// Отрицательное значение: заказ должен был быть готов столько минут назад.
func ReadyInMinutes(order entities.Order, now time.Time) (int, bool) {
	if order.AcceptedAt == nil {
		return 0, false
	}

	projected := 0
	if order.ProjectedPreparationMinutes != nil {
		projected = *order.ProjectedPreparationMinutes
	}
	return projected + order.TotalDelayMinutes - ElapsedMinutes(*order.AcceptedAt, now), true
}

func PickupInMinutes(order entities.Order, now time.Time) (int, bool) {
	if order.Delivery == nil {
		return 0, false
	}
	return ceilMinutes(order.Delivery.EstimatedPickupTime.Sub(now)), true
}

func DeliveryInMinutes(order entities.Order, now time.Time) (int, bool) {
	if order.Delivery == nil {
		return 0, false
	}
	return ceilMinutes(order.Delivery.EstimatedDeliveryTime.Sub(now)), true
}

func IsDeliveryExpired(order entities.Order, now time.Time) bool {
	return order.Delivery != nil && !order.Delivery.EstimatedDeliveryTime.After(now)
}

func ceilMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	minutes := d / time.Minute
	if d%time.Minute != 0 {
		minutes++
	}
	return int(minutes)
}
