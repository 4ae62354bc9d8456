package board

import (
	"time"

	"github.com/shopspring/decimal"
	"orderboard/internal/entities"
	"orderboard/internal/pkg/eta"
	"orderboard/internal/service/lifecycle"
)

// Card - заказ в том виде, в каком его показывает доска.
type Card struct {
	Order     entities.Order
	State     entities.OrderState
	Countdown eta.Countdown
	Total     decimal.Decimal
	Actions   []entities.CommandKind
}

// View - неизменяемое представление доски на момент RenderedAt.
type View struct {
	New            []Card
	InProgress     []Card
	AwaitingPickup []Card

	Unlinked   bool
	Generation uint64
	FetchedAt  time.Time
	RenderedAt time.Time
	LastError  string
	// Pending - команды, которые еще ждут ответа хранилища.
	Pending int
	// Hidden - заказы в ожидании курьера, у которых истекло окно доставки.
	Hidden int
}

func (v View) Bucket(state entities.OrderState) []Card {
	switch state {
	case entities.StateNew:
		return v.New
	case entities.StateInProgress:
		return v.InProgress
	case entities.StateAwaitingPickup:
		return v.AwaitingPickup
	default:
		return nil
	}
}

// Find возвращает карточку заказа id.
func (v View) Find(id int64) (Card, bool) {
	for _, state := range entities.VisibleStates {
		for _, card := range v.Bucket(state) {
			if card.Order.ID == id {
				return card, true
			}
		}
	}
	return Card{}, false
}

func (v View) Len() int {
	return len(v.New) + len(v.InProgress) + len(v.AwaitingPickup)
}

func render(calc Calculator, snapshot entities.Snapshot, now time.Time) (cards map[entities.OrderState][]Card, hidden int) {
	cards = make(map[entities.OrderState][]Card, len(entities.VisibleStates))
	for _, state := range entities.VisibleStates {
		bucket := make([]Card, 0, len(snapshot.Bucket(state)))
		for _, order := range snapshot.Bucket(state) {
			countdown := calc.Countdown(order, state, now)
			if state == entities.StateAwaitingPickup && countdown.DeliveryExpired {
				hidden++
				continue
			}
			bucket = append(bucket, Card{
				Order:     order.Clone(),
				State:     state,
				Countdown: countdown,
				Total:     order.Total(),
				Actions:   lifecycle.Actions(state),
			})
		}
		cards[state] = bucket
	}
	return cards, hidden
}
