package lifecycle

import (
	"time"

	"orderboard/internal/entities"
)

// Apply возвращает заказ после локального эффекта подтвержденной команды и
// его новое состояние. result может быть nil.
func Apply(order entities.Order, cmd entities.Command, now time.Time, result *entities.CommandResult) (entities.Order, entities.OrderState) {
	tr, err := TransitionOf(cmd.Kind)
	if err != nil {
		return order, ""
	}

	next := order.Clone()
	switch cmd.Kind {
	case entities.CommandAccept:
		if cmd.Minutes != nil {
			minutes := *cmd.Minutes
			next.ProjectedPreparationMinutes = &minutes
		}
	case entities.CommandDelay:
		next.TotalDelayMinutes = DelayedTotal(order.TotalDelayMinutes, cmd.Minutes, result)
	}

	// accepted_at есть ровно тогда, когда заказ прошел New
	if tr.To == entities.StateInProgress || tr.To == entities.StateAwaitingPickup {
		if next.AcceptedAt == nil {
			at := now
			next.AcceptedAt = &at
		}
	}
	return next, tr.To
}

// DelayedTotal прибавляет задержку к current. Если сумма с сервера больше,
// берется она. Результат не меньше current и нуля.
func DelayedTotal(current int, minutes *int, result *entities.CommandResult) int {
	total := current
	if minutes != nil && *minutes > 0 {
		total += *minutes
	}
	if result != nil && result.TotalDelayMinutes != nil && *result.TotalDelayMinutes > total {
		total = *result.TotalDelayMinutes
	}
	if total < 0 {
		total = 0
	}
	return total
}

// StepOf переводит команды над заказом в работе в код шага хранилища.
func StepOf(kind entities.CommandKind) (entities.PreparationStep, bool) {
	switch kind {
	case entities.CommandDelay:
		return entities.StepDelayed, true
	case entities.CommandDone:
		return entities.StepDone, true
	case entities.CommandCancel:
		return entities.StepCancelled, true
	default:
		return "", false
	}
}
