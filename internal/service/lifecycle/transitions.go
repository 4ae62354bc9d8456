package lifecycle

import (
	"fmt"

	"orderboard/internal/entities"
)

// Transition - что команда делает с заказом.
type Transition struct {
	From entities.OrderState
	To   entities.OrderState
}

var commandTransitions = map[entities.CommandKind]Transition{
	entities.CommandAccept:  {From: entities.StateNew, To: entities.StateInProgress},
	entities.CommandDecline: {From: entities.StateNew, To: entities.StateTerminal},
	entities.CommandDelay:   {From: entities.StateInProgress, To: entities.StateInProgress},
	entities.CommandDone:    {From: entities.StateInProgress, To: entities.StateAwaitingPickup},
	entities.CommandCancel:  {From: entities.StateInProgress, To: entities.StateTerminal},
}

// commandOrder задает стабильный порядок Actions.
var commandOrder = []entities.CommandKind{
	entities.CommandAccept,
	entities.CommandDecline,
	entities.CommandDelay,
	entities.CommandDone,
	entities.CommandCancel,
}

// AllowedTransitions - допустимые переходы. Заказ в ожидании курьера покидает
// доску через хранилище (вылет дрона), а не по команде.
var AllowedTransitions = map[entities.OrderState][]entities.OrderState{
	entities.StateNew:            {entities.StateInProgress, entities.StateTerminal},
	entities.StateInProgress:     {entities.StateInProgress, entities.StateAwaitingPickup, entities.StateTerminal},
	entities.StateAwaitingPickup: {},
	entities.StateTerminal:       {},
}

var transitionSet = buildTransitionSet(AllowedTransitions)

func buildTransitionSet(transitions map[entities.OrderState][]entities.OrderState) map[entities.OrderState]map[entities.OrderState]struct{} {
	set := make(map[entities.OrderState]map[entities.OrderState]struct{}, len(transitions))
	for from, targets := range transitions {
		set[from] = make(map[entities.OrderState]struct{}, len(targets))
		for _, to := range targets {
			set[from][to] = struct{}{}
		}
	}
	return set
}

func CanTransition(from, to entities.OrderState) bool {
	targets, ok := transitionSet[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// TransitionOf возвращает переход, который выполняет команда.
func TransitionOf(kind entities.CommandKind) (Transition, error) {
	tr, ok := commandTransitions[kind]
	if !ok {
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownCommand, kind)
	}
	return tr, nil
}

// Actions - команды, которые можно предложить для заказа в state.
func Actions(state entities.OrderState) []entities.CommandKind {
	actions := make([]entities.CommandKind, 0, len(commandOrder))
	for _, kind := range commandOrder {
		if commandTransitions[kind].From == state {
			actions = append(actions, kind)
		}
	}
	return actions
}

// Removes - команды, эффект которых применяется до ответа сервера.
func Removes(kind entities.CommandKind) bool {
	return commandTransitions[kind].To == entities.StateTerminal
}

// Check проверяет, допустима ли cmd для заказа в state.
func Check(cmd entities.Command, state entities.OrderState) error {
	tr, err := TransitionOf(cmd.Kind)
	if err != nil {
		return err
	}
	if tr.From != state || !CanTransition(tr.From, tr.To) {
		return fmt.Errorf("%w: %s from %s", ErrIllegalTransition, cmd.Kind, state)
	}
	return nil
}
