package board

import (
	"time"

	"orderboard/internal/entities"
	"orderboard/internal/service/lifecycle"
)

type mutationStatus int

const (
	mutationPending mutationStatus = iota
	mutationCommitted
	mutationRolledBack
)

func (s mutationStatus) String() string {
	switch s {
	case mutationPending:
		return "pending"
	case mutationCommitted:
		return "committed"
	case mutationRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// mutation - отправленная доской команда. Отслеживается, пока снимок
// сервера ее не отразит.
type mutation struct {
	id        string
	cmd       entities.Command
	status    mutationStatus
	issuedAt  time.Time
	commitAt  time.Time
	commitGen uint64
	result    *entities.CommandResult
	// delayTotal - задержка, которую доска показала сразу после подтвержденной delay.
	delayTotal int
}

func (m *mutation) removes() bool {
	return lifecycle.Removes(m.cmd.Kind)
}

// overlay заново применяет локальный эффект мутации к свежему снимку.
func (m *mutation) overlay(snapshot entities.Snapshot) entities.Snapshot {
	switch m.status {
	case mutationPending:
		if m.removes() {
			return without(snapshot, m.cmd.OrderID)
		}
		return snapshot
	case mutationCommitted:
	default:
		return snapshot
	}

	if m.removes() {
		return without(snapshot, m.cmd.OrderID)
	}

	order, state, ok := snapshot.Find(m.cmd.OrderID)
	if !ok {
		return snapshot
	}

	switch m.cmd.Kind {
	case entities.CommandAccept:
		if state != entities.StateNew {
			return snapshot
		}
		next, to := lifecycle.Apply(order, m.cmd, m.commitAt, m.result)
		return moved(snapshot, next, to)
	case entities.CommandDone:
		if state != entities.StateInProgress {
			return snapshot
		}
		next, to := lifecycle.Apply(order, m.cmd, m.commitAt, m.result)
		return moved(snapshot, next, to)
	case entities.CommandDelay:
		if order.TotalDelayMinutes >= m.delayTotal {
			return snapshot
		}
		next := order.Clone()
		next.TotalDelayMinutes = m.delayTotal
		return moved(snapshot, next, state)
	}
	return snapshot
}

// confirmedBy сообщает, отражает ли снимок сервера эффект подтвержденной мутации.
func (m *mutation) confirmedBy(snapshot entities.Snapshot) bool {
	order, state, ok := snapshot.Find(m.cmd.OrderID)
	if m.removes() {
		return !ok
	}
	if !ok {
		return true
	}

	switch m.cmd.Kind {
	case entities.CommandAccept:
		return state != entities.StateNew
	case entities.CommandDone:
		return state.Rank() > entities.StateInProgress.Rank()
	case entities.CommandDelay:
		return order.TotalDelayMinutes >= m.delayTotal
	}
	return true
}
