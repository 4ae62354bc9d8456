package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type CommandKind string

const (
	CommandAccept  CommandKind = "accept"
	CommandDecline CommandKind = "decline"
	CommandDelay   CommandKind = "delay"
	CommandDone    CommandKind = "done"
	CommandCancel  CommandKind = "cancel"
)

func (k CommandKind) String() string {
	return string(k)
}

// Command - действие персонала над заказом. Minutes нужны accept и delay.
type Command struct {
	Kind    CommandKind
	OrderID int64
	Minutes *int
}

// PreparationStep - код шага приготовления в хранилище.
type PreparationStep string

const (
	StepDelayed   PreparationStep = "de"
	StepDone      PreparationStep = "d"
	StepCancelled PreparationStep = "c"
)

func (s PreparationStep) String() string {
	return string(s)
}

// CommandResult - что хранилище вернуло на команду.
type CommandResult struct {
	TotalDelayMinutes *int
}

type ProductLine struct {
	ProductID int64
	Quantity  int
	UnitPrice *decimal.Decimal
}

type CreatedOrder struct {
	ID        int64
	EndUserID int64
	CreatedAt time.Time
	Items     []OrderItem
}
