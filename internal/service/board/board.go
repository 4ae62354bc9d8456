package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"orderboard/internal/entities"
	"orderboard/internal/pkg/apperr"
	"orderboard/internal/service/lifecycle"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

const (
	defaultHealTimeout   = 10 * time.Second
	defaultCommitHorizon = 30 * time.Second
)

type Config struct {
	// Source - идентификатор экземпляра в публикуемых событиях.
	Source string
	// HealTimeout ограничивает обновление после неудачного удаления.
	HealTimeout time.Duration
	// CommitHorizon - сколько неподтвержденная команда перекрывает
	// более новые снимки.
	CommitHorizon time.Duration
}

// Board владеет корзинами заказов. Пишет только она, читатели получают копии View.
//
// Каждый запрос снимка получает номер поколения. Результат применяется, только
// если более поздний запрос еще не применен: побеждает последний начатый.
type Board struct {
	log       handlerLogger
	gateway   OrderGateway
	publisher Publisher
	clock     clockwork.Clock
	calc      Calculator
	cfg       Config

	mu         sync.Mutex
	generation uint64
	applied    uint64
	orders     entities.Snapshot
	mutations  []*mutation
	unlinked   bool
	fetchedAt  time.Time
	lastErr    error
	closed     bool
	view       View
}

func New(
	log handlerLogger,
	gateway OrderGateway,
	publisher Publisher,
	clock clockwork.Clock,
	calc Calculator,
	cfg Config,
) *Board {
	if cfg.HealTimeout <= 0 {
		cfg.HealTimeout = defaultHealTimeout
	}
	if cfg.CommitHorizon <= 0 {
		cfg.CommitHorizon = defaultCommitHorizon
	}
	if cfg.Source == "" {
		cfg.Source = uuid.NewString()
	}

	b := &Board{
		log:       log,
		gateway:   gateway,
		publisher: publisher,
		clock:     clock,
		calc:      calc,
		cfg:       cfg,
	}
	b.render(clock.Now())
	return b
}

// Refresh запрашивает снимок заказов и применяет его, если более поздний запрос
// не успел раньше и доска не закрыта. Упавший запрос ничего не пишет и поколение
// не двигает, поэтому начатый раньше успешный запрос все еще применяется.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.generation++
	gen := b.generation
	b.mu.Unlock()

	started := b.clock.Now()
	snapshot, err := b.gateway.FetchOrders(ctx)
	BoardRefreshDuration.WithLabelValues(outcomeOf(err)).Observe(b.clock.Since(started).Seconds())

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		BoardRefreshTotal.WithLabelValues("closed").Inc()
		b.log.Debug("discarding fetch result, board closed",
			logger.NewField("generation", gen),
		)
		return nil
	}
	if gen <= b.applied {
		BoardRefreshTotal.WithLabelValues("stale").Inc()
		b.log.Debug("discarding stale fetch result",
			logger.NewField("generation", gen),
			logger.NewField("applied", b.applied),
		)
		return nil
	}

	now := b.clock.Now()
	switch {
	case errors.Is(err, apperr.ErrNotLinked):
		BoardRefreshTotal.WithLabelValues(outcomeOf(err)).Inc()
		b.applied = gen
		b.unlinked = true
		b.lastErr = nil
		b.fetchedAt = now
		b.render(now)
		b.log.Info("account is not linked to a restaurant")
		return nil

	case err != nil:
		BoardRefreshTotal.WithLabelValues(outcomeOf(err)).Inc()
		b.lastErr = err
		b.render(now)
		return fmt.Errorf("fetch orders: %w", err)

	case snapshot == nil:
		snapshot = &entities.Snapshot{}
	}

	BoardRefreshTotal.WithLabelValues("applied").Inc()
	next := normalize(*snapshot, b.orders)
	b.settle(next, gen, now)
	b.orders = b.overlay(next)
	b.applied = gen
	b.unlinked = false
	b.lastErr = nil
	b.fetchedAt = now
	b.render(now)
	return nil
}

// Execute проверяет cmd, отправляет ее в хранилище и применяет локальный эффект,
// когда хранилище ее приняло. decline и cancel убирают заказ с доски сразу,
// а при ошибке доска перечитывается из хранилища.
func (b *Board) Execute(ctx context.Context, cmd entities.Command) (*entities.CommandResult, error) {
	log := b.log.With(
		logger.NewField("command", cmd.Kind.String()),
		logger.NewField("order_id", cmd.OrderID),
	)

	if err := lifecycle.Validate(cmd); err != nil {
		BoardCommandsTotal.WithLabelValues(cmd.Kind.String(), outcomeOf(err)).Inc()
		return nil, fmt.Errorf("validate command: %w", err)
	}

	m, err := b.begin(cmd, log)
	if err != nil {
		return nil, err
	}

	result, err := b.send(ctx, cmd)
	if err != nil {
		BoardCommandsTotal.WithLabelValues(cmd.Kind.String(), outcomeOf(err)).Inc()
		log.Warn("command failed",
			logger.NewField("mutation_id", m.id),
			logger.NewField("error", err),
		)
		b.rollback(m, err)
		if m.removes() {
			b.heal(ctx, log)
		}
		return nil, fmt.Errorf("%s order %d: %w", cmd.Kind, cmd.OrderID, err)
	}

	BoardCommandsTotal.WithLabelValues(cmd.Kind.String(), "ok").Inc()
	b.commit(m, result)

	b.publish(entities.TopicOrdersRefresh)
	if m.removes() {
		b.publish(entities.TopicOrderCancelled)
	}
	return result, nil
}

// Tick перерисовывает представление на текущее время и возвращает число
// карточек, скрытых из-за истекшего окна доставки.
func (b *Board) Tick() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.render(b.clock.Now())
	return b.view.Hidden
}

func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.view
}

// Linked ложно, пока хранилище отвечает, что аккаунт не привязан к ресторану.
func (b *Board) Linked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return !b.unlinked
}

// Ready - снимок уже применялся и доска не закрыта.
func (b *Board) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.applied > 0 && !b.closed
}

// Close прекращает применение результатов. Запросы в полете отбрасываются,
// когда вернутся.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
}

func (b *Board) begin(cmd entities.Command, log logger.Logger) (*mutation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	if _, state, ok := b.orders.Find(cmd.OrderID); ok {
		if err := lifecycle.Check(cmd, state); err != nil {
			BoardTransitionViolationsTotal.WithLabelValues(cmd.Kind.String(), state.String()).Inc()
			log.Warn("sending command the board does not expect",
				logger.NewField("state", state.String()),
				logger.NewField("error", err),
			)
		}
	} else {
		log.Debug("command for an order not on the board")
	}

	m := &mutation{
		id:       uuid.NewString(),
		cmd:      cmd,
		status:   mutationPending,
		issuedAt: b.clock.Now(),
	}
	b.mutations = append(b.mutations, m)

	if m.removes() {
		b.orders = without(b.orders, cmd.OrderID)
	}
	b.render(b.clock.Now())
	return m, nil
}

func (b *Board) send(ctx context.Context, cmd entities.Command) (*entities.CommandResult, error) {
	switch cmd.Kind {
	case entities.CommandAccept:
		if err := b.gateway.Accept(ctx, cmd.OrderID, *cmd.Minutes); err != nil {
			return nil, err
		}
		return &entities.CommandResult{}, nil

	case entities.CommandDecline:
		if err := b.gateway.Reject(ctx, cmd.OrderID); err != nil {
			return nil, err
		}
		return &entities.CommandResult{}, nil
	}

	step, ok := lifecycle.StepOf(cmd.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", lifecycle.ErrUnknownCommand, cmd.Kind)
	}
	delay := 0
	if cmd.Minutes != nil {
		delay = *cmd.Minutes
	}

	result, err := b.gateway.Step(ctx, cmd.OrderID, step, delay)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &entities.CommandResult{}
	}
	return result, nil
}

func (b *Board) rollback(m *mutation, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m.status = mutationRolledBack
	b.drop(m)
	b.lastErr = err
	b.render(b.clock.Now())
}

func (b *Board) commit(m *mutation, result *entities.CommandResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	m.status = mutationCommitted
	m.commitAt = now
	m.commitGen = b.generation
	m.result = result

	if order, state, ok := b.orders.Find(m.cmd.OrderID); ok {
		next, to := lifecycle.Apply(order, m.cmd, now, result)
		if m.cmd.Kind == entities.CommandDelay {
			m.delayTotal = next.TotalDelayMinutes
		}
		if to == "" {
			to = state
		}
		b.orders = moved(b.orders, next, to)
	} else if !m.removes() {
		// накладывать нечего, пока снимок не принесет заказ
		b.drop(m)
	}
	b.render(now)
}

// heal перечитывает доску после неудачного удаления. Из памяти заказ не восстанавливается.
func (b *Board) heal(ctx context.Context, log logger.Logger) {
	healCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.cfg.HealTimeout)
	defer cancel()

	if err := b.Refresh(healCtx); err != nil && !errors.Is(err, ErrClosed) {
		log.Warn("self-heal refresh failed",
			logger.NewField("error", err),
		)
	}
}

// settle удаляет мутации, которые снимок сделал лишними. Вызывается под mu.
func (b *Board) settle(fetched entities.Snapshot, gen uint64, now time.Time) {
	kept := b.mutations[:0]
	for _, m := range b.mutations {
		switch m.status {
		case mutationPending:
			kept = append(kept, m)
		case mutationCommitted:
			if m.confirmedBy(fetched) {
				continue
			}
			if gen > m.commitGen && now.Sub(m.commitAt) >= b.cfg.CommitHorizon {
				b.log.Info("dropping unconfirmed command, server view wins",
					logger.NewField("mutation_id", m.id),
					logger.NewField("command", m.cmd.Kind.String()),
					logger.NewField("order_id", m.cmd.OrderID),
				)
				continue
			}
			kept = append(kept, m)
		}
	}
	for i := len(kept); i < len(b.mutations); i++ {
		b.mutations[i] = nil
	}
	b.mutations = kept
}

func (b *Board) overlay(snapshot entities.Snapshot) entities.Snapshot {
	for _, m := range b.mutations {
		snapshot = m.overlay(snapshot)
	}
	return snapshot
}

func (b *Board) drop(m *mutation) {
	for i, existing := range b.mutations {
		if existing == m {
			b.mutations = append(b.mutations[:i], b.mutations[i+1:]...)
			return
		}
	}
}

func (b *Board) render(now time.Time) {
	cards, hidden := render(b.calc, b.orders, now)

	pending := 0
	for _, m := range b.mutations {
		if m.status == mutationPending {
			pending++
		}
	}

	lastErr := ""
	if b.lastErr != nil {
		lastErr = b.lastErr.Error()
	}

	b.view = View{
		New:            cards[entities.StateNew],
		InProgress:     cards[entities.StateInProgress],
		AwaitingPickup: cards[entities.StateAwaitingPickup],
		Unlinked:       b.unlinked,
		Generation:     b.applied,
		FetchedAt:      b.fetchedAt,
		RenderedAt:     now,
		LastError:      lastErr,
		Pending:        pending,
		Hidden:         hidden,
	}

	for _, state := range entities.VisibleStates {
		BoardCards.WithLabelValues(state.String()).Set(float64(len(cards[state])))
	}
	BoardHiddenCards.Set(float64(hidden))
}

func (b *Board) publish(topic string) {
	delivered := b.publisher.Publish(eventbus.Event{
		Topic:  topic,
		Source: b.cfg.Source,
		At:     b.clock.Now(),
	})
	b.log.Debug("published board event",
		logger.NewField("topic", topic),
		logger.NewField("delivered", delivered),
	)
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return apperr.Kind(err)
}
