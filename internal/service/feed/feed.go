package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"orderboard/internal/entities"
	"orderboard/internal/pkg/apperr"
	"orderboard/pkg/logger"
)

const defaultLease = time.Minute

type Config struct {
	// AlwaysOn - опрашивать ленту, даже если ее никто не открыл.
	AlwaysOn bool
	// Lease - сколько один Open держит опрос ленты.
	Lease time.Duration
}

// View - копия состояния ленты. Items от новых к старым, как отдает сервер.
type View struct {
	Items      []entities.Notification
	Unread     bool
	Unlinked   bool
	Open       bool
	Generation uint64
	FetchedAt  time.Time
	LastError  string
}

// Feed ведет ленту уведомлений. Отметка о прочтении оптимистичная и не
// откатывается, следующий опрос вернет состояние сервера.
type Feed struct {
	log     handlerLogger
	gateway NotificationGateway
	clock   clockwork.Clock
	cfg     Config

	mu         sync.Mutex
	generation uint64
	applied    uint64
	items      []entities.Notification
	unlinked   bool
	leaseUntil time.Time
	fetchedAt  time.Time
	lastErr    error
	closed     bool
}

func New(log handlerLogger, gateway NotificationGateway, clock clockwork.Clock, cfg Config) *Feed {
	if cfg.Lease <= 0 {
		cfg.Lease = defaultLease
	}
	return &Feed{
		log:     log,
		gateway: gateway,
		clock:   clock,
		cfg:     cfg,
	}
}

// Poll запрашивает ленту, если она всегда включена или кто-то держит аренду.
func (f *Feed) Poll(ctx context.Context) error {
	f.mu.Lock()
	active := f.cfg.AlwaysOn || f.leaseActive(f.clock.Now())
	f.mu.Unlock()

	if !active {
		FeedPollsTotal.WithLabelValues("skipped").Inc()
		return nil
	}
	return f.fetch(ctx)
}

// Open берет или продлевает аренду просмотра и сразу запрашивает ленту.
func (f *Feed) Open(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.leaseUntil = f.clock.Now().Add(f.cfg.Lease)
	f.mu.Unlock()

	return f.fetch(ctx)
}

// Close отпускает аренду. Опрос прекращается, если лента не AlwaysOn.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.leaseUntil = time.Time{}
}

// Shutdown отбрасывает все еще не вернувшиеся запросы.
func (f *Feed) Shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
}

func (f *Feed) MarkOne(ctx context.Context, notificationID int64) error {
	if notificationID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNotificationID, notificationID)
	}

	f.mu.Lock()
	for i := range f.items {
		if f.items[i].ID == notificationID {
			f.items[i].Read = true
		}
	}
	f.updateUnread()
	f.mu.Unlock()

	if err := f.gateway.MarkRead(ctx, notificationID); err != nil {
		FeedMarksTotal.WithLabelValues("one", apperr.Kind(err)).Inc()
		f.log.Warn("mark notification read failed, next poll corrects it",
			logger.NewField("notification_id", notificationID),
			logger.NewField("error", err),
		)
		return fmt.Errorf("mark notification %d read: %w", notificationID, err)
	}
	FeedMarksTotal.WithLabelValues("one", "ok").Inc()
	return nil
}

func (f *Feed) MarkAll(ctx context.Context) error {
	f.mu.Lock()
	for i := range f.items {
		f.items[i].Read = true
	}
	f.updateUnread()
	f.mu.Unlock()

	if err := f.gateway.MarkAllRead(ctx); err != nil {
		FeedMarksTotal.WithLabelValues("all", apperr.Kind(err)).Inc()
		f.log.Warn("mark all notifications read failed, next poll corrects it",
			logger.NewField("error", err),
		)
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	FeedMarksTotal.WithLabelValues("all", "ok").Inc()
	return nil
}

func (f *Feed) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]entities.Notification, len(f.items))
	copy(items, f.items)

	lastErr := ""
	if f.lastErr != nil {
		lastErr = f.lastErr.Error()
	}

	return View{
		Items:      items,
		Unread:     unread(f.items),
		Unlinked:   f.unlinked,
		Open:       f.leaseActive(f.clock.Now()),
		Generation: f.applied,
		FetchedAt:  f.fetchedAt,
		LastError:  lastErr,
	}
}

func (f *Feed) fetch(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.generation++
	gen := f.generation
	f.mu.Unlock()

	items, err := f.gateway.FetchNotifications(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen <= f.applied {
		FeedPollsTotal.WithLabelValues("stale").Inc()
		f.log.Debug("discarding notifications fetch",
			logger.NewField("generation", gen),
			logger.NewField("applied", f.applied),
		)
		return nil
	}

	switch {
	case errors.Is(err, apperr.ErrNotLinked):
		FeedPollsTotal.WithLabelValues(apperr.Kind(err)).Inc()
		f.applied = gen
		f.unlinked = true
		f.lastErr = nil
		return nil
	case err != nil:
		FeedPollsTotal.WithLabelValues(apperr.Kind(err)).Inc()
		f.lastErr = err
		return fmt.Errorf("fetch notifications: %w", err)
	}

	FeedPollsTotal.WithLabelValues("applied").Inc()
	f.items = make([]entities.Notification, len(items))
	copy(f.items, items)
	f.applied = gen
	f.unlinked = false
	f.lastErr = nil
	f.fetchedAt = f.clock.Now()
	f.updateUnread()
	return nil
}

func (f *Feed) leaseActive(now time.Time) bool {
	return !f.leaseUntil.IsZero() && now.Before(f.leaseUntil)
}

func (f *Feed) updateUnread() {
	count := 0
	for _, item := range f.items {
		if !item.Read {
			count++
		}
	}
	FeedUnread.Set(float64(count))
}

func unread(items []entities.Notification) bool {
	for _, item := range items {
		if !item.Read {
			return true
		}
	}
	return false
}
