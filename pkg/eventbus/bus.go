package eventbus

import (
	"sync"
	"time"
)

// Event - именованный сигнал. Кроме источника и времени, данных не несет.
type Event struct {
	Topic  string
	Source string
	At     time.Time
}

type subscription struct {
	topics map[string]struct{}
	ch     chan Event
}

// Bus - шина publish/subscribe внутри процесса.
//
// Publish не блокируется: подписчик с полным буфером пропускает событие.
// Сигналы означают "что-то изменилось", полный буфер уже хранит повод действовать.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*subscription
	closed bool
}

func New() *Bus {
	return &Bus{
		subs: make(map[uint64]*subscription),
	}
}

// Subscribe подписывает на темы (на все, если темы не заданы). Возвращенная
// функция отписывает и закрывает канал, повторный вызов безопасен.
func (b *Bus) Subscribe(buffer int, topics ...string) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}

	sub := &subscription{
		topics: make(map[string]struct{}, len(topics)),
		ch:     make(chan Event, buffer),
	}
	for _, topic := range topics {
		sub.topics[topic] = struct{}{}
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub.ch)
			}
		})
	}
}

// Publish доставляет событие подходящим подписчикам и возвращает, скольким удалось.
func (b *Bus) Publish(event Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return 0
	}

	delivered := 0
	for _, sub := range b.subs {
		if !sub.wants(event.Topic) {
			continue
		}
		select {
		case sub.ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// Close закрывает каналы подписчиков. Последующие Publish игнорируются.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
}

func (s *subscription) wants(topic string) bool {
	if len(s.topics) == 0 {
		return true
	}
	_, ok := s.topics[topic]
	return ok
}
