package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

// Task определяет интерфейс для фоновых задач, которые могут выполняться периодически.
type Task interface {
	// TTL возвращает интервал между выполнениями задачи.
	TTL() time.Duration

	// Do выполняет логику задачи.
	Do(context.Context) error

	// Info возвращает читаемое описание задачи для логгирования и отладки.
	Info() string
}

// Triggered задача дополнительно выполняется по каждому событию из Triggers,
// не дожидаясь следующего тика.
type Triggered interface {
	Task
	Triggers() <-chan eventbus.Event
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Worker управляет выполнением набора фоновых задач.
type Worker struct {
	log    handlerLogger
	clock  clockwork.Clock
	tasks  []Task
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New создает и запускает Worker для выполнения фоновых задач.
//
// Поведение функции:
//  1. Все задачи сначала выполняются синхронно ("прогрев"), это первая загрузка данных.
//  2. Если любая задача завершается с ошибкой или паникой на этапе прогрева,
//     New возвращает ошибку и Worker не создается.
//  3. Задачи выполняются в фоне до отмены ctx или вызова Stop.
func New(ctx context.Context, log handlerLogger, clock clockwork.Clock, tasks []Task) (*Worker, error) {
	initGroup, initCtx := errgroup.WithContext(ctx)
	for i := 0; i < len(tasks); i++ {
		task := tasks[i]
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = fmt.Errorf("init panic: %v\n%s", r, stack)
					log.Error("Task panic during init",
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", string(stack)),
					)
				}
			}()
			log.Info("Initializing",
				logger.NewField("task", task.Info()),
			)
			if err := task.Do(initCtx); err != nil {
				return fmt.Errorf("%s: %w", task.Info(), err)
			}
			return nil
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	worker := &Worker{
		log:    log,
		clock:  clock,
		tasks:  tasks,
		cancel: cancel,
	}

	for i := 0; i < len(tasks); i++ {
		task := tasks[i]
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.runBackgroundTask(runCtx, task)
		}()
	}

	return worker, nil
}

// Stop отменяет все таймеры и ждет завершения выполняющихся задач.
func (w *Worker) Stop() {
	w.cancel()
	w.wg.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, skipping periodic execution",
			logger.NewField("task", task.Info()),
			logger.NewField("TTL", ttl),
		)
		return
	}
	w.log.Info("Starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("TTL", ttl),
	)

	var triggers <-chan eventbus.Event
	if triggered, ok := task.(Triggered); ok {
		triggers = triggered.Triggers()
	}

	ticker := w.clock.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping task (context cancelled)",
				logger.NewField("task", task.Info()),
			)
			return
		case <-ticker.Chan():
			w.executeTaskSafely(ctx, task)
		case event, ok := <-triggers:
			if !ok {
				triggers = nil
				continue
			}
			w.log.Debug("Task triggered",
				logger.NewField("task", task.Info()),
				logger.NewField("topic", event.Topic),
				logger.NewField("source", event.Source),
			)
			w.executeTaskSafely(ctx, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
		}
	}()

	if err := task.Do(ctx); err != nil {
		w.log.Warn("Background task failed",
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		)
	}
}
