package countdown_tick

import (
	"context"
	"time"

	"orderboard/pkg/logger"
)

type Service interface {
	Tick() int
}

// CountdownTick пересчитывает таймеры карточек без обращения к хранилищу.
type CountdownTick struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	hidden   int
}

func NewCountdownTick(log logger.Logger, service Service, interval time.Duration) *CountdownTick {
	return &CountdownTick{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (c *CountdownTick) TTL() time.Duration {
	return c.interval
}

func (c *CountdownTick) Do(context.Context) error {
	hidden := c.service.Tick()
	if hidden != c.hidden {
		c.log.With(
			logger.NewField("hidden", hidden),
		).Debug("expired deliveries hidden")
		c.hidden = hidden
	}
	return nil
}

func (c *CountdownTick) Info() string {
	return "countdown tick"
}
