package notifications_poll

import (
	"context"
	"time"

	"orderboard/internal/pkg/apperr"
	"orderboard/pkg/logger"
)

type Service interface {
	Poll(ctx context.Context) error
}

type NotificationsPoll struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewNotificationsPoll(log logger.Logger, service Service, interval time.Duration) *NotificationsPoll {
	return &NotificationsPoll{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (n *NotificationsPoll) TTL() time.Duration {
	return n.interval
}

func (n *NotificationsPoll) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, n.interval)
	defer cancel()

	err := n.service.Poll(ctxWithTimeout)
	if apperr.IsRemote(err) {
		n.log.With(
			logger.NewField("error", err),
		).Warn("notifications poll failed")
		return nil
	}
	return err
}

func (n *NotificationsPoll) Info() string {
	return "notifications poll"
}
