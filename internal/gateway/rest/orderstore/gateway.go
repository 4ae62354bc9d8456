package orderstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"orderboard/internal/entities"
	"orderboard/internal/pkg/apperr"
	retrierconfig "orderboard/pkg/retrier"
	"orderboard/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "orderstore"

	sessionCookie = "sessionid"
	csrfHeader    = "X-CSRFToken"
	requestHeader = "X-Request-ID"

	maxBodyBytes = 1 << 20
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 3
)

type Config struct {
	BaseURL   string
	SessionID string
	CSRFToken string
}

// Gateway - JSON/HTTP клиент удаленного хранилища заказов. Повторяются только
// чтения снимков, команды уходят ровно один раз.
type Gateway struct {
	baseURL *url.URL
	cfg     Config
	client  httpDoer
	retrier retrier
	clock   clockwork.Clock
}

func New(cfg Config, client httpDoer, clock clockwork.Clock) (*Gateway, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse order store url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("order store url must be absolute: %q", cfg.BaseURL)
	}

	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		baseURL: parsed,
		cfg:     cfg,
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		clock:   clock,
	}, nil
}

func (g *Gateway) FetchOrders(ctx context.Context) (*entities.Snapshot, error) {
	var resp ordersResponse

	err := g.executeWithMetrics(ctx, "FetchOrders", true, func(ctx context.Context) error {
		return g.do(ctx, http.MethodGet, "/api/orders/", nil, &resp, true)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway orderstore, fetch orders: %w", err)
	}

	return toDomainSnapshot(resp, g.clock.Now()), nil
}

func (g *Gateway) Accept(ctx context.Context, orderID int64, projectedMinutes int) error {
	req := acceptRequest{
		OrderID:                         orderID,
		ProjectedPreparationTimeMinutes: projectedMinutes,
	}

	err := g.executeWithMetrics(ctx, "Accept", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/preparation_accepted/", req, nil, false)
	})
	if err != nil {
		return fmt.Errorf("gateway orderstore, accept order %d: %w", orderID, err)
	}
	return nil
}

func (g *Gateway) Reject(ctx context.Context, orderID int64) error {
	req := orderIDRequest{OrderID: orderID}

	err := g.executeWithMetrics(ctx, "Reject", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/preparation_rejected/", req, nil, false)
	})
	if err != nil {
		return fmt.Errorf("gateway orderstore, reject order %d: %w", orderID, err)
	}
	return nil
}

func (g *Gateway) Step(ctx context.Context, orderID int64, step entities.PreparationStep, delayMinutes int) (*entities.CommandResult, error) {
	req := stepRequest{
		OrderID:          orderID,
		Status:           step.String(),
		DelaytimeMinutes: delayMinutes,
	}

	var resp stepResponse
	err := g.executeWithMetrics(ctx, "Step", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/preparation_step/", req, &resp, false)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway orderstore, step %s order %d: %w", step, orderID, err)
	}

	return &entities.CommandResult{TotalDelayMinutes: resp.TotalDelayMinutes}, nil
}

func (g *Gateway) CreateOrder(ctx context.Context, lines []entities.ProductLine) (*entities.CreatedOrder, error) {
	req := createOrderRequest{Products: toProductLines(lines)}

	var resp createOrderResponse
	err := g.executeWithMetrics(ctx, "CreateOrder", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/order_created/", req, &resp, false)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway orderstore, create order: %w", err)
	}

	return toDomainCreatedOrder(resp, g.clock.Now()), nil
}

func (g *Gateway) CancelOrder(ctx context.Context, orderID int64) error {
	req := orderIDRequest{OrderID: orderID}

	err := g.executeWithMetrics(ctx, "CancelOrder", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/order_cancelled/", req, nil, false)
	})
	if err != nil {
		return fmt.Errorf("gateway orderstore, cancel order %d: %w", orderID, err)
	}
	return nil
}

func (g *Gateway) FetchNotifications(ctx context.Context) ([]entities.Notification, error) {
	var resp notificationsResponse

	err := g.executeWithMetrics(ctx, "FetchNotifications", true, func(ctx context.Context) error {
		return g.do(ctx, http.MethodGet, "/api/notifications/", nil, &resp, true)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway orderstore, fetch notifications: %w", err)
	}

	return toDomainNotifications(resp.Notifications, g.clock.Now()), nil
}

func (g *Gateway) MarkRead(ctx context.Context, notificationID int64) error {
	endpoint := "/api/notifications/mark-read/" + strconv.FormatInt(notificationID, 10) + "/"

	err := g.executeWithMetrics(ctx, "MarkRead", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, endpoint, nil, nil, false)
	})
	if err != nil {
		return fmt.Errorf("gateway orderstore, mark notification %d read: %w", notificationID, err)
	}
	return nil
}

func (g *Gateway) MarkAllRead(ctx context.Context) error {
	err := g.executeWithMetrics(ctx, "MarkAllRead", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/notifications/mark-all-read/", nil, nil, false)
	})
	if err != nil {
		return fmt.Errorf("gateway orderstore, mark all notifications read: %w", err)
	}
	return nil
}

// do отправляет один запрос. notFoundIsUnlinked - для чтений, где 404 значит,
// что аккаунт не привязан к ресторану.
func (g *Gateway) do(ctx context.Context, method, endpoint string, in, out any, notFoundIsUnlinked bool) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	target := *g.baseURL
	target.Path = path.Join(target.Path, endpoint)
	if strings.HasSuffix(endpoint, "/") {
		target.Path += "/"
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	g.decorate(req, in != nil)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", apperr.ErrNetwork, err)
	}

	if err := classify(resp.StatusCode, raw, notFoundIsUnlinked); err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", apperr.ErrMalformed, err)
	}
	return nil
}

func (g *Gateway) decorate(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestHeader, uuid.NewString())
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.cfg.CSRFToken != "" {
		req.Header.Set(csrfHeader, g.cfg.CSRFToken)
		req.Header.Set("Referer", g.baseURL.String())
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: g.cfg.CSRFToken})
	}
	if g.cfg.SessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: g.cfg.SessionID})
	}
}

func classify(status int, body []byte, notFoundIsUnlinked bool) error {
	if status >= 200 && status < 300 {
		return nil
	}

	reason := reasonOf(body)
	switch {
	case strings.Contains(strings.ToLower(reason), "not linked"):
		return fmt.Errorf("%w: %s", apperr.ErrNotLinked, reason)
	case status == http.StatusNotFound && notFoundIsUnlinked:
		return apperr.ErrNotLinked
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: status %d: %s", apperr.ErrNetwork, status, reason)
	default:
		return &apperr.RejectedError{Status: status, Reason: reason}
	}
}

func reasonOf(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return resp.Error
	}
	reason := strings.TrimSpace(string(body))
	if len(reason) > 200 {
		reason = reason[:200]
	}
	return reason
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, apperr.ErrNetwork)
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, retry bool, fn func(context.Context) error) error {
	var attempt uint64
	start := g.clock.Now()

	call := func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	}

	var err error
	if retry {
		err = g.retrier.ExecuteWithContext(ctx, call)
	} else {
		err = call(ctx)
	}

	outcome := outcomeOf(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, outcome).Observe(g.clock.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, outcome).Inc()
	}

	return err
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return apperr.Kind(err)
}
