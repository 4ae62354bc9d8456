package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultOrdersPollInterval        = 10 * time.Second
	defaultNotificationsPollInterval = 15 * time.Second
	defaultCountdownTickInterval     = time.Second
	defaultFeedLease                 = time.Minute
	defaultHealTimeout               = 10 * time.Second
	defaultCommitHorizon             = 30 * time.Second
	defaultRemoteRequestTimeout      = 5 * time.Second
	defaultKafkaTopic                = "orders.changed"
	defaultLogLevel                  = "info"
)

type (
	Tasks struct {
		OrdersPollInterval        time.Duration
		NotificationsPollInterval time.Duration
		CountdownTickInterval     time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	RemoteStore struct {
		BaseURL        string
		SessionID      string
		CSRFToken      string
		RequestTimeout time.Duration
	}

	Board struct {
		HealTimeout   time.Duration
		CommitHorizon time.Duration
	}

	Feed struct {
		AlwaysOn bool
		Lease    time.Duration
	}

	Kafka struct {
		Enabled       bool
		Brokers       []string
		Topic         string
		ConsumerGroup string
		Sarama        Sarama
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	Log struct {
		Level string
	}

	Config struct {
		InstanceID  string
		Tasks       Tasks
		Server      HTTPServer
		RemoteStore RemoteStore
		Board       Board
		Feed        Feed
		Kafka       Kafka
		Log         Log
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	ordersInterval, err := osGetEnvDuration("BACKGROUND_ORDERS_POLL_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	notificationsInterval, err := osGetEnvDuration("BACKGROUND_NOTIFICATIONS_POLL_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	tickInterval, err := osGetEnvDuration("BACKGROUND_COUNTDOWN_TICK_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	remoteTimeout, err := osGetEnvDuration("ORDERSTORE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	healTimeout, err := osGetEnvDuration("BOARD_HEAL_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	commitHorizon, err := osGetEnvDuration("BOARD_COMMIT_HORIZON")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	alwaysOn, err := osGetBool("NOTIFICATIONS_ALWAYS_ON")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	lease, err := osGetEnvDuration("NOTIFICATIONS_VIEW_LEASE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	kafkaEnabled, err := osGetBool("KAFKA_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		InstanceID: os.Getenv("INSTANCE_ID"),
		Tasks: Tasks{
			OrdersPollInterval:        orDefault(ordersInterval, defaultOrdersPollInterval),
			NotificationsPollInterval: orDefault(notificationsInterval, defaultNotificationsPollInterval),
			CountdownTickInterval:     orDefault(tickInterval, defaultCountdownTickInterval),
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		RemoteStore: RemoteStore{
			BaseURL:        os.Getenv("ORDERSTORE_BASE_URL"),
			SessionID:      os.Getenv("ORDERSTORE_SESSION_ID"),
			CSRFToken:      os.Getenv("ORDERSTORE_CSRF_TOKEN"),
			RequestTimeout: orDefault(remoteTimeout, defaultRemoteRequestTimeout),
		},
		Board: Board{
			HealTimeout:   orDefault(healTimeout, defaultHealTimeout),
			CommitHorizon: orDefault(commitHorizon, defaultCommitHorizon),
		},
		Feed: Feed{
			AlwaysOn: alwaysOn,
			Lease:    orDefault(lease, defaultFeedLease),
		},
		Kafka: Kafka{
			Enabled:       kafkaEnabled,
			Brokers:       osGetList("KAFKA_BROKERS"),
			Topic:         orDefaultString(os.Getenv("KAFKA_TOPIC"), defaultKafkaTopic),
			ConsumerGroup: os.Getenv("KAFKA_CONSUMER_GROUP"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
		},
		Log: Log{
			Level: orDefaultString(os.Getenv("LOG_LEVEL"), defaultLogLevel),
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.RemoteStore.BaseURL == "" {
		return errors.New("ORDERSTORE_BASE_URL is required")
	}
	u, err := url.Parse(cfg.RemoteStore.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ORDERSTORE_BASE_URL must be an absolute URL, got %q", cfg.RemoteStore.BaseURL)
	}

	if cfg.Tasks.OrdersPollInterval < 0 || cfg.Tasks.NotificationsPollInterval < 0 || cfg.Tasks.CountdownTickInterval < 0 {
		return errors.New("background intervals must not be negative")
	}
	if cfg.Feed.Lease < 0 {
		return errors.New("NOTIFICATIONS_VIEW_LEASE must not be negative")
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.Log.Level)
	}

	if !cfg.Kafka.Enabled {
		return nil
	}

	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	return nil
}

func orDefault(val, def time.Duration) time.Duration {
	if val == 0 {
		return def
	}
	return val
}

func orDefaultString(val, def string) string {
	if val == "" {
		return def
	}
	return val
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

// osGetList делит переменную по запятым и выбрасывает пустые элементы.
func osGetList(s string) []string {
	val := os.Getenv(s)
	if val == "" {
		return nil
	}

	parts := strings.Split(val, ",")
	res := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}
