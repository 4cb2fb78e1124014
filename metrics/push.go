package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// Config for pushing metrics to a prometheus pushgateway.
// Commands are short-lived, so metrics are pushed once when a command completes.
type Config struct {
	PushURL  string            `mapstructure:"push-url"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Headers  map[string]string `mapstructure:"headers"`
}

// DefaultConfig disables pushing.
func DefaultConfig() Config {
	return Config{}
}

// Push sends everything registered in the default registry to the configured gateway.
// It is a noop if PushURL is empty.
func Push(ctx context.Context, logger *zap.Logger, cfg Config, job, network string) error {
	if cfg.PushURL == "" {
		return nil
	}
	header := http.Header{}
	for k, v := range cfg.Headers {
		header.Add(k, v)
	}
	pusher := push.New(cfg.PushURL, job).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("network", network).
		Header(header)
	if cfg.Username != "" && cfg.Password != "" {
		pusher = pusher.BasicAuth(cfg.Username, cfg.Password)
	}
	if err := pusher.AddContext(ctx); err != nil {
		logger.Warn("failed to push metrics", zap.String("url", cfg.PushURL), zap.Error(err))
		return fmt.Errorf("push metrics: %w", err)
	}
	logger.Debug("pushed metrics", zap.String("url", cfg.PushURL))
	return nil
}
