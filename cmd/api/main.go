package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-envconfig"
	_ "go.uber.org/automaxprocs"

	"prompt-evaluator/internal/evaluate"
	httpSrv "prompt-evaluator/internal/http"
)

type config struct {
	Port        int `env:"PORT,default=8000"`
	MetricsPort int `env:"METRICS_PORT,default=0"`

	// Without an API key the service runs in mock mode.
	AnthropicAPIKey      string  `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL     string  `env:"ANTHROPIC_BASE_URL"`
	AnthropicModel       string  `env:"ANTHROPIC_MODEL,default=claude-3-5-sonnet-20241022"`
	AnthropicMaxTokens   int64   `env:"ANTHROPIC_MAX_TOKENS,default=2000"`
	AnthropicTemperature float64 `env:"ANTHROPIC_TEMPERATURE,default=0.3"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=60s"`
	MockDelay       time.Duration `env:"MOCK_DELAY,default=2s"`
	ClampScores     bool          `env:"CLAMP_SCORES,default=false"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES,default=1048576"`
}

func loadConfig(ctx context.Context, l envconfig.Lookuper) (*config, error) {
	var cfg config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newEvaluator(cfg *config) (*evaluate.Evaluator, error) {
	opts := []evaluate.Option{
		evaluate.WithMockDelay(cfg.MockDelay),
		evaluate.WithUpstreamTimeout(cfg.UpstreamTimeout),
		evaluate.WithScoreClamping(cfg.ClampScores),
	}
	if cfg.AnthropicAPIKey != "" {
		claude, err := evaluate.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL,
			evaluate.WithClaudeModel(cfg.AnthropicModel),
			evaluate.WithMaxTokens(cfg.AnthropicMaxTokens),
			evaluate.WithTemperature(cfg.AnthropicTemperature),
		)
		if err != nil {
			return nil, fmt.Errorf("creating model client: %w", err)
		}
		opts = append(opts, evaluate.WithModel(claude))
	}
	return evaluate.New(opts...)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(ctx, envconfig.OsLookuper())
	if err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	ev, err := newEvaluator(cfg)
	if err != nil {
		clog.FatalContextf(ctx, "creating evaluator: %v", err)
	}
	clog.InfoContextf(ctx, "Evaluator running in %s mode", ev.Mode())

	if cfg.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			clog.InfoContextf(ctx, "Serving metrics on port %d", cfg.MetricsPort)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				clog.ErrorContextf(ctx, "metrics server failed: %v", err)
			}
		}()
		defer metricsSrv.Close()
	}

	srv := httpSrv.NewServer(fmt.Sprintf(":%d", cfg.Port), ev, cfg.MaxBodyBytes)

	errCh := make(chan error, 1)
	go func() {
		clog.InfoContextf(ctx, "Starting prompt evaluator on port %d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			clog.FatalContextf(ctx, "server failed: %v", err)
		}
	case <-ctx.Done():
		clog.InfoContextf(ctx, "Shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			clog.ErrorContextf(ctx, "shutdown: %v", err)
		}
	}
}
