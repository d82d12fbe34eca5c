package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrNotProbed is returned by Prober.Status before the first probe completes.
var ErrNotProbed = errors.New("provider has not been probed yet")

// ProbeResult is the outcome of a single health probe.
type ProbeResult struct {
	Time    time.Time
	Latency time.Duration
	Err     error
}

// Prober runs a provider's HealthCheck on a cron schedule and keeps the last
// result for readiness reporting.
type Prober struct {
	provider Provider
	schedule string
	timeout  time.Duration
	logger   *slog.Logger
	cron     *cron.Cron
	onResult func(ProbeResult)

	mu   sync.RWMutex
	last *ProbeResult
}

// NewProber creates a prober for provider. schedule is a standard cron spec
// or descriptor such as "@every 1m". onResult may be nil.
func NewProber(provider Provider, schedule string, timeout time.Duration, logger *slog.Logger, onResult func(ProbeResult)) (*Prober, error) {
	if provider == nil {
		return nil, errors.New("provider is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	p := &Prober{
		provider: provider,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
		cron:     c,
		onResult: onResult,
	}

	if _, err := c.AddFunc(schedule, func() { p.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid probe schedule %q: %w", schedule, err)
	}

	return p, nil
}

// Start begins scheduled probing in the background.
func (p *Prober) Start() {
	p.cron.Start()
	p.logger.Info("provider probe scheduled",
		"provider", p.provider.GetName(),
		"schedule", p.schedule,
	)
}

// Stop halts scheduling and waits for a running probe to finish or ctx to expire.
func (p *Prober) Stop(ctx context.Context) {
	done := p.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce probes the provider immediately and stores the result.
func (p *Prober) RunOnce(ctx context.Context) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	err := p.provider.HealthCheck(ctx)
	result := ProbeResult{Time: start, Latency: time.Since(start), Err: err}

	if err != nil {
		p.logger.Warn("provider probe failed",
			"provider", p.provider.GetName(),
			"latency_ms", result.Latency.Milliseconds(),
			"error", err,
		)
	} else {
		p.logger.Debug("provider probe passed",
			"provider", p.provider.GetName(),
			"latency_ms", result.Latency.Milliseconds(),
		)
	}

	p.mu.Lock()
	p.last = &result
	p.mu.Unlock()

	if p.onResult != nil {
		p.onResult(result)
	}
	return result
}

// Last returns the most recent probe result, if any.
func (p *Prober) Last() (ProbeResult, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return ProbeResult{}, false
	}
	return *p.last, true
}

// Status reports the last probe's error, or ErrNotProbed.
// It has the shape of a readiness check function.
func (p *Prober) Status(ctx context.Context) error {
	last, ok := p.Last()
	if !ok {
		return ErrNotProbed
	}
	return last.Err
}
