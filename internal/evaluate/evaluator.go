// Package evaluate turns a user's prompt into a structured critique, either by asking a model
// to grade it against the clarity/context/format/completeness rubric or, when no model is
// configured, by returning a canned evaluation after a simulated delay.
package evaluate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"

	"prompt-evaluator/internal/fingerprint"
	"prompt-evaluator/internal/schemas"
)

const (
	ModeMock = "mock"
	ModeLive = "live"

	DefaultMockDelay       = 2 * time.Second
	DefaultUpstreamTimeout = 60 * time.Second
)

// Evaluator is safe for concurrent use; it holds no per-request state.
type Evaluator struct {
	model   Model
	delay   time.Duration
	timeout time.Duration
	clamp   bool
	sleep   func(time.Duration)
}

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithModel switches the evaluator to live mode. A nil model keeps mock mode.
func WithModel(m Model) Option {
	return func(e *Evaluator) error {
		e.model = m
		return nil
	}
}

// WithMockDelay sets the simulated latency of mock mode.
func WithMockDelay(d time.Duration) Option {
	return func(e *Evaluator) error {
		if d < 0 {
			return fmt.Errorf("mock delay cannot be negative, got %s", d)
		}
		e.delay = d
		return nil
	}
}

// WithUpstreamTimeout bounds each model call. Zero leaves only the caller's deadline.
func WithUpstreamTimeout(d time.Duration) Option {
	return func(e *Evaluator) error {
		if d < 0 {
			return fmt.Errorf("upstream timeout cannot be negative, got %s", d)
		}
		e.timeout = d
		return nil
	}
}

// WithScoreClamping forces model scores into the rubric ranges instead of passing them through.
func WithScoreClamping(enabled bool) Option {
	return func(e *Evaluator) error {
		e.clamp = enabled
		return nil
	}
}

func New(opts ...Option) (*Evaluator, error) {
	e := &Evaluator{
		delay:   DefaultMockDelay,
		timeout: DefaultUpstreamTimeout,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

// Mode reports whether evaluations come from the model or the canned mock.
func (e *Evaluator) Mode() string {
	if e.model == nil {
		return ModeMock
	}
	return ModeLive
}

// Evaluate critiques prompt. Failures are returned as *Error.
func (e *Evaluator) Evaluate(ctx context.Context, prompt string) (*schemas.PromptEvaluation, error) {
	mode := e.Mode()
	if strings.TrimSpace(prompt) == "" {
		observe(mode, outcomeBadRequest)
		return nil, errPromptRequired()
	}

	log := clog.FromContext(ctx).
		With("mode", mode).
		With("prompt_fingerprint", fingerprint.Of(prompt)).
		With("prompt_length", len(prompt))

	if e.model == nil {
		log.Info("Model API not configured, using mock evaluation")
		// Not cancelable: the delay stands in for a real call's latency.
		e.sleep(e.delay)
		observe(mode, outcomeOK)
		return Mock(), nil
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := e.model.Complete(callCtx, BuildInstruction(prompt))
	upstreamSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		evalErr := classifyUpstream(err)
		log.With("status", evalErr.Status).Error(fmt.Sprintf("Evaluation error: %v", err))
		observe(mode, evalErr.outcome)
		return nil, evalErr
	}

	evaluation, err := Parse(reply)
	if err != nil {
		log.With("raw_response", reply).Error(fmt.Sprintf("Failed to parse model response: %v", err))
		observe(mode, outcomeParseError)
		return nil, errParse(err)
	}

	if e.clamp && clampScores(evaluation) {
		log.Warn("Model returned out-of-range scores, clamped")
	}

	log.With("overall_score", evaluation.OverallScore).Info("Evaluation complete")
	observe(mode, outcomeOK)
	return evaluation, nil
}

// clampScores reports whether any value had to be changed.
func clampScores(ev *schemas.PromptEvaluation) bool {
	changed := false
	clamp := func(v *int, lo, hi int) {
		switch {
		case *v < lo:
			*v, changed = lo, true
		case *v > hi:
			*v, changed = hi, true
		}
	}
	clamp(&ev.OverallScore, 0, 100)
	clamp(&ev.Scores.Clarity, 1, 10)
	clamp(&ev.Scores.Context, 1, 10)
	clamp(&ev.Scores.Format, 1, 10)
	clamp(&ev.Scores.Completeness, 1, 10)
	return changed
}
