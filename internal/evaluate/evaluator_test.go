package evaluate

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-evaluator/internal/schemas"
)

type fakeModel struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	reply   string
	err     error
}

func (m *fakeModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

// recordingSleep captures requested delays instead of sleeping.
type recordingSleep struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleep) sleep(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
}

func newEvaluator(t *testing.T, opts ...Option) (*Evaluator, *recordingSleep) {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	rs := &recordingSleep{}
	e.sleep = rs.sleep
	return e, rs
}

func TestEvaluateRejectsBlankPrompt(t *testing.T) {
	t.Parallel()

	for _, prompt := range []string{"", "   ", "\n\t "} {
		model := &fakeModel{reply: validJSON}
		e, rs := newEvaluator(t, WithModel(model))

		got, err := e.Evaluate(context.Background(), prompt)
		assert.Nil(t, got)
		evalErr := AsError(err)
		assert.Equal(t, http.StatusBadRequest, evalErr.Status)
		assert.Equal(t, MsgPromptRequired, evalErr.Message)
		assert.Zero(t, model.calls, "model must not be called for %q", prompt)
		assert.Empty(t, rs.delays)
	}
}

func TestEvaluateMockMode(t *testing.T) {
	t.Parallel()

	e, rs := newEvaluator(t)
	assert.Equal(t, ModeMock, e.Mode())

	prompts := []string{"Plan my trip to Europe", "x", strings.Repeat("a much longer prompt ", 500)}
	for _, p := range prompts {
		got, err := e.Evaluate(context.Background(), p)
		require.NoError(t, err)
		if diff := cmp.Diff(Mock(), got); diff != "" {
			t.Errorf("mock mismatch (-want +got):\n%s", diff)
		}
	}

	require.Len(t, rs.delays, len(prompts))
	for _, d := range rs.delays {
		assert.Equal(t, DefaultMockDelay, d)
	}
}

func TestEvaluateMockDelayConfigurable(t *testing.T) {
	t.Parallel()

	e, rs := newEvaluator(t, WithMockDelay(10*time.Millisecond))
	_, err := e.Evaluate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, rs.delays)
}

func TestEvaluateMockIgnoresCancellation(t *testing.T) {
	t.Parallel()

	e, _ := newEvaluator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := e.Evaluate(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, 35, got.OverallScore)
}

func TestMockReturnsFreshValues(t *testing.T) {
	t.Parallel()

	a := Mock()
	a.KeyChanges[0] = "mutated"
	assert.NotEqual(t, "mutated", Mock().KeyChanges[0])
}

func TestEvaluateLive(t *testing.T) {
	t.Parallel()

	model := &fakeModel{reply: "Sure! Here is the evaluation: " + validJSON + " Hope that helps!"}
	e, rs := newEvaluator(t, WithModel(model))
	assert.Equal(t, ModeLive, e.Mode())

	got, err := e.Evaluate(context.Background(), "Write an email to my boss")
	require.NoError(t, err)

	want := &schemas.PromptEvaluation{
		OverallScore:   80,
		Scores:         schemas.Scores{Clarity: 8, Context: 7, Format: 9, Completeness: 8},
		WhatIsMissing:  []string{},
		ImprovedPrompt: "...",
		KeyChanges:     []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, 1, model.calls)
	assert.Equal(t, BuildInstruction("Write an email to my boss"), model.prompts[0])
	assert.True(t, strings.HasSuffix(model.prompts[0], `Prompt to evaluate: "Write an email to my boss"`))
	assert.Empty(t, rs.delays, "live mode must not simulate latency")
}

func TestEvaluateLiveParseFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
	}{
		{name: "no brace", reply: "I am unable to produce an evaluation."},
		{name: "empty reply", reply: ""},
		{name: "malformed", reply: `{"overall_score": 80, "scores": }`},
		{name: "missing key_changes", reply: `{"overall_score":80,"scores":{"clarity":8,"context":7,"format":9,"completeness":8},"what_is_missing":[],"improved_prompt":"..."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			model := &fakeModel{reply: tt.reply}
			e, _ := newEvaluator(t, WithModel(model))

			got, err := e.Evaluate(context.Background(), "Explain machine learning")
			assert.Nil(t, got)
			evalErr := AsError(err)
			assert.Equal(t, http.StatusInternalServerError, evalErr.Status)
			assert.Equal(t, MsgParseFailure, evalErr.Message)
			assert.Equal(t, 1, model.calls, "no retries")
		})
	}
}

func TestEvaluateUpstreamClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "rate limit", err: errors.New(`429 {"type":"error","error":{"type":"rate_limit_error"}}`), wantStatus: http.StatusTooManyRequests, wantMsg: MsgRateLimited},
		{name: "api key", err: errors.New("invalid api_key provided"), wantStatus: http.StatusServiceUnavailable, wantMsg: MsgConfigError},
		{name: "network", err: errors.New("dial tcp: connection refused"), wantStatus: http.StatusInternalServerError, wantMsg: MsgUpstreamError},
		{name: "deadline", err: context.DeadlineExceeded, wantStatus: http.StatusInternalServerError, wantMsg: MsgUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			model := &fakeModel{err: tt.err}
			e, _ := newEvaluator(t, WithModel(model))

			_, err := e.Evaluate(context.Background(), "Should I change jobs?")
			evalErr := AsError(err)
			assert.Equal(t, tt.wantStatus, evalErr.Status)
			assert.Equal(t, tt.wantMsg, evalErr.Message)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, model.calls, "no retries")
		})
	}
}

type blockingModel struct{}

func (blockingModel) Complete(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestEvaluateUpstreamTimeout(t *testing.T) {
	t.Parallel()

	e, _ := newEvaluator(t, WithModel(blockingModel{}), WithUpstreamTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := e.Evaluate(context.Background(), "Plan my birthday party")
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, http.StatusInternalServerError, AsError(err).Status)
}

func TestEvaluateClamping(t *testing.T) {
	t.Parallel()

	reply := `{"overall_score":140,"scores":{"clarity":12,"context":0,"format":5,"completeness":-3},"what_is_missing":[],"improved_prompt":"p","key_changes":[]}`

	e, _ := newEvaluator(t, WithModel(&fakeModel{reply: reply}), WithScoreClamping(true))
	got, err := e.Evaluate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, 100, got.OverallScore)
	assert.Equal(t, schemas.Scores{Clarity: 10, Context: 1, Format: 5, Completeness: 1}, got.Scores)

	e, _ = newEvaluator(t, WithModel(&fakeModel{reply: reply}))
	got, err = e.Evaluate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, 140, got.OverallScore, "passthrough by default")
}

func TestNewRejectsNegativeDurations(t *testing.T) {
	t.Parallel()

	_, err := New(WithMockDelay(-time.Second))
	assert.Error(t, err)
	_, err = New(WithUpstreamTimeout(-time.Second))
	assert.Error(t, err)
}

func TestAsErrorWrapsUnclassified(t *testing.T) {
	t.Parallel()

	evalErr := AsError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, evalErr.Status)
	assert.Equal(t, MsgUpstreamError, evalErr.Message)
}
