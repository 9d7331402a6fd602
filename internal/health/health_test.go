package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingProber struct {
	calls atomic.Int32
	err   error
}

func (p *countingProber) Ping(context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestCheckCachesResult(t *testing.T) {
	prober := &countingProber{}
	checker := NewChecker(prober, time.Minute)

	first, err := checker.Check(context.Background())
	assert.NoError(t, err)
	second, err := checker.Check(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, int32(1), prober.calls.Load())
	assert.Equal(t, first, second)
}

func TestCheckCachesFailure(t *testing.T) {
	prober := &countingProber{err: errors.New("down")}
	checker := NewChecker(prober, time.Minute)

	_, err := checker.Check(context.Background())
	assert.EqualError(t, err, "down")
	_, err = checker.Check(context.Background())
	assert.EqualError(t, err, "down")
	assert.Equal(t, int32(1), prober.calls.Load())
}

func TestCheckProbesAgainAfterTTL(t *testing.T) {
	prober := &countingProber{}
	checker := NewChecker(prober, 20*time.Millisecond)

	_, _ = checker.Check(context.Background())
	time.Sleep(40 * time.Millisecond)
	_, _ = checker.Check(context.Background())

	assert.Equal(t, int32(2), prober.calls.Load())
}

func TestCheckWithoutTTLAlwaysProbes(t *testing.T) {
	prober := &countingProber{}
	checker := NewChecker(prober, 0)

	_, _ = checker.Check(context.Background())
	_, _ = checker.Check(context.Background())

	assert.Equal(t, int32(2), prober.calls.Load())
}

type contextProber struct {
	calls atomic.Int32
}

func (p *contextProber) Ping(ctx context.Context) error {
	p.calls.Add(1)
	return ctx.Err()
}

func TestCheckIgnoresCallerCancellation(t *testing.T) {
	prober := &contextProber{}
	checker := NewChecker(prober, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := checker.Check(ctx)
	assert.NoError(t, err)

	_, err = checker.Check(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(1), prober.calls.Load())
}

type deadlineProber struct {
	deadline time.Time
	ok       bool
}

func (p *deadlineProber) Ping(ctx context.Context) error {
	p.deadline, p.ok = ctx.Deadline()
	return nil
}

func TestCheckBoundsProbe(t *testing.T) {
	prober := &deadlineProber{}
	checker := NewChecker(prober, 0)

	_, err := checker.Check(context.Background())
	assert.NoError(t, err)
	assert.True(t, prober.ok)
	assert.WithinDuration(t, time.Now().Add(probeTimeout), prober.deadline, time.Second)
}
