// Package health reports whether the identity backend is reachable,
// reusing a recent answer instead of probing on every request.
package health

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	resultKey    = "identity"
	probeTimeout = 5 * time.Second
)

type Prober interface {
	Ping(ctx context.Context) error
}

type result struct {
	err       error
	checkedAt time.Time
}

type Checker struct {
	prober Prober
	cache  *cache.Cache
}

// NewChecker caches probe results for ttl. A ttl of zero or less probes on
// every call.
func NewChecker(prober Prober, ttl time.Duration) *Checker {
	c := &Checker{prober: prober}
	if ttl > 0 {
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

// Check returns the cached probe result while it is fresh. The probe is
// detached from ctx so a caller that goes away cannot fail it for others.
func (c *Checker) Check(ctx context.Context) (time.Time, error) {
	if c.cache == nil {
		return time.Now(), c.probe(ctx)
	}
	if cached, ok := c.cache.Get(resultKey); ok {
		r := cached.(result)
		return r.checkedAt, r.err
	}
	r := result{err: c.probe(ctx), checkedAt: time.Now()}
	c.cache.SetDefault(resultKey, r)
	return r.checkedAt, r.err
}

func (c *Checker) probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), probeTimeout)
	defer cancel()
	return c.prober.Ping(ctx)
}
