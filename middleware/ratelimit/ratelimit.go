// Package ratelimit implements the tool-invocation rate limiter: an
// additional standard middleware positioned between Permission and Sandbox
// in the pipeline. Unlike features/model/middleware.AdaptiveRateLimiter,
// which paces LLM provider token spend with an AIMD budget, this limiter
// paces per-tool-name invocation frequency with a fixed token bucket per
// tool; it does not adapt to provider backoff signals because tool calls
// carry no comparable rate-limited response to observe.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/stepforge/agentcore/middleware"
)

// Limiter enforces a process-local requests-per-second budget independently
// for each tool name, lazily allocating one golang.org/x/time/rate.Limiter
// per name on first use.
type Limiter struct {
	mu      sync.Mutex
	perTool map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
}

// New constructs a Limiter allowing rps invocations per second per tool
// name, with burst capacity for short bursts above the steady rate.
func New(rps float64, burst int) *Limiter {
	return &Limiter{
		perTool: make(map[string]*rate.Limiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (l *Limiter) limiterFor(toolName string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.perTool[toolName]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.perTool[toolName] = lim
	}
	return lim
}

// Middleware returns the middleware.Middleware that blocks each invocation
// until its tool's bucket has a token, or returns ctx.Err() if the context
// is cancelled first.
func (l *Limiter) Middleware() middleware.Middleware {
	return func(next middleware.Next) middleware.Next {
		return func(ctx context.Context, mc middleware.Context) (middleware.Result, error) {
			if err := l.limiterFor(mc.ToolName).Wait(ctx); err != nil {
				return middleware.Result{}, err
			}
			return next(ctx, mc)
		}
	}
}
