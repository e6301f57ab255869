package middleware

import (
	"context"

	"github.com/stepforge/agentcore/ctxkey"
)

// SandboxConfig describes the execution confinement in effect for a tool
// invocation. Command-executing tools read it via SandboxKey; the pipeline
// itself does not interpret it.
type SandboxConfig struct {
	// WorkingDirectory confines filesystem-touching tools to this root.
	WorkingDirectory string
	// AllowNetwork permits outbound network access when true.
	AllowNetwork bool
	// Environment lists additional environment variables made available to
	// spawned processes, beyond the confined default set.
	Environment map[string]string
}

// SandboxKey is the context key a command-executing tool reads to learn its
// active SandboxConfig. The zero value is the empty, most-restrictive
// configuration.
var SandboxKey = ctxkey.NewKey(SandboxConfig{})

// SandboxMiddleware installs cfg into the context for the remainder of the
// chain, including the inner executor.
func SandboxMiddleware(cfg SandboxConfig) Middleware {
	return func(next Next) Next {
		return func(ctx context.Context, mc Context) (Result, error) {
			return next(SandboxKey.With(ctx, cfg), mc)
		}
	}
}
