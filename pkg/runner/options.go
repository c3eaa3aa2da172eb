package runner

import (
	"log/slog"

	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/protocol"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithSetupPolicy decides whether malformed turn-0 lines are skipped or fatal.
func WithSetupPolicy(policy protocol.SetupPolicy) Option {
	return func(r *Runner) {
		r.SetupPolicy = policy
	}
}

// WithInterceptor configures the order middleware.
func WithInterceptor(interceptor OrderInterceptor) Option {
	return func(r *Runner) {
		r.Interceptor = interceptor
	}
}

// WithLifecycleHooks registers observability callbacks. It may be given more
// than once; hooks run in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = append(r.hooks, hooks)
	}
}
