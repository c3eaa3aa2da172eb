package runner

import (
	"context"
	"log/slog"

	"github.com/aretw0/anthill/internal/logging"
	"github.com/aretw0/anthill/pkg/domain"
)

// OrderInterceptor is a middleware that can inspect, rewrite, or reject the
// orders an agent produced for one turn before they reach the engine.
// Returning an error aborts the game.
type OrderInterceptor func(ctx context.Context, turn TurnContext, orders domain.Orders) (domain.Orders, error)

// TurnContext is the read-only view of the turn handed to interceptors.
type TurnContext struct {
	Turn   int
	Params domain.GameParameters
	World  *domain.WorldState
}

// MultiInterceptor chains multiple interceptors. Each one sees the output of the previous.
func MultiInterceptor(interceptors ...OrderInterceptor) OrderInterceptor {
	return func(ctx context.Context, turn TurnContext, orders domain.Orders) (domain.Orders, error) {
		var err error
		for _, interceptor := range interceptors {
			orders, err = interceptor(ctx, turn, orders)
			if err != nil {
				return nil, err
			}
		}
		return orders, nil
	}
}

// PassThroughInterceptor allows everything.
func PassThroughInterceptor() OrderInterceptor {
	return func(_ context.Context, _ TurnContext, orders domain.Orders) (domain.Orders, error) {
		return orders, nil
	}
}

// SanitizeOrdersInterceptor drops orders the engine would reject anyway:
// Stay orders, orders outside the map, orders for cells without one of our
// (player 0) ants, and second orders for the same ant. Each drop is logged at Warn.
func SanitizeOrdersInterceptor(logger *slog.Logger) OrderInterceptor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(_ context.Context, turn TurnContext, orders domain.Orders) (domain.Orders, error) {
		bounds := turn.Params.Bounds()
		own := make(map[domain.Position]bool)
		if turn.World != nil {
			for _, p := range turn.World.LiveAntsFor(0) {
				own[p] = true
			}
		}

		seen := make(map[domain.Position]bool, len(orders))
		kept := make(domain.Orders, 0, len(orders))
		for _, o := range orders {
			reason := ""
			switch {
			case o.Dir == domain.Stay:
				continue
			case !o.Dir.Valid():
				reason = "invalid direction"
			case bounds.Row > 0 && !o.Pos.Within(bounds):
				reason = "outside map"
			case turn.World != nil && !own[o.Pos]:
				reason = "no own ant"
			case seen[o.Pos]:
				reason = "duplicate order"
			}
			if reason != "" {
				logger.Warn("dropping order", "turn", turn.Turn, "pos", o.Pos.String(), "dir", o.Dir.String(), "reason", reason)
				continue
			}
			seen[o.Pos] = true
			kept = append(kept, o)
		}
		return kept, nil
	}
}
