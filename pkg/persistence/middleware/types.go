// Package middleware wraps a ports.MatchStore to add behavior around persistence.
package middleware

import "github.com/aretw0/anthill/pkg/ports"

// Middleware allows wrapping a MatchStore to add behavior.
type Middleware func(ports.MatchStore) ports.MatchStore

// Chain applies the middlewares so that the first one is the outermost.
func Chain(store ports.MatchStore, mws ...Middleware) ports.MatchStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
