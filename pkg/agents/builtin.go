package agents

import (
	"github.com/aretw0/anthill/pkg/ports"
	"github.com/aretw0/anthill/pkg/registry"
)

// Builtin returns a registry holding the agents of this package under their CLI names.
func Builtin() *registry.Registry {
	reg := registry.NewRegistry()
	reg.Register("idle", func() ports.Agent { return Idle{} })
	reg.Register("random", func() ports.Agent { return NewRandomWalk() })
	return reg
}
