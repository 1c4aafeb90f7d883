package adapters

import "github.com/kbukum/nodekit/node"

// RegisterAll registers every adapter node, the control-flow primitives,
// and a retry-wrapped variant of each adapter into the registry.
func RegisterAll(r *node.Registry) error {
	defs := []*node.Definition{
		NewTextGeneration(),
		NewVideoGeneration(),
		NewSocialSearch(),
		NewContactEnrichment(),
		NewKeywordMetrics(),
	}

	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
		if err := r.Register(node.WithRetry(def)); err != nil {
			return err
		}
	}

	for _, def := range []*node.Definition{
		node.NewConditional(),
		node.NewDelay(),
		node.NewEnd(),
	} {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}
