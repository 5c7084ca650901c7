package config

import "context"

// Loader is the interface for a format-specific lattice description loader.
type Loader interface {
	// Load reads one or more description files (or directories of them) and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
