package storyframe

import (
	"context"

	"go.uber.org/zap"
)

// SurfaceState is the lifecycle of a list surface.
type SurfaceState int

const (
	Loading SurfaceState = iota
	Populated
	Empty
)

func (s SurfaceState) String() string {
	switch s {
	case Populated:
		return "populated"
	case Empty:
		return "empty"
	default:
		return "loading"
	}
}

// Surface is the outcome of one fetch for a rendering surface. It owns its
// items; nothing else writes to them.
type Surface[T any] struct {
	State SurfaceState
	Items []T
}

// Fetch runs load once and settles the surface. Failures are logged and
// settle to Empty; they never reach the caller.
func Fetch[T any](ctx context.Context, log *zap.Logger, name string, load func(context.Context) ([]T, error)) Surface[T] {
	items, err := load(ctx)
	if err != nil {
		log.Warn("surface fetch failed", zap.String("surface", name), zap.Error(err))
		return Surface[T]{State: Empty}
	}
	if len(items) == 0 {
		return Surface[T]{State: Empty}
	}
	return Surface[T]{State: Populated, Items: items}
}
