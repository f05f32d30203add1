package query

import (
	"fmt"

	"github.com/lotsa-sim/lotsa/world"
)

// MaxChebyshevDistance is the largest distance a Chebyshev2DNeighbors query
// may declare. Exceeding it is a programmer error (see Chebyshev2DNeighbors).
const MaxChebyshevDistance = 127

// chebyshevQuery evaluates inner at every position within Chebyshev distance
// d of the position it's evaluated at, on the same z, and returns the
// results as a sequence materialized into a slice.
type chebyshevQuery[T any] struct {
	d     int
	inner Query[T]
}

// Chebyshev2DNeighbors builds a query over the (2d+1)^2 positions on the
// same z as its evaluation position (iterated y-outer, x-inner), each
// position mapped through inner. d must be <= MaxChebyshevDistance;
// exceeding it panics, since it can never be the result of a valid
// registered rule (sim.Simulator.Register recovers this panic and reports
// it as a registration failure rather than letting it abort the process).
func Chebyshev2DNeighbors[T any](d int, inner Query[T]) Query[[]T] {
	if d > MaxChebyshevDistance {
		panic(fmt.Sprintf("query: chebyshev distance %d exceeds max %d", d, MaxChebyshevDistance))
	}
	return chebyshevQuery[T]{d: d, inner: inner}
}

func (q chebyshevQuery[T]) Eval(ctx *Context, pos world.RelativePos) []T {
	side := 2*q.d + 1
	out := make([]T, 0, side*side)
	for dy := -q.d; dy <= q.d; dy++ {
		for dx := -q.d; dx <= q.d; dx++ {
			shifted := world.NewRelativePos(pos.DX()+dx, pos.DY()+dy, pos.DZ())
			out = append(out, q.inner.Eval(ctx, shifted))
		}
	}
	return out
}

func (q chebyshevQuery[T]) Cacheability() world.Cacheability {
	inner := q.inner.Cacheability()
	switch inner.Kind {
	case world.DontCache:
		return world.DontCacheability()
	case world.Forever:
		return world.ForeverCacheability()
	}
	innerDistance := 0
	if inner.Kind == world.UntilChangeInChebyshevNeighborhood {
		innerDistance = inner.Distance
	}
	return world.UntilChangeInChebyshevNeighborhoodCacheability(q.d+innerDistance, inner.Fields...)
}

func (q chebyshevQuery[T]) UniqueDescrip() string {
	return fmt.Sprintf("Chebyshev2DNeighbors(%d,%s)", q.d, q.inner.UniqueDescrip())
}
