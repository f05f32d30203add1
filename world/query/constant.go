package query

import (
	"fmt"

	"github.com/lotsa-sim/lotsa/world"
)

// constantQuery always evaluates to the same value, regardless of position
// or chunk contents.
type constantQuery[T any] struct {
	value T
}

// Constant builds a query that always evaluates to v. Its cacheability is
// Forever: a constant never goes stale.
func Constant[T any](v T) Query[T] {
	return constantQuery[T]{value: v}
}

func (q constantQuery[T]) Eval(_ *Context, _ world.RelativePos) T {
	return q.value
}

func (q constantQuery[T]) Cacheability() world.Cacheability {
	return world.ForeverCacheability()
}

func (q constantQuery[T]) UniqueDescrip() string {
	return fmt.Sprintf("Constant(%v)", q.value)
}
