package query

import (
	"fmt"

	"github.com/lotsa-sim/lotsa/world"
)

// equalsQuery compares the results of two queries of the same type for
// equality.
type equalsQuery[T comparable] struct {
	l, r Query[T]
}

// Equals builds a query that evaluates l and r and reports whether they are
// equal. Its cacheability is the merge of l's and r's cacheabilities.
func Equals[T comparable](l, r Query[T]) Query[bool] {
	return equalsQuery[T]{l: l, r: r}
}

func (q equalsQuery[T]) Eval(ctx *Context, pos world.RelativePos) bool {
	return q.l.Eval(ctx, pos) == q.r.Eval(ctx, pos)
}

func (q equalsQuery[T]) Cacheability() world.Cacheability {
	return world.Merge(q.l.Cacheability(), q.r.Cacheability())
}

func (q equalsQuery[T]) UniqueDescrip() string {
	return fmt.Sprintf("Equals(%s,%s)", q.l.UniqueDescrip(), q.r.UniqueDescrip())
}
