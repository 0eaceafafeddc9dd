package repokit

// Binder builds a repo over a Queryer; services bind once to the pool and
// again to the Queryer handed to each transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc is a Binder backed by a constructor
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q and panics on a nil q, which is a wiring bug
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}
