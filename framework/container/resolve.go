package container

import "fmt"

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Get and type-asserts the result.
//
//	// Instead of: v, err := c.Get("db"); db := v.(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T
	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &ResolutionError{
			ID:  id,
			Err: fmt.Errorf("%w: got %T, want %T", ErrTypeMismatch, v, zero),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Useful in composition
// roots and tests where a missing service should fail fast.
func MustResolve[T any](c *Container, id string) T {
	v, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return v
}
