package container

// Invokable is anything with a zero-argument Proceed step.
type Invokable interface {
	Proceed() (any, error)
}

// InvokableFunc adapts a function to Invokable.
type InvokableFunc func() (any, error)

func (f InvokableFunc) Proceed() (any, error) { return f() }

// Callable runs inv and returns its result unchanged.
func (c *Container) Callable(inv Invokable) (any, error) {
	return inv.Proceed()
}
