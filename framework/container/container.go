package container

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a value from the container.
type Factory func(c *Container) (any, error)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a small service locator.
//
// It supports:
//   - Set / Remove / Has / Get with Prototype and Singleton scopes
//   - Named constructor parameters for unbound, described types
//   - Modules applied once by LockModule
//   - Flush to unlock and start over
//
// A Container is not safe for concurrent mutation. Resolve from many
// goroutines only after LockModule.
type Container struct {
	// id → factory
	bindings map[string]Factory

	// id → scope; same key set as bindings
	scopes map[string]Scope

	// id → cached singleton value
	shared map[string]any

	// id → parameter name → factory
	parameters map[string]map[string]Factory

	modules []ModuleType
	locked  bool

	types     TypeDescriptor
	observers []Observer
	logger    *zap.Logger
}

// New creates an empty, unlocked container.
func New(opts ...Option) *Container {
	c := &Container{
		bindings:   make(map[string]Factory),
		scopes:     make(map[string]Scope),
		shared:     make(map[string]any),
		parameters: make(map[string]map[string]Factory),
		types:      NewTypeRegistry(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Set binds factory to id. The scope defaults to Prototype. A previous binding
// for id is replaced. Set does nothing once the container is locked.
//
//	c.Set("clock", func(c *container.Container) (any, error) {
//	    return time.Now, nil
//	})
//	c.Set("db", openDB, container.Singleton)
func (c *Container) Set(id string, factory Factory, scope ...Scope) {
	if c.ignored("set", id) || factory == nil {
		return
	}
	s := Prototype
	if len(scope) > 0 {
		s = scope[0]
	}
	c.bindings[id] = factory
	c.scopes[id] = s
}

// Parameters registers the factory for constructor parameter name of the
// unbound type id. It is only consulted when id is built through the type
// descriptor.
func (c *Container) Parameters(id, name string, factory Factory) {
	if c.ignored("parameters", id) || factory == nil {
		return
	}
	if _, ok := c.parameters[id]; !ok {
		c.parameters[id] = make(map[string]Factory)
	}
	c.parameters[id][name] = factory
}

// Register queues a module type to be applied by LockModule. Order is kept and
// duplicates are applied once per registration.
func (c *Container) Register(module ModuleType) {
	if c.ignored("register", "") || module == nil {
		return
	}
	c.modules = append(c.modules, module)
}

// Remove deletes the binding for id, if any.
func (c *Container) Remove(id string) {
	if c.ignored("remove", id) {
		return
	}
	delete(c.bindings, id)
	delete(c.scopes, id)
}

// ignored reports whether a mutation must be skipped because the container
// is locked.
func (c *Container) ignored(op, id string) bool {
	if !c.locked {
		return false
	}
	c.logger.Debug("container locked, mutation ignored", zap.String("op", op), zap.String("id", id))
	return true
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// LockModule builds every registered module in order, calls Provide on each,
// then locks the container. Modules registered by another module's Provide are
// applied in the same pass.
//
// The first failing module aborts the pass. The container then stays unlocked
// and registrations made by earlier modules are kept.
func (c *Container) LockModule() error {
	for i := 0; i < len(c.modules); i++ {
		m := c.modules[i]()
		name := moduleName(m)
		if m == nil {
			return &ModuleError{Index: i, Module: name, Err: errors.New("module type returned nil")}
		}
		if err := m.Provide(c); err != nil {
			c.logger.Error("module failed", zap.Int("index", i), zap.String("module", name), zap.Error(err))
			return &ModuleError{Index: i, Module: name, Err: err}
		}
		c.logger.Debug("module applied", zap.Int("index", i), zap.String("module", name))
	}
	c.locked = true
	c.logger.Info("container locked", zap.Int("modules", len(c.modules)), zap.Int("bindings", len(c.bindings)))
	return nil
}

// Flush drops all bindings, scopes and cached singletons and unlocks the
// container. Registered modules and parameters are kept.
func (c *Container) Flush() {
	clear(c.bindings)
	clear(c.scopes)
	clear(c.shared)
	c.locked = false
	c.logger.Debug("container flushed")
}

// Locked reports whether LockModule has completed since the last Flush.
func (c *Container) Locked() bool { return c.locked }

// Modules returns the number of registered module types.
func (c *Container) Modules() int { return len(c.modules) }

// ── Resolution ────────────────────────────────────────────────────────────────

// Has reports whether id has an explicit binding. It says nothing about
// whether Get could build id through the type descriptor.
func (c *Container) Has(id string) bool {
	_, ok := c.bindings[id]
	return ok
}

// Get resolves id.
//
// A bound id is served according to its scope. An unbound id is treated as a
// type name: the type descriptor supplies the constructor's parameter names,
// and every name with a registered parameter factory contributes one
// positional argument, in declaration order.
//
// Get returns a *NotFoundError when id is unbound and not instantiable, and a
// *ResolutionError when construction fails. Errors from bound factories are
// returned as is.
func (c *Container) Get(id string) (any, error) {
	start := time.Now()
	value, source, err := c.get(id)
	for _, o := range c.observers {
		o.Observe(id, source, time.Since(start), err)
	}
	return value, err
}

func (c *Container) get(id string) (any, Source, error) {
	if factory, ok := c.bindings[id]; ok {
		if c.scopes[id] == Singleton {
			return c.singleton(id, factory)
		}
		v, err := factory(c)
		return v, SourceBinding, err
	}
	v, err := c.build(id)
	return v, SourceReflection, err
}

// singleton returns the cached value for id, invoking factory on first use.
// A failed invocation is not cached.
func (c *Container) singleton(id string, factory Factory) (any, Source, error) {
	if v, ok := c.shared[id]; ok {
		return v, SourceSingletonCache, nil
	}
	v, err := factory(c)
	if err != nil {
		return nil, SourceBinding, err
	}
	c.shared[id] = v
	return v, SourceBinding, nil
}

// build instantiates the unbound id through the type descriptor.
func (c *Container) build(id string) (any, error) {
	if !c.types.IsInstantiable(id) {
		return nil, &NotFoundError{ID: id}
	}
	names, err := c.types.ConstructorParameters(id)
	if err != nil {
		return nil, &NotFoundError{ID: id, Err: err}
	}

	args := make([]any, 0, len(names))
	if params, ok := c.parameters[id]; ok {
		for _, name := range names {
			f, ok := params[name]
			if !ok {
				continue
			}
			v, err := f(c)
			if err != nil {
				return nil, &ResolutionError{ID: id, Err: err}
			}
			args = append(args, v)
		}
	}

	instance, err := c.types.Instantiate(id, args)
	if err != nil {
		return nil, &ResolutionError{ID: id, Err: err}
	}
	return instance, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bindings returns the live binding registry. The map is not a copy: later
// Set, Remove and Flush calls show through it. Callers must not modify it.
func (c *Container) Bindings() map[string]Factory {
	return c.bindings
}

// ScopeOf returns the scope id was bound with.
func (c *Container) ScopeOf(id string) (Scope, bool) {
	s, ok := c.scopes[id]
	return s, ok
}

// Types returns the descriptor used for unbound identifiers.
func (c *Container) Types() TypeDescriptor { return c.types }
