package container_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/hhcontainer/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type widget struct{ id int }

func newWidget() *widget { return &widget{} }

type greeter struct {
	name  string
	times int
}

func newGreeter(name string, times int) *greeter {
	return &greeter{name: name, times: times}
}

func value(v any) container.Factory {
	return func(*container.Container) (any, error) { return v, nil }
}

// counting returns a factory producing increasing ints and a pointer to the
// number of calls.
func counting() (container.Factory, *int) {
	calls := 0
	return func(*container.Container) (any, error) {
		calls++
		return calls, nil
	}, &calls
}

func newTypes(t *testing.T) *container.TypeRegistry {
	t.Helper()
	types := container.NewTypeRegistry()
	require.NoError(t, types.Define("widget", newWidget))
	require.NoError(t, types.Define("greeter", newGreeter, "name", "times"))
	types.Abstract("shape")
	return types
}

// ── Scopes ────────────────────────────────────────────────────────────────────

func TestGet_PrototypeInvokesFactoryEveryTime(t *testing.T) {
	c := container.New()
	f, calls := counting()
	c.Set("counter", f)

	for i := 1; i <= 3; i++ {
		v, err := c.Get("counter")
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 3, *calls)
}

func TestGet_SingletonInvokesFactoryOnce(t *testing.T) {
	c := container.New()
	calls := 0
	c.Set("widget", func(*container.Container) (any, error) {
		calls++
		return &widget{id: calls}, nil
	}, container.Singleton)

	first, err := c.Get("widget")
	require.NoError(t, err)
	second, err := c.Get("widget")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGet_SingletonErrorIsNotCached(t *testing.T) {
	c := container.New()
	boom := errors.New("boom")
	fail := true
	c.Set("flaky", func(*container.Container) (any, error) {
		if fail {
			return nil, boom
		}
		return "ok", nil
	}, container.Singleton)

	_, err := c.Get("flaky")
	assert.ErrorIs(t, err, boom)

	fail = false
	v, err := c.Get("flaky")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestGet_BoundFactoryErrorReturnedAsIs(t *testing.T) {
	c := container.New()
	boom := errors.New("boom")
	c.Set("broken", func(*container.Container) (any, error) { return nil, boom })

	_, err := c.Get("broken")
	assert.Same(t, boom, err)
}

func TestGet_SingletonSurvivesRebindingDependency(t *testing.T) {
	c := container.New()
	c.Set("a", value(1))
	c.Set("b", func(c *container.Container) (any, error) {
		a, err := container.Resolve[int](c, "a")
		if err != nil {
			return nil, err
		}
		return a + 1, nil
	}, container.Singleton)

	v, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	c.Remove("a")
	c.Set("a", value(99))

	v, err = c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 99, v)
}

func TestSet_OverwritesBindingAndScope(t *testing.T) {
	c := container.New()
	c.Set("svc", value("one"), container.Singleton)
	c.Set("svc", value("two"))

	v, err := c.Get("svc")
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	scope, ok := c.ScopeOf("svc")
	require.True(t, ok)
	assert.Equal(t, container.Prototype, scope)
}

func TestSet_NilFactoryIgnored(t *testing.T) {
	c := container.New()
	c.Set("svc", nil)
	assert.False(t, c.Has("svc"))
}

// ── Has / Remove ──────────────────────────────────────────────────────────────

func TestHas_TracksSetAndRemove(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))

	assert.False(t, c.Has("svc"))
	c.Set("svc", value(1))
	assert.True(t, c.Has("svc"))

	c.Remove("svc")
	assert.False(t, c.Has("svc"))
	_, ok := c.ScopeOf("svc")
	assert.False(t, ok)

	// instantiable but never bound
	assert.False(t, c.Has("widget"))
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	c := container.New()
	c.Remove("missing")
	assert.Empty(t, c.Bindings())
}

// ── Reflective fallback ───────────────────────────────────────────────────────

func TestGet_ReflectiveZeroArgReturnsDistinctInstances(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))

	first, err := c.Get("widget")
	require.NoError(t, err)
	second, err := c.Get("widget")
	require.NoError(t, err)

	require.IsType(t, &widget{}, first)
	assert.NotSame(t, first, second)
}

func TestGet_ReflectiveUsesNamedParameters(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))
	c.Parameters("greeter", "name", value("gopher"))
	c.For("greeter").Param("times").GiveValue(3)

	g, err := container.Resolve[*greeter](c, "greeter")
	require.NoError(t, err)
	assert.Equal(t, "gopher", g.name)
	assert.Equal(t, 3, g.times)
}

func TestGet_ParameterFactoryReceivesContainer(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))
	c.Set("app.name", value("from-binding"))
	c.Parameters("greeter", "name", func(c *container.Container) (any, error) {
		return c.Get("app.name")
	})
	c.Parameters("greeter", "times", value(1))

	g, err := container.Resolve[*greeter](c, "greeter")
	require.NoError(t, err)
	assert.Equal(t, "from-binding", g.name)
}

func TestGet_MissingParameterIsResolutionError(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))
	c.Parameters("greeter", "times", value(3))

	_, err := c.Get("greeter")
	require.Error(t, err)

	var rerr *container.ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "greeter", rerr.ID)
	assert.ErrorIs(t, err, container.ErrResolution)
	assert.ErrorIs(t, err, container.ErrArgumentCount)
	assert.NotErrorIs(t, err, container.ErrNotFound)
}

func TestGet_WrongParameterTypeIsResolutionError(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))
	c.Parameters("greeter", "name", value(42))
	c.Parameters("greeter", "times", value(3))

	_, err := c.Get("greeter")

	var aerr *container.ArgumentTypeError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "name", aerr.Param)
	assert.ErrorIs(t, err, container.ErrResolution)
}

func TestGet_ParameterFactoryErrorIsResolutionError(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))
	boom := errors.New("boom")
	c.Parameters("greeter", "name", func(*container.Container) (any, error) { return nil, boom })

	_, err := c.Get("greeter")
	assert.ErrorIs(t, err, container.ErrResolution)
	assert.ErrorIs(t, err, boom)
}

func TestGet_ParametersIgnoredForBoundIdentifier(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))
	c.Parameters("greeter", "name", value("ignored"))
	c.Parameters("greeter", "times", value(7))
	c.Set("greeter", value(newGreeter("bound", 1)))

	g, err := container.Resolve[*greeter](c, "greeter")
	require.NoError(t, err)
	assert.Equal(t, "bound", g.name)
}

func TestGet_NotFound(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))

	for _, id := range []string{"shape", "does.not.Exist"} {
		t.Run(id, func(t *testing.T) {
			_, err := c.Get(id)

			var nf *container.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, id, nf.ID)
			assert.ErrorIs(t, err, container.ErrNotFound)
			assert.Contains(t, err.Error(), id)
		})
	}
}

// ── Lock / Flush ──────────────────────────────────────────────────────────────

func TestLockModule_FreezesMutations(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))
	c.Set("kept", value("before"))
	require.NoError(t, c.LockModule())
	require.True(t, c.Locked())

	c.Set("added", value(1))
	c.Set("kept", value("after"))
	c.Remove("kept")
	c.Parameters("greeter", "name", value("late"))
	c.Parameters("greeter", "times", value(1))
	c.Register(func() container.Module {
		return container.ModuleFunc(func(*container.Container) error { return nil })
	})

	assert.False(t, c.Has("added"))
	assert.True(t, c.Has("kept"))
	v, err := c.Get("kept")
	require.NoError(t, err)
	assert.Equal(t, "before", v)

	_, err = c.Get("greeter")
	assert.ErrorIs(t, err, container.ErrArgumentCount)
	assert.Zero(t, c.Modules())
}

func TestFlush_ClearsBindingsAndUnlocks(t *testing.T) {
	c := container.New()
	c.Set("a", value(1))
	c.Set("b", value(2), container.Singleton)
	require.NoError(t, c.LockModule())

	c.Flush()

	assert.False(t, c.Locked())
	assert.False(t, c.Has("a"))
	assert.False(t, c.Has("b"))
	_, ok := c.ScopeOf("b")
	assert.False(t, ok)

	c.Set("a", value(10))
	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestFlush_DropsSingletonCache(t *testing.T) {
	c := container.New()
	f, calls := counting()
	c.Set("s", f, container.Singleton)
	_, err := c.Get("s")
	require.NoError(t, err)

	c.Flush()
	c.Set("s", f, container.Singleton)
	v, err := c.Get("s")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, *calls)
}

func TestFlush_KeepsParametersAndModules(t *testing.T) {
	c := container.New(container.WithTypes(newTypes(t)))
	c.Parameters("greeter", "name", value("kept"))
	c.Parameters("greeter", "times", value(2))
	c.Register(func() container.Module {
		return container.ModuleFunc(func(c *container.Container) error {
			c.Set("mod", value("m"))
			return nil
		})
	})
	require.NoError(t, c.LockModule())

	c.Flush()
	assert.Equal(t, 1, c.Modules())
	assert.False(t, c.Has("mod"))

	g, err := container.Resolve[*greeter](c, "greeter")
	require.NoError(t, err)
	assert.Equal(t, "kept", g.name)

	require.NoError(t, c.LockModule())
	assert.True(t, c.Has("mod"))
}

// ── Bindings / Callable ───────────────────────────────────────────────────────

func TestBindings_IsLiveView(t *testing.T) {
	c := container.New()
	view := c.Bindings()
	assert.Empty(t, view)

	c.Set("a", value(1))
	assert.Contains(t, view, "a")

	c.Flush()
	assert.Empty(t, view)
}

func TestCallable_ForwardsProceed(t *testing.T) {
	c := container.New()

	v, err := c.Callable(container.InvokableFunc(func() (any, error) { return "done", nil }))
	require.NoError(t, err)
	assert.Equal(t, "done", v)

	boom := errors.New("boom")
	_, err = c.Callable(container.InvokableFunc(func() (any, error) { return nil, boom }))
	assert.ErrorIs(t, err, boom)
}

// ── Resolve helpers ───────────────────────────────────────────────────────────

func TestResolve_TypeMismatch(t *testing.T) {
	c := container.New()
	c.Set("n", value(1))

	_, err := container.Resolve[string](c, "n")
	assert.ErrorIs(t, err, container.ErrTypeMismatch)
	assert.ErrorIs(t, err, container.ErrResolution)
}

func TestMustResolve_PanicsOnMissing(t *testing.T) {
	c := container.New()
	assert.Panics(t, func() { container.MustResolve[string](c, "missing") })

	c.Set("s", value("x"))
	assert.Equal(t, "x", container.MustResolve[string](c, "s"))
}

// ── Options ───────────────────────────────────────────────────────────────────

func TestWithObserver_ReportsSource(t *testing.T) {
	type call struct {
		id     string
		source container.Source
		failed bool
	}
	var calls []call
	obs := container.ObserverFunc(func(id string, source container.Source, _ time.Duration, err error) {
		calls = append(calls, call{id, source, err != nil})
	})

	c := container.New(container.WithObserver(obs), container.WithTypes(newTypes(t)))
	c.Set("p", value(1))
	c.Set("s", value(2), container.Singleton)

	_, _ = c.Get("p")
	_, _ = c.Get("s")
	_, _ = c.Get("s")
	_, _ = c.Get("widget")
	_, _ = c.Get("missing")

	assert.Equal(t, []call{
		{"p", container.SourceBinding, false},
		{"s", container.SourceBinding, false},
		{"s", container.SourceSingletonCache, false},
		{"widget", container.SourceReflection, false},
		{"missing", container.SourceReflection, true},
	}, calls)
}

func TestWithLogger_LogsIgnoredMutations(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := container.New(container.WithLogger(zap.New(core)))
	require.NoError(t, c.LockModule())

	c.Set("late", value(1))

	entries := logs.FilterMessage("container locked, mutation ignored").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "set", fields["op"])
	assert.Equal(t, "late", fields["id"])
	assert.Equal(t, 1, logs.FilterMessage("container locked").Len())
}

func TestScope_String(t *testing.T) {
	assert.Equal(t, "prototype", container.Prototype.String())
	assert.Equal(t, "singleton", container.Singleton.String())
	assert.Equal(t, "unknown", container.Scope(9).String())
}
