package container

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Container at construction time.
type Option func(c *Container)

// WithLogger sets the logger used for lifecycle events. A nil logger is
// ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTypes sets the descriptor used to instantiate unbound identifiers.
func WithTypes(types TypeDescriptor) Option {
	return func(c *Container) {
		if types != nil {
			c.types = types
		}
	}
}

// WithObserver registers an observer notified after every Get.
func WithObserver(o Observer) Option {
	return func(c *Container) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// Source says which path served a Get.
type Source string

const (
	SourceBinding        Source = "binding"
	SourceSingletonCache Source = "singleton_cache"
	SourceReflection     Source = "reflection"
)

// Observer receives one notification per Get, including failed ones.
type Observer interface {
	Observe(id string, source Source, elapsed time.Duration, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(id string, source Source, elapsed time.Duration, err error)

func (f ObserverFunc) Observe(id string, source Source, elapsed time.Duration, err error) {
	f(id, source, elapsed, err)
}
