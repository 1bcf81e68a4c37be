package container

import "reflect"

// ── Module interface ──────────────────────────────────────────────────────────

// Module performs a group of registrations when the container is locked.
//
// Provide runs while the container is still unlocked, so it may call Set,
// Parameters, For and Register. Since LockModule does not guard against being
// called twice, Provide should be safe to run more than once.
//
//	type MailModule struct{}
//
//	func (MailModule) Provide(c *container.Container) error {
//	    c.Set("mailer", func(c *container.Container) (any, error) {
//	        cfg, err := container.Resolve[*config.Config](c, "config")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return mail.NewSMTP(cfg.Mail), nil
//	    }, container.Singleton)
//	    return nil
//	}
type Module interface {
	Provide(c *Container) error
}

// ModuleFunc adapts a function to Module.
type ModuleFunc func(c *Container) error

func (f ModuleFunc) Provide(c *Container) error { return f(c) }

// ModuleType builds a fresh module each time LockModule runs.
type ModuleType func() Module

// ModuleOf returns the ModuleType of a default-constructed *T.
//
//	c.Register(container.ModuleOf[MailModule]())
func ModuleOf[T any, PT interface {
	*T
	Module
}]() ModuleType {
	return func() Module { return PT(new(T)) }
}

// moduleName is used in logs and ModuleError.
func moduleName(m Module) string {
	if m == nil {
		return "<nil>"
	}
	return reflect.TypeOf(m).String()
}
