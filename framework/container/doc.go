// Package container provides a small service-locator container.
//
// # Overview
//
// Callers bind factory functions to string identifiers and resolve them with
// Get. A binding is either Prototype (factory runs on every Get) or Singleton
// (factory runs once and the value is cached until Flush). There is no
// autowiring: an identifier without a binding is treated as a type name and
// built through a TypeDescriptor, using only the named parameters registered
// for it.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register bindings, parameters and modules
//  3. Lock: c.LockModule() — applies the modules, then freezes registration
//  4. Resolve
//  5. Optionally c.Flush() to drop bindings and unlock again
//
// Once locked, Set, Parameters, Remove and Register are silently ignored.
//
// # Bindings
//
//	// Prototype — new value every Get()
//	c.Set("request.id", func(c *container.Container) (any, error) {
//	    return uuid.NewString(), nil
//	})
//
//	// Singleton — created once, reused
//	c.Set("db", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return sql.Open(cfg.DB.Driver, cfg.DB.DSN)
//	}, container.Singleton)
//
// # Resolving
//
//	raw, err := c.Get("db")
//
//	// Generic (no type assertion required)
//	db, err := container.Resolve[*sql.DB](c, "db")
//
// # Named parameters
//
// Go cannot report a function's parameter names, so types built through the
// fallback path are described up front in a TypeRegistry:
//
//	types := container.NewTypeRegistry()
//	_ = types.Define("mail.Mailer", mail.NewMailer, "host", "port")
//
//	c := container.New(container.WithTypes(types))
//	c.Parameters("mail.Mailer", "host", func(*container.Container) (any, error) {
//	    return "smtp.local", nil
//	})
//	c.For("mail.Mailer").Param("port").GiveValue(2525)
//
//	mailer, err := container.Resolve[*mail.Mailer](c, "mail.Mailer")
//
// Parameters are ignored for identifiers that have an explicit binding.
//
// # Modules
//
//	type MailModule struct{}
//
//	func (MailModule) Provide(c *container.Container) error {
//	    c.Set("mailer", newMailer, container.Singleton)
//	    return nil
//	}
//
//	c.Register(container.ModuleOf[MailModule]())
//	if err := c.LockModule(); err != nil {
//	    log.Fatal(err)
//	}
package container
