package container

// ParameterBuilder implements the fluent form of Parameters.
//
//	c.For("mail.Mailer").Param("host").GiveValue("smtp.local")
//	c.For("mail.Mailer").Param("port").Give(func(c *container.Container) (any, error) {
//	    return 2525, nil
//	})
type ParameterBuilder struct {
	container *Container
	id        string
	name      string
}

// For starts a parameter chain for the unbound type id.
func (c *Container) For(id string) *ParameterBuilder {
	return &ParameterBuilder{container: c, id: id}
}

// Param selects the constructor parameter to supply.
func (b *ParameterBuilder) Param(name string) *ParameterBuilder {
	b.name = name
	return b
}

// Give registers the factory for the selected parameter.
func (b *ParameterBuilder) Give(factory Factory) *ParameterBuilder {
	b.container.Parameters(b.id, b.name, factory)
	return b
}

// GiveValue is a shorthand for Give when the value is already built.
func (b *ParameterBuilder) GiveValue(value any) *ParameterBuilder {
	return b.Give(func(_ *Container) (any, error) { return value, nil })
}
