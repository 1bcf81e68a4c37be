package container

// Scope controls how often a binding's factory runs.
type Scope int

const (
	// Prototype invokes the factory on every Get. It is the default.
	Prototype Scope = iota

	// Singleton invokes the factory once and reuses the result until Flush.
	Singleton
)

func (s Scope) String() string {
	switch s {
	case Prototype:
		return "prototype"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}
