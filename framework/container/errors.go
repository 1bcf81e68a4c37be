package container

import (
	"errors"
	"strconv"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("container: not found")

	// ErrResolution matches every *ResolutionError.
	ErrResolution = errors.New("container: resolution failed")

	// ErrTypeMismatch is wrapped by Resolve when the resolved value is not a T.
	ErrTypeMismatch = errors.New("container: resolved value has unexpected type")
)

// Type registry errors.
var (
	ErrNotFunc          = errors.New("container: constructor must be a function")
	ErrBadReturn        = errors.New("container: constructor must return T or (T, error)")
	ErrParamCount       = errors.New("container: parameter names do not match constructor arity")
	ErrArgumentCount    = errors.New("container: wrong number of constructor arguments")
	ErrConstructorPanic = errors.New("container: constructor panicked")
	ErrUnknownType      = errors.New("container: unknown type")
)

// NotFoundError is returned by Get when an identifier has no binding and
// cannot be instantiated through the type descriptor.
type NotFoundError struct {
	ID  string
	Err error
}

func (e *NotFoundError) Error() string {
	// Example: container: identifier "mailer" is not bound
	msg := "container: identifier " + strconv.Quote(e.ID) + " is not bound"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// ResolutionError is returned by Get when an instantiable type could not be
// constructed.
type ResolutionError struct {
	ID  string
	Err error
}

func (e *ResolutionError) Error() string {
	// Example: container: error retrieving "Greeter": wrong number of constructor arguments
	msg := "container: error retrieving " + strconv.Quote(e.ID)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

func (e *ResolutionError) Unwrap() error { return e.Err }

// ModuleError is returned by LockModule when a module's Provide fails.
type ModuleError struct {
	// Index is the module's position in registration order.
	Index int

	// Module is the dynamic type name of the failing module.
	Module string

	Err error
}

func (e *ModuleError) Error() string {
	return "container: module #" + strconv.Itoa(e.Index) + " (" + e.Module + ") failed: " + e.Err.Error()
}

func (e *ModuleError) Unwrap() error { return e.Err }

// ArgumentTypeError reports a constructor argument that cannot be assigned to
// the declared parameter type.
type ArgumentTypeError struct {
	Param string
	Want  string
	Got   string
}

func (e *ArgumentTypeError) Error() string {
	return "container: argument " + strconv.Quote(e.Param) + " has type " + e.Got + ", want " + e.Want
}
