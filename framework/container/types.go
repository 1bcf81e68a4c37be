package container

import (
	"fmt"
	"reflect"
)

// TypeDescriptor is what the container needs to instantiate an identifier it
// has no binding for.
//
// Go cannot recover parameter names from a function value, so descriptors work
// from a table filled in ahead of time (see TypeRegistry).
type TypeDescriptor interface {
	// IsInstantiable reports whether id names a type that can be built.
	IsInstantiable(id string) bool

	// ConstructorParameters returns the constructor's parameter names in
	// declaration order. A type without a constructor returns an empty list.
	ConstructorParameters(id string) ([]string, error)

	// Instantiate builds id from a positional argument list.
	Instantiate(id string, args []any) (any, error)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// typeEntry is one row of the registry table.
type typeEntry struct {
	// ctor is invalid for struct and abstract entries.
	ctor         reflect.Value
	params       []string
	returnsError bool

	// elem is set for DefineStruct entries.
	elem     reflect.Type
	abstract bool
}

// TypeRegistry is a TypeDescriptor backed by an explicit table of
// constructors and their parameter names.
//
//	types := container.NewTypeRegistry()
//	_ = types.Define("mail.Mailer", mail.NewMailer, "host", "port")
//	_ = types.DefineStruct("mail.Message", mail.Message{})
//	types.Abstract("mail.Transport")
type TypeRegistry struct {
	types map[string]*typeEntry
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]*typeEntry)}
}

// Define registers constructor under id. constructor must be a non-variadic
// function returning T or (T, error), and params must name each of its
// parameters in order.
func (r *TypeRegistry) Define(id string, constructor any, params ...string) error {
	if constructor == nil {
		return ErrNotFunc
	}
	fn := reflect.ValueOf(constructor)
	ft := fn.Type()
	if ft.Kind() != reflect.Func || ft.IsVariadic() {
		return fmt.Errorf("%w, got %v", ErrNotFunc, ft)
	}

	returnsError := false
	switch ft.NumOut() {
	case 1:
	case 2:
		if !ft.Out(1).Implements(errorType) {
			return fmt.Errorf("%w: second result is %v", ErrBadReturn, ft.Out(1))
		}
		returnsError = true
	default:
		return fmt.Errorf("%w: got %d results", ErrBadReturn, ft.NumOut())
	}

	if ft.NumIn() != len(params) {
		return fmt.Errorf("%w: %s takes %d, got %d names", ErrParamCount, id, ft.NumIn(), len(params))
	}

	r.types[id] = &typeEntry{
		ctor:         fn,
		params:       append([]string(nil), params...),
		returnsError: returnsError,
	}
	return nil
}

// DefineStruct registers a type that has no constructor. Instances are
// allocated with reflect.New and returned as a pointer to the prototype's type.
func (r *TypeRegistry) DefineStruct(id string, prototype any) error {
	if prototype == nil {
		return fmt.Errorf("%w: nil prototype for %s", ErrUnknownType, id)
	}
	t := reflect.TypeOf(prototype)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %s is an interface", ErrUnknownType, id)
	}
	r.types[id] = &typeEntry{elem: t}
	return nil
}

// Abstract records id as a known type that cannot be instantiated.
func (r *TypeRegistry) Abstract(id string) {
	r.types[id] = &typeEntry{abstract: true}
}

// Len returns the number of registered types.
func (r *TypeRegistry) Len() int { return len(r.types) }

// IsInstantiable implements TypeDescriptor.
func (r *TypeRegistry) IsInstantiable(id string) bool {
	e, ok := r.types[id]
	return ok && !e.abstract
}

// ConstructorParameters implements TypeDescriptor.
func (r *TypeRegistry) ConstructorParameters(id string) ([]string, error) {
	e, ok := r.types[id]
	if !ok || e.abstract {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, id)
	}
	return e.params, nil
}

// Instantiate implements TypeDescriptor.
func (r *TypeRegistry) Instantiate(id string, args []any) (instance any, err error) {
	e, ok := r.types[id]
	if !ok || e.abstract {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, id)
	}

	if e.elem != nil {
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: %s takes none, got %d", ErrArgumentCount, id, len(args))
		}
		return reflect.New(e.elem).Interface(), nil
	}

	ft := e.ctor.Type()
	if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, id, ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := argumentValue(e.params[i], ft.In(i), arg)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}

	defer func() {
		if rec := recover(); rec != nil {
			instance = nil
			err = fmt.Errorf("%w: %v", ErrConstructorPanic, rec)
		}
	}()

	out := e.ctor.Call(in)
	if e.returnsError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// argumentValue converts arg to a value assignable to want.
func argumentValue(param string, want reflect.Type, arg any) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, &ArgumentTypeError{Param: param, Want: want.String(), Got: "nil"}
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(want) {
		return reflect.Value{}, &ArgumentTypeError{Param: param, Want: want.String(), Got: v.Type().String()}
	}
	return v, nil
}

// TypeKey returns the package-qualified type name of v, useful as a stable
// identifier for both bindings and registry entries.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
//	types.Define(key, NewUserRepository, "db")
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}
