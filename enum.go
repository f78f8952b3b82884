package snapargs

import (
	"fmt"
	"strings"
)

// Enum describes a closed set of named members accepted as a flag value.
// Parsing a member name yields the member itself, never its position.
// Member order is preserved for metavar generation.
type Enum[T any] struct {
	name    string
	names   []string
	members map[string]T
}

// NewEnum creates an empty enumeration. The name appears in conversion
// error messages ("'x' is not a valid Mode").
func NewEnum[T any](name string) *Enum[T] {
	return &Enum[T]{
		name:    name,
		members: map[string]T{},
	}
}

// Add registers a member under its name and returns the enum for chaining.
// Re-adding a name overwrites its member but keeps its original position.
func (e *Enum[T]) Add(name string, member T) *Enum[T] {
	if _, exists := e.members[name]; !exists {
		e.names = append(e.names, name)
	}
	e.members[name] = member

	return e
}

// Metavar returns the bracketed pipe-joined member names, e.g.
// "[FAST|SLOW|MEDIUM]".
func (e *Enum[T]) Metavar() string {
	return "[" + strings.Join(e.names, "|") + "]"
}

// Converter returns a Converter performing name lookup into the enum.
func (e *Enum[T]) Converter() *Converter {
	return &Converter{
		Name: e.name,
		Convert: func(value string) (any, error) {
			member, ok := e.members[value]
			if !ok {
				return nil, fmt.Errorf("%w: %q is not a valid %s", ErrConversion, value, e.name)
			}
			return member, nil
		},
	}
}

// WithEnum configures an argument to accept the enum's members. The metavar
// defaults to the enum's bracketed member list unless already set.
func WithEnum[T any](enum *Enum[T]) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.TypeOf = Single
		argument.Converter = enum.Converter()
		if argument.Metavar == "" {
			argument.Metavar = enum.Metavar()
		}
	}
}
