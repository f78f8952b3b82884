package snapargs

import (
	"fmt"
	"time"
)

// Namespace holds the typed results of a successful parse, keyed by
// destination name: the snake_case form of the long flag or positional name.
type Namespace struct {
	values map[string]any
}

// Has returns true when the destination was set, either on the command line
// or through a default.
func (n *Namespace) Has(dest string) bool {
	_, ok := n.values[dest]

	return ok
}

// Get returns the raw typed value stored under the destination name.
func (n *Namespace) Get(dest string) (any, bool) {
	v, ok := n.values[dest]

	return v, ok
}

// GetOrDefault returns the stored value or the supplied fallback.
func (n *Namespace) GetOrDefault(dest string, defaultValue any) any {
	if v, ok := n.values[dest]; ok {
		return v
	}

	return defaultValue
}

// GetString returns the destination's value as a string.
func (n *Namespace) GetString(dest string) (string, error) {
	return Value[string](n, dest)
}

// GetInt returns the destination's value as an int.
func (n *Namespace) GetInt(dest string) (int, error) {
	return Value[int](n, dest)
}

// GetFloat returns the destination's value as a float64.
func (n *Namespace) GetFloat(dest string) (float64, error) {
	return Value[float64](n, dest)
}

// GetBool returns the destination's value as a bool.
func (n *Namespace) GetBool(dest string) (bool, error) {
	return Value[bool](n, dest)
}

// GetTime returns the destination's value as a time.Time.
func (n *Namespace) GetTime(dest string) (time.Time, error) {
	return Value[time.Time](n, dest)
}

// Value retrieves a typed value from the namespace. Enum members come back
// as their member type, never as an ordinal.
func Value[T any](n *Namespace, dest string) (T, error) {
	var zero T

	v, ok := n.values[dest]
	if !ok {
		return zero, fmt.Errorf(FmtErrorWithString, ErrFlagNotFound, dest)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrUnsupportedTypeConversion, dest, v)
	}

	return typed, nil
}
