package enum

import (
	"fmt"
	"reflect"
)

var registry = map[string]any{}

type enum[T comparable] struct {
	toEnum map[string]T
}

// New registers a value of an enum type and returns it. Declare enum
// constants as `var Pending = enum.New(ReportStatus("pending"))`.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	t := v.Type()
	if _, ok := registry[t.Name()]; !ok {
		registry[t.Name()] = enum[T]{toEnum: make(map[string]T)}
	}

	registry[t.Name()].(enum[T]).toEnum[v.String()] = value
	return value
}

// ToEnum parses a string into a registered enum value.
func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := registry[reflect.TypeOf(defaultT).Name()]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}
