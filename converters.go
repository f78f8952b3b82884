package snapargs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// Built-in converters. A flag registered without an explicit converter
// behaves as text.
var (
	StringConverter = &Converter{
		Name: "text",
		Convert: func(value string) (any, error) {
			return value, nil
		},
	}

	IntConverter = &Converter{
		Name: "int",
		Convert: func(value string) (any, error) {
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a valid int", ErrConversion, value)
			}
			return v, nil
		},
	}

	Float64Converter = &Converter{
		Name: "float",
		Convert: func(value string) (any, error) {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a valid float", ErrConversion, value)
			}
			return v, nil
		},
	}

	BoolConverter = &Converter{
		Name: "bool",
		Convert: func(value string) (any, error) {
			v, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a valid bool", ErrConversion, value)
			}
			return v, nil
		},
	}

	DurationConverter = &Converter{
		Name: "duration",
		Convert: func(value string) (any, error) {
			v, err := time.ParseDuration(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a valid duration", ErrConversion, value)
			}
			return v, nil
		},
	}

	// TimeConverter accepts any timestamp layout dateparse recognizes.
	TimeConverter = &Converter{
		Name: "time",
		Convert: func(value string) (any, error) {
			v, err := dateparse.ParseLocal(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a valid time", ErrConversion, value)
			}
			return v, nil
		},
	}
)
