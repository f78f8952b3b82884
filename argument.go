package snapargs

import (
	"fmt"
	"strconv"
)

// NewArgument convenience initialization method to describe flags. Use NewArg
// to configure an Argument using option functions.
func NewArgument(shortFlag string, description string, typeOf OptionType, required bool, defaultValue string) *Argument {
	return &Argument{
		Description:  description,
		TypeOf:       typeOf,
		Required:     required,
		Short:        shortFlag,
		DefaultValue: defaultValue,
	}
}

func (a *Argument) ensureInit() {
	if a.TypeOf == Single && a.Converter == nil {
		a.Converter = StringConverter
	}
}

// typeName returns the converter's type name for diagnostics, defaulting to
// a generic "text" type.
func (a *Argument) typeName() string {
	if a.Converter != nil && a.Converter.Name != "" {
		return a.Converter.Name
	}

	return "text"
}

// metavar returns the placeholder shown for the argument's value in usage
// output. Standalone flags report "bool" so the base grammar omits the
// placeholder entirely.
func (a *Argument) metavar() string {
	if a.TypeOf == Standalone {
		return "bool"
	}
	if a.Metavar != "" {
		return a.Metavar
	}

	return a.typeName()
}

// convert applies the argument's converter to a raw token.
func (a *Argument) convert(value string) (any, error) {
	if a.TypeOf == Standalone {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid bool", ErrConversion, value)
		}
		return v, nil
	}

	return a.Converter.Convert(value)
}
