package snapargs

// NewArg convenience initialization method to fluently configure flags
func NewArg(configs ...ConfigureArgumentFunc) *Argument {
	argument := &Argument{}
	for _, config := range configs {
		config(argument, nil)
	}

	return argument
}

// Set configures the Argument instance with the provided
// ConfigureArgumentFunc(s), and returns an error if a configuration results
// in an error.
func (a *Argument) Set(configs ...ConfigureArgumentFunc) error {
	var err error
	for _, config := range configs {
		config(a, &err)
		if err != nil {
			return err
		}
	}

	return nil
}

// WithShortFlag represents the short form of a flag. The base grammar
// restricts short forms to a single character (e.g. "c" for -c).
func WithShortFlag(shortFlag string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Short = shortFlag
	}
}

// WithDescription the description will be used in usage output presented to
// the user and in interactive prompts
func WithDescription(description string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Description = description
	}
}

// WithType - one of two types:
//  1. Single - a flag which expects a value
//  2. Standalone - a boolean flag which takes no value
func WithType(typeOf OptionType) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.TypeOf = typeOf
	}
}

// WithConverter sets the function used to turn the raw token into a typed
// namespace value. Defaults to StringConverter for Single flags.
func WithConverter(converter *Converter) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Converter = converter
	}
}

// WithMetavar overrides the value placeholder shown in usage output.
func WithMetavar(metavar string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Metavar = metavar
	}
}

// WithDefaultValue sets the raw default applied when the flag is absent from
// the command line. The default passes through the argument's converter.
func WithDefaultValue(defaultValue string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.DefaultValue = defaultValue
	}
}

// SetRequired when true, the flag must be supplied on the command-line
func SetRequired(required bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Required = required
	}
}
