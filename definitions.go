package snapargs

import (
	"errors"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OptionType used to define flag arity
type OptionType int

const (
	// Single denotes a flag accepting one value
	Single OptionType = iota
	// Standalone denotes a boolean flag which takes no value
	Standalone
)

// ConfigureArgumentFunc is used when defining flag arguments
type ConfigureArgumentFunc func(argument *Argument, err *error)

// ConfigureParserFunc is used when defining Parser options
type ConfigureParserFunc func(parser *Parser, err *error)

// ConvertFunc maps a raw command-line token to a typed value or fails.
type ConvertFunc func(value string) (any, error)

// Converter couples a conversion function with the type name displayed in
// diagnostics and metavars.
type Converter struct {
	Name    string
	Convert ConvertFunc
}

// Argument defines a command-line flag or positional argument. Arguments are
// immutable once registered.
type Argument struct {
	Description  string
	TypeOf       OptionType
	Required     bool
	Short        string
	DefaultValue string
	Metavar      string
	Converter    *Converter

	long       string
	positional bool
}

// Suggestion pairs a mistyped token with the registered flag spelling it
// most closely resembles.
type Suggestion struct {
	Observed  string
	Candidate string
}

// TerminalReader supplies interactive line input. The production
// implementation reads from stdin; tests inject scripted readers.
type TerminalReader interface {
	IsTerminal() bool
	ReadLine(prompt string) (string, error)
}

// Parser opaque struct used in all flag manipulation
type Parser struct {
	program       string
	description   string
	acceptedFlags *orderedmap.OrderedMap[string, *Argument]
	positionals   *orderedmap.OrderedMap[string, *Argument]
	autoFix       bool
	threshold     float64
	maxSuggest    int
	maxFixPasses  int
	stdout        io.Writer
	stderr        io.Writer
	terminal      TerminalReader
	exitFunc      func(code int)
}

var (
	ErrUnknownFlag               = errors.New("unknown flag")
	ErrMissingValue              = errors.New("flag expects a value")
	ErrRequiredMissing           = errors.New("missing required arguments")
	ErrConversion                = errors.New("invalid value")
	ErrGrammar                   = errors.New("invalid arguments")
	ErrFlagNotFound              = errors.New("flag not found")
	ErrDuplicateFlag             = errors.New("flag already registered")
	ErrInvalidShortForm          = errors.New("short form must be a single character")
	ErrEmptyFlagName             = errors.New("flag name may not be empty")
	ErrUnsupportedTypeConversion = errors.New("unsupported type conversion")
	ErrNotATerminal              = errors.New("not attached to a terminal")
)

const (
	FmtErrorWithString = "%w: %s"

	// DefaultSuggestionThreshold is the minimum similarity score a
	// candidate must reach to be suggested.
	DefaultSuggestionThreshold = 0.6
	// DefaultMaxSuggestions limits candidates returned per mistyped token.
	DefaultMaxSuggestions = 1
	// DefaultMaxFixPasses bounds autofix rewrite-and-reparse cycles.
	DefaultMaxFixPasses = 1

	// AutoFixFlag is the literal token which enables autofix for a single
	// parse when present anywhere in the input.
	AutoFixFlag = "--autofix"

	// ExitCodeUsage is the process exit status for rejected command lines.
	ExitCodeUsage = 2
)
