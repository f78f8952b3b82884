package snapargs

import "io"

// NewParserWith allows initialization of Parser using option functions. The
// caller should always test the error before use.
func NewParserWith(configs ...ConfigureParserFunc) (*Parser, error) {
	parser := NewParser()

	var err error
	for _, config := range configs {
		config(parser, &err)
		if err != nil {
			return nil, err
		}
	}

	return parser, nil
}

// WithProgramName sets the program name shown in the usage line.
func WithProgramName(name string) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.program = name
	}
}

// WithProgramDescription sets the descriptive text shown below the usage
// line in help output.
func WithProgramDescription(description string) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.description = description
	}
}

// WithFlag registers a flag argument during parser construction.
func WithFlag(flag string, argument *Argument) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		*err = parser.AddFlag(flag, argument)
	}
}

// WithPositional registers a positional argument during parser construction.
func WithPositional(name string, argument *Argument) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		*err = parser.AddPositional(name, argument)
	}
}

// WithAutoFix enables the rewrite-and-reparse branch for every parse,
// equivalent to passing the literal --autofix token.
func WithAutoFix(autoFix bool) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.autoFix = autoFix
	}
}

// WithSuggestionThreshold sets the minimum similarity score, in [0,1], a
// registered flag must reach to be suggested for a mistyped token.
func WithSuggestionThreshold(threshold float64) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.threshold = threshold
	}
}

// WithMaxSuggestions limits how many candidates are ranked per mistyped
// token.
func WithMaxSuggestions(max int) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		if max >= 1 {
			parser.maxSuggest = max
		}
	}
}

// WithStdout sets the writer used for help output. Defaults to os.Stdout.
func WithStdout(w io.Writer) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.stdout = w
	}
}

// WithStderr sets the writer used for error guidance. Defaults to os.Stderr.
func WithStderr(w io.Writer) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.stderr = w
	}
}

// WithTerminalReader sets the line reader used by InteractiveParse.
func WithTerminalReader(reader TerminalReader) ConfigureParserFunc {
	return func(parser *Parser, err *error) {
		parser.terminal = reader
	}
}

// SetTerminalReader swaps the interactive line reader and returns the
// previous one.
func (p *Parser) SetTerminalReader(reader TerminalReader) TerminalReader {
	old := p.terminal
	p.terminal = reader

	return old
}

// SetExitFunc swaps the function MustParse terminates with and returns the
// previous one. Defaults to os.Exit.
func (p *Parser) SetExitFunc(exit func(code int)) func(code int) {
	old := p.exitFunc
	p.exitFunc = exit

	return old
}

// GetStderr returns the writer used for error guidance.
func (p *Parser) GetStderr() io.Writer {
	return p.stderr
}

// GetStdout returns the writer used for help output.
func (p *Parser) GetStdout() io.Writer {
	return p.stdout
}
