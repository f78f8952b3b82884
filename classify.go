package snapargs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseError is returned when a command line is rejected. Err carries the
// classified kind (ErrMissingValue, ErrUnknownFlag, ErrRequiredMissing,
// ErrConversion or ErrGrammar) and Message the underlying diagnostic.
type ParseError struct {
	Err         error
	Message     string
	Flag        string
	Suggestions []Suggestion
}

func (e *ParseError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}

	return e.Err.Error() + ": " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// respond implements the recovery decision tree for a rejected parse.
// Missing values are diagnosed first: the flag itself is valid, so the
// guidance can be exact. Unknown-flag detection is approximate and only
// engaged when the stricter check fails.
func (p *Parser) respond(parseErr error, tokens []string, autoFix bool, pass int, fixed map[string]bool) (*Namespace, error) {
	if errors.Is(parseErr, pflag.ErrHelp) {
		fmt.Fprint(p.stdout, p.FormatHelp())
		return nil, parseErr
	}

	message := parseErr.Error()

	if argument, ok := p.missingValueFlag(message, tokens); ok {
		p.printMissingValue(argument)
		return nil, &ParseError{
			Err:     ErrMissingValue,
			Message: message,
			Flag:    "--" + argument.long,
		}
	}

	suggestions := p.collectSuggestions(tokens, fixed)
	if len(suggestions) > 0 {
		if autoFix && pass < p.maxFixPasses {
			rewritten := rewriteTokens(tokens, suggestions, fixed)
			return p.parseAttempt(rewritten, autoFix, pass+1, fixed)
		}

		p.printSuggestions(suggestions, message)
		return nil, &ParseError{
			Err:         ErrUnknownFlag,
			Message:     message,
			Flag:        suggestions[0].Observed,
			Suggestions: suggestions,
		}
	}

	var pe *ParseError
	if errors.As(parseErr, &pe) {
		fmt.Fprintln(p.stderr, pe.Message)
		return nil, pe
	}

	fmt.Fprintln(p.stderr, message)

	return nil, &ParseError{Err: fallbackKind(parseErr), Message: message}
}

// respondErr classifies and renders a failure without the autofix recursion,
// for entry points which never rewrite the stream.
func (p *Parser) respondErr(parseErr error, tokens []string) error {
	_, err := p.respond(parseErr, tokens, false, 0, map[string]bool{})

	return err
}

func fallbackKind(parseErr error) error {
	if errors.Is(parseErr, ErrConversion) {
		return ErrConversion
	}
	if strings.Contains(parseErr.Error(), "invalid argument") {
		return ErrConversion
	}

	return ErrGrammar
}

// missingValueFlag decides whether the diagnostic describes a registered
// value-bearing flag present without its value. The flag is taken from the
// diagnostic when possible, otherwise from scanning the raw tokens.
func (p *Parser) missingValueFlag(message string, tokens []string) (*Argument, bool) {
	if !strings.Contains(message, "needs an argument") {
		return nil, false
	}

	if i := strings.LastIndex(message, "--"); i >= 0 {
		name := strings.TrimSpace(message[i+2:])
		if argument, ok := p.lookupFlag(name); ok && argument.TypeOf == Single {
			return argument, true
		}
	}
	if i := strings.IndexByte(message, '\''); i >= 0 && i+2 < len(message) && message[i+2] == '\'' {
		if argument, ok := p.lookupFlag(message[i+1 : i+2]); ok && argument.TypeOf == Single {
			return argument, true
		}
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		if !isFlagToken(token) || strings.ContainsRune(token, '=') {
			continue
		}
		argument, ok := p.lookupFlag(token)
		if !ok || argument.TypeOf != Single {
			continue
		}
		if i == len(tokens)-1 || isFlagToken(tokens[i+1]) {
			return argument, true
		}
	}

	return nil, false
}

// rewriteTokens replaces each mistyped token with its top suggestion. A
// candidate is applied at most once per pass; the first token in the stream
// wins when two tokens map to the same correction. Rewritten tokens are
// recorded so they are never re-suggested.
func rewriteTokens(tokens []string, suggestions []Suggestion, fixed map[string]bool) []string {
	replacement := make(map[string]string, len(suggestions))
	taken := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		if taken[s.Candidate] {
			continue
		}
		if _, dup := replacement[s.Observed]; dup {
			continue
		}
		replacement[s.Observed] = s.Candidate
		taken[s.Candidate] = true
	}

	rewritten := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if corrected, ok := replacement[token]; ok {
			// keep an inline =value attached to the corrected spelling
			if i := strings.IndexByte(token, '='); i >= 0 {
				corrected += token[i:]
			}
			fixed[token] = true
			rewritten = append(rewritten, corrected)
			continue
		}
		rewritten = append(rewritten, token)
	}

	return rewritten
}

func (p *Parser) printMissingValue(argument *Argument) {
	name := "--" + argument.long
	typeName := argument.typeName()

	fmt.Fprintln(p.stderr, errColor.Sprintf("Error: %s expects a %s value.", name, typeName))
	fmt.Fprintf(p.stderr, "Provide it as %s=<%s> or %s <%s>.\n", name, typeName, name, typeName)
}

func (p *Parser) printSuggestions(suggestions []Suggestion, message string) {
	fmt.Fprintln(p.stderr, errColor.Sprint("Error: unknown or invalid argument(s)."))
	for _, s := range suggestions {
		fmt.Fprintf(p.stderr, "  Did you mean: %s -> %s?\n",
			wrongColor.Sprint(s.Observed), suggestColor.Sprint(s.Candidate))
	}
	fmt.Fprintf(p.stderr, "\n%s\n", message)
	fmt.Fprintln(p.stderr, "Run with --help for usage.")
}
