// Copyright 2024-2026, the snapargs authors. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package snapargs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/pflag"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/snapargs/snapargs/internal/parse"
)

// NewParser convenience initialization method. Use NewParserWith to
// configure a Parser using option functions.
func NewParser() *Parser {
	program := "snapargs"
	if len(os.Args) > 0 && os.Args[0] != "" {
		program = filepath.Base(os.Args[0])
	}

	return &Parser{
		program:       program,
		acceptedFlags: orderedmap.New[string, *Argument](),
		positionals:   orderedmap.New[string, *Argument](),
		threshold:     DefaultSuggestionThreshold,
		maxSuggest:    DefaultMaxSuggestions,
		maxFixPasses:  DefaultMaxFixPasses,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		terminal:      &stdinReader{},
		exitFunc:      os.Exit,
	}
}

// AddFlag registers a flag argument under its long name, supplied without a
// dash prefix ("mode" registers --mode). Flag names must be unique across
// long and short forms.
func (p *Parser) AddFlag(flag string, argument *Argument) error {
	if flag == "" {
		return ErrEmptyFlagName
	}
	if len(argument.Short) > 1 {
		return fmt.Errorf(FmtErrorWithString, ErrInvalidShortForm, argument.Short)
	}
	if _, exists := p.acceptedFlags.Get(flag); exists {
		return fmt.Errorf(FmtErrorWithString, ErrDuplicateFlag, flag)
	}
	if argument.Short != "" {
		for pair := p.acceptedFlags.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Value.Short == argument.Short {
				return fmt.Errorf(FmtErrorWithString, ErrDuplicateFlag, "-"+argument.Short)
			}
		}
	}

	argument.long = flag
	argument.ensureInit()
	p.acceptedFlags.Set(flag, argument)

	return nil
}

// AddPositional registers a positional argument consumed, in registration
// order, from the tokens left over after flag parsing.
func (p *Parser) AddPositional(name string, argument *Argument) error {
	if name == "" {
		return ErrEmptyFlagName
	}
	if _, exists := p.positionals.Get(name); exists {
		return fmt.Errorf(FmtErrorWithString, ErrDuplicateFlag, name)
	}

	argument.long = name
	argument.positional = true
	argument.TypeOf = Single
	argument.ensureInit()
	p.positionals.Set(name, argument)

	return nil
}

// GetArgument returns the Argument registered under a long name, short form
// or dash-prefixed spelling.
func (p *Parser) GetArgument(flag string) (*Argument, error) {
	if arg, ok := p.lookupFlag(flag); ok {
		return arg, nil
	}

	return nil, fmt.Errorf(FmtErrorWithString, ErrFlagNotFound, flag)
}

// HasFlag returns true when a flag is registered under the given spelling.
func (p *Parser) HasFlag(flag string) bool {
	_, ok := p.lookupFlag(flag)

	return ok
}

// Parse evaluates the token stream against the registered arguments. On
// rejection the classified guidance is written to the parser's error writer
// and a *ParseError is returned. A literal --autofix token anywhere in the
// input enables misspelling correction for this parse.
func (p *Parser) Parse(args []string) (*Namespace, error) {
	tokens, autoFix := extractAutoFix(args)

	return p.parseAttempt(tokens, autoFix || p.autoFix, 0, map[string]bool{})
}

// ParseString splits the argument string honoring shell quoting rules and
// calls Parse.
func (p *Parser) ParseString(argString string) (*Namespace, error) {
	args, err := parse.Split(argString)
	if err != nil {
		return nil, fmt.Errorf(FmtErrorWithString, ErrGrammar, err.Error())
	}

	return p.Parse(args)
}

// ParseKnownArgs parses the tokens it recognizes and returns the leftover
// unrecognized ones instead of failing on them. Leftover handling is the
// caller's responsibility.
func (p *Parser) ParseKnownArgs(args []string) (*Namespace, []string, error) {
	tokens, _ := extractAutoFix(args)

	fs, values := p.buildFlagSet()
	fs.ParseErrorsWhitelist.UnknownFlags = true
	if err := fs.Parse(tokens); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(p.stdout, p.FormatHelp())
			return nil, nil, err
		}
		return nil, nil, p.respondErr(err, tokens)
	}

	ns, rest, err := p.collect(fs, values)
	if err != nil {
		return nil, nil, p.respondErr(err, tokens)
	}

	leftover := p.unknownFlagTokens(tokens)
	leftover = append(leftover, rest...)

	if missing := p.missingRequired(ns); len(missing) > 0 {
		return nil, leftover, p.respondErr(requiredError(missing), tokens)
	}

	return ns, leftover, nil
}

// MustParse parses or terminates the process: exit code 2 on a rejected
// command line, 0 after help output.
func (p *Parser) MustParse(args []string) *Namespace {
	ns, err := p.Parse(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			p.exitFunc(0)
			return nil
		}
		p.exitFunc(ExitCodeUsage)
		return nil
	}

	return ns
}

// parseAttempt runs one stateless parse of the token stream. Failures are
// handed to the classifier, which may recurse with a rewritten stream when
// autofix is active.
func (p *Parser) parseAttempt(tokens []string, autoFix bool, pass int, fixed map[string]bool) (*Namespace, error) {
	fs, values := p.buildFlagSet()
	if err := fs.Parse(tokens); err != nil {
		return p.respond(err, tokens, autoFix, pass, fixed)
	}

	ns, rest, err := p.collect(fs, values)
	if err != nil {
		return p.respond(err, tokens, autoFix, pass, fixed)
	}
	if len(rest) > 0 {
		unrecognized := &ParseError{
			Err:     ErrGrammar,
			Message: "unrecognized arguments: " + strings.Join(rest, " "),
		}
		return p.respond(unrecognized, tokens, autoFix, pass, fixed)
	}

	if missing := p.missingRequired(ns); len(missing) > 0 {
		return p.respond(requiredError(missing), tokens, autoFix, pass, fixed)
	}

	return ns, nil
}

// buildFlagSet materializes a fresh pflag.FlagSet from the registry. Each
// parse attempt gets its own set so attempts stay stateless.
func (p *Parser) buildFlagSet() (*pflag.FlagSet, map[string]*argValue) {
	fs := pflag.NewFlagSet(p.program, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.Usage = func() {}

	values := make(map[string]*argValue, p.acceptedFlags.Len())
	for pair := p.acceptedFlags.Oldest(); pair != nil; pair = pair.Next() {
		argument := pair.Value
		value := &argValue{arg: argument}
		flag := fs.VarPF(value, argument.long, argument.Short, argument.Description)
		if argument.TypeOf == Standalone {
			flag.NoOptDefVal = "true"
		}
		values[argument.long] = value
	}

	return fs, values
}

// collect builds the namespace from a successfully parsed flag set, fills
// defaults, consumes positionals and returns any unconsumed tokens.
func (p *Parser) collect(fs *pflag.FlagSet, values map[string]*argValue) (*Namespace, []string, error) {
	ns := &Namespace{values: map[string]any{}}

	for pair := p.acceptedFlags.Oldest(); pair != nil; pair = pair.Next() {
		argument := pair.Value
		value := values[argument.long]
		dest := destName(argument.long)

		switch {
		case value.isSet:
			ns.values[dest] = value.value
		case argument.DefaultValue != "":
			converted, err := argument.convert(argument.DefaultValue)
			if err != nil {
				return nil, nil, err
			}
			ns.values[dest] = converted
		case argument.TypeOf == Standalone:
			ns.values[dest] = false
		}
	}

	rest := fs.Args()
	for pair := p.positionals.Oldest(); pair != nil; pair = pair.Next() {
		if len(rest) == 0 {
			break
		}
		argument := pair.Value
		converted, err := argument.convert(rest[0])
		if err != nil {
			return nil, nil, err
		}
		ns.values[destName(argument.long)] = converted
		rest = rest[1:]
	}

	return ns, rest, nil
}

// missingRequired returns the display names of required arguments absent
// from the namespace, flags first, in registration order.
func (p *Parser) missingRequired(ns *Namespace) []string {
	var missing []string
	for pair := p.acceptedFlags.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Required && !ns.Has(destName(pair.Key)) {
			missing = append(missing, "--"+pair.Key)
		}
	}
	for pair := p.positionals.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Required && !ns.Has(destName(pair.Key)) {
			missing = append(missing, pair.Key)
		}
	}

	return missing
}

func requiredError(missing []string) *ParseError {
	return &ParseError{
		Err:     ErrRequiredMissing,
		Message: "the following arguments are required: " + strings.Join(missing, ", "),
	}
}

// lookupFlag resolves a long name, short form or dash-prefixed spelling
// (with or without an =value suffix) to its registered Argument.
func (p *Parser) lookupFlag(flag string) (*Argument, bool) {
	name := strings.TrimLeft(flag, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return nil, false
	}

	if arg, ok := p.acceptedFlags.Get(name); ok {
		return arg, true
	}
	for pair := p.acceptedFlags.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Short != "" && pair.Value.Short == name {
			return pair.Value, true
		}
	}

	return nil, false
}

// unknownFlagTokens returns the flag-like tokens which resolve to no
// registered argument, preserving stream order. A plain token directly after
// an unknown flag is treated as its stripped value (the base grammar drops
// it when unknown flags are whitelisted) and returned too.
func (p *Parser) unknownFlagTokens(tokens []string) []string {
	var unknown []string
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if !isFlagToken(token) || token == "--help" || token == "-h" {
			continue
		}
		if _, ok := p.lookupFlag(token); ok {
			continue
		}
		unknown = append(unknown, token)
		if !strings.ContainsRune(token, '=') && i+1 < len(tokens) && !isFlagToken(tokens[i+1]) {
			unknown = append(unknown, tokens[i+1])
			i++
		}
	}

	return unknown
}

// extractAutoFix strips the literal --autofix token from the stream and
// reports whether it was present.
func extractAutoFix(args []string) ([]string, bool) {
	found := false
	tokens := make([]string, 0, len(args))
	for _, token := range args {
		if token == AutoFixFlag {
			found = true
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens, found
}

func isFlagToken(token string) bool {
	return len(token) > 1 && token[0] == '-' && token != "--"
}

// destName maps a flag name to its namespace destination ("dry-run" becomes
// "dry_run").
func destName(flag string) string {
	return strcase.ToSnake(flag)
}

// argValue adapts an Argument to the base grammar's Value interface.
// Conversion runs eagerly on Set so the grammar reports bad values against
// the offending flag.
type argValue struct {
	arg   *Argument
	raw   string
	value any
	isSet bool
}

func (v *argValue) String() string {
	return v.raw
}

func (v *argValue) Set(s string) error {
	converted, err := v.arg.convert(s)
	if err != nil {
		return err
	}

	v.raw = s
	v.value = converted
	v.isSet = true

	return nil
}

// Type surfaces the metavar through the base grammar's usage generation.
func (v *argValue) Type() string {
	return v.arg.metavar()
}
