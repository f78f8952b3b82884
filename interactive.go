package snapargs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ef-ds/deque/v2"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// InteractiveParse attempts a normal parse and, on rejection, prompts at the
// terminal for every required argument absent from the token stream. Each
// answer passes through the argument's converter; bad input re-prompts with
// the conversion error. Once all prompts are satisfied the collected values
// are appended to the tokens and the full parse re-runs.
//
// The prompt loop blocks and must not be used in piped or batch contexts;
// the default reader refuses to prompt when stdin is not a terminal.
func (p *Parser) InteractiveParse(args []string) (*Namespace, error) {
	ns, err := p.Parse(args)
	if err == nil {
		return ns, nil
	}
	if errors.Is(err, pflag.ErrHelp) {
		return nil, err
	}

	tokens, _ := extractAutoFix(args)
	pending := p.missingFromTokens(tokens)
	if pending.Len() == 0 {
		return nil, err
	}
	if !p.terminal.IsTerminal() {
		return nil, fmt.Errorf(FmtErrorWithString, ErrNotATerminal, "cannot prompt for missing arguments")
	}

	for pending.Len() > 0 {
		argument, _ := pending.PopFront()
		value, rerr := p.promptFor(argument)
		if rerr != nil {
			return nil, rerr
		}
		if argument.positional {
			args = append(args, value)
			continue
		}
		args = append(args, "--"+argument.long, value)
	}

	return p.Parse(args)
}

// missingFromTokens queues, in registration order, every required argument
// present in neither long, short nor positional form.
func (p *Parser) missingFromTokens(tokens []string) *deque.Deque[*Argument] {
	pending := deque.New[*Argument]()

	for pair := p.acceptedFlags.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Required && !flagPresent(tokens, pair.Value) {
			pending.PushBack(pair.Value)
		}
	}

	filled := p.bareTokenCount(tokens)
	position := 0
	for pair := p.positionals.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Required && position >= filled {
			pending.PushBack(pair.Value)
		}
		position++
	}

	return pending
}

// promptFor reads and converts one value, looping until the converter
// accepts the input.
func (p *Parser) promptFor(argument *Argument) (string, error) {
	prompt := "Enter value for "
	if argument.positional {
		prompt += argument.long
	} else {
		prompt += "--" + argument.long
	}
	if argument.Description != "" {
		prompt += " (" + argument.Description + ")"
	}
	prompt += ": "

	for {
		line, err := p.terminal.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if _, cerr := argument.convert(line); cerr != nil {
			fmt.Fprintf(p.stderr, "Invalid value: %v\n", cerr)
			continue
		}
		return line, nil
	}
}

func flagPresent(tokens []string, argument *Argument) bool {
	long := "--" + argument.long
	short := ""
	if argument.Short != "" {
		short = "-" + argument.Short
	}

	for _, token := range tokens {
		if token == long || strings.HasPrefix(token, long+"=") {
			return true
		}
		if short != "" && (token == short || strings.HasPrefix(token, short+"=")) {
			return true
		}
	}

	return false
}

// bareTokenCount counts tokens available to fill positional slots: plain
// tokens not consumed as the value of a registered value-bearing flag.
func (p *Parser) bareTokenCount(tokens []string) int {
	count := 0
	skipNext := false
	for _, token := range tokens {
		if skipNext {
			skipNext = false
			continue
		}
		if isFlagToken(token) {
			if argument, ok := p.lookupFlag(token); ok &&
				argument.TypeOf == Single && !strings.ContainsRune(token, '=') {
				skipNext = true
			}
			continue
		}
		count++
	}

	return count
}

// stdinReader is the production TerminalReader: line-buffered stdin with the
// prompt echoed to stderr.
type stdinReader struct {
	scanner *bufio.Scanner
}

func (r *stdinReader) IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (r *stdinReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if r.scanner == nil {
		r.scanner = bufio.NewScanner(os.Stdin)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf(FmtErrorWithString, ErrNotATerminal, "input closed")
	}

	return r.scanner.Text(), nil
}
