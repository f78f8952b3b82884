// Package snapargs layers error recovery on top of standard command-line
// flag parsing.
//
// A Parser delegates grammar work (flag registration, token consumption,
// usage text) to spf13/pflag and adds the behaviors the base library does
// not have:
//
//	Enum flags   - closed sets of named members with name-based lookup and
//	               auto-generated [A|B|C] metavars
//	Suggestions  - "Did you mean" hints for misspelled flags, computed by
//	               approximate matching against the registered vocabulary
//	Autofix      - opt-in rewriting of misspelled flags followed by a
//	               bounded re-parse
//	Prompting    - interactive collection of missing required values at a
//	               terminal
//
// Failures are classified (missing value, unknown flag, missing required,
// bad conversion) and rendered as colorized guidance on the parser's error
// writer. MustParse terminates the process with exit code 2 on any failure.
package snapargs
