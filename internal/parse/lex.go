package parse

import "github.com/google/shlex"

// Split tokenizes a command line into argv form, honoring shell quoting.
func Split(s string) ([]string, error) {
	return shlex.Split(s)
}
