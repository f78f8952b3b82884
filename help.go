package snapargs

import (
	"fmt"
	"io"
	"strings"
)

// FormatHelp renders the usage text: the base grammar's aligned flag usage
// plus a positional section, with the section headers recolored. Output is
// identical across calls for an unchanged registry.
func (p *Parser) FormatHelp() string {
	return recolorHelp(p.baseHelp())
}

// PrintUsage pretty prints accepted flags and positionals to an io.Writer.
func (p *Parser) PrintUsage(writer io.Writer) {
	fmt.Fprint(writer, p.FormatHelp())
}

func (p *Parser) baseHelp() string {
	var sb strings.Builder

	sb.WriteString("Usage: ")
	sb.WriteString(p.program)
	if p.acceptedFlags.Len() > 0 {
		sb.WriteString(" [options]")
	}
	for pair := p.positionals.Oldest(); pair != nil; pair = pair.Next() {
		sb.WriteString(" <" + pair.Key + ">")
	}
	sb.WriteString("\n")

	if p.description != "" {
		sb.WriteString("\n" + p.description + "\n")
	}

	if p.positionals.Len() > 0 {
		sb.WriteString("\npositional arguments:\n")
		for pair := p.positionals.Oldest(); pair != nil; pair = pair.Next() {
			sb.WriteString(fmt.Sprintf("  %-28s %s\n", pair.Key, pair.Value.Description))
		}
	}

	if p.acceptedFlags.Len() > 0 {
		fs, _ := p.buildFlagSet()
		sb.WriteString("\noptions:\n")
		sb.WriteString(fs.FlagUsages())
	}

	return sb.String()
}

// recolorHelp substitutes the literal section headers, both historical and
// current spellings, with their cyan-wrapped display form. The rest of the
// text passes through bit-exact.
func recolorHelp(help string) string {
	help = strings.ReplaceAll(help, "optional arguments:", headerColor.Sprint("Optional arguments:"))
	help = strings.ReplaceAll(help, "options:", headerColor.Sprint("Optional arguments:"))
	help = strings.ReplaceAll(help, "positional arguments:", headerColor.Sprint("Positional arguments:"))

	return help
}
