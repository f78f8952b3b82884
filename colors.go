package snapargs

import "github.com/fatih/color"

// Palette matches the ANSI codes snapargs has always emitted: hi-cyan (96)
// section headers, hi-yellow (93) banners, hi-red (91) mistyped tokens and
// bold hi-green (92;1) suggestions.
var (
	headerColor  = color.New(color.FgHiCyan)
	errColor     = color.New(color.FgHiYellow)
	wrongColor   = color.New(color.FgHiRed)
	suggestColor = color.New(color.FgHiGreen, color.Bold)
)
