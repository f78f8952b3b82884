package snapargs

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMode int

const (
	fastMode testMode = iota
	slowMode
	mediumMode
)

func modeEnum() *Enum[testMode] {
	return NewEnum[testMode]("Mode").
		Add("FAST", fastMode).
		Add("SLOW", slowMode).
		Add("MEDIUM", mediumMode)
}

func demoParser(t *testing.T, stderr *bytes.Buffer) *Parser {
	t.Helper()

	parser, err := NewParserWith(
		WithProgramName("demo"),
		WithStderr(stderr),
		WithFlag("mode", NewArg(WithEnum(modeEnum()), WithDescription("Choose a processing mode."))),
		WithFlag("count", NewArg(WithConverter(IntConverter), WithDescription("Number of things to process."))),
	)
	require.NoError(t, err)

	return parser
}

func TestParser_EnumRoundTrip(t *testing.T) {
	parser := demoParser(t, &bytes.Buffer{})

	ns, err := parser.Parse([]string{"--mode", "FAST"})
	require.NoError(t, err)

	mode, err := Value[testMode](ns, "mode")
	assert.NoError(t, err)
	assert.Equal(t, fastMode, mode, "parsing a member name should yield the member, not its ordinal")
}

func TestParser_UnknownFlagSuggestion(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	var exitCode = -1
	parser.SetExitFunc(func(code int) { exitCode = code })

	ns := parser.MustParse([]string{"--mod", "FAST"})
	assert.Nil(t, ns)
	assert.Equal(t, ExitCodeUsage, exitCode)

	output := stderr.String()
	assert.Contains(t, output, "Did you mean")
	assert.Contains(t, output, "--mod")
	assert.Contains(t, output, "--mode")
}

func TestParser_UnknownFlagError(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	_, err := parser.Parse([]string{"--mod", "FAST"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFlag))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Len(t, pe.Suggestions, 1)
	assert.Equal(t, "--mod", pe.Suggestions[0].Observed)
	assert.Equal(t, "--mode", pe.Suggestions[0].Candidate)
}

func TestParser_AutoFixToken(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	ns, err := parser.Parse([]string{"--autofix", "--mod", "FAST"})
	require.NoError(t, err, "autofix should rewrite --mod to --mode and re-parse")
	assert.Empty(t, stderr.String(), "a corrected parse should emit no guidance")

	mode, err := Value[testMode](ns, "mode")
	assert.NoError(t, err)
	assert.Equal(t, fastMode, mode)
}

func TestParser_AutoFixConfigured(t *testing.T) {
	parser, err := NewParserWith(
		WithAutoFix(true),
		WithStderr(&bytes.Buffer{}),
		WithFlag("count", NewArg(WithConverter(IntConverter))),
	)
	require.NoError(t, err)

	ns, err := parser.Parse([]string{"--cuont", "3"})
	require.NoError(t, err)

	count, err := ns.GetInt("count")
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestParser_AutoFixInlineValue(t *testing.T) {
	parser := demoParser(t, &bytes.Buffer{})

	ns, err := parser.Parse([]string{"--autofix", "--mod=SLOW"})
	require.NoError(t, err)

	mode, err := Value[testMode](ns, "mode")
	assert.NoError(t, err)
	assert.Equal(t, slowMode, mode)
}

func TestParser_AutoFixBounded(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	// Both misspellings map to --mode; only the first token in the stream
	// gets the correction, so the second still fails after the single
	// rewrite pass.
	_, err := parser.Parse([]string{"--autofix", "--mod", "FAST", "--mdoe", "SLOW"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFlag))
	assert.Contains(t, stderr.String(), "--mdoe")
}

func TestParser_MissingRequired(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser, err := NewParserWith(
		WithStderr(stderr),
		WithFlag("count", NewArg(WithConverter(IntConverter), SetRequired(true))),
		WithFlag("mode", NewArg(WithEnum(modeEnum()), SetRequired(true))),
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequiredMissing))

	// batched: every missing flag reported at once, comma-joined
	assert.Contains(t, stderr.String(), "--count, --mode")
}

func TestParser_MissingValue(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	_, err := parser.Parse([]string{"--count"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingValue))

	output := stderr.String()
	assert.Contains(t, output, "--count")
	assert.Contains(t, output, "int")
	assert.Contains(t, output, "--count=<int>")
	assert.Contains(t, output, "--count <int>")
}

func TestParser_MissingValueShortForm(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser, err := NewParserWith(
		WithStderr(stderr),
		WithFlag("count", NewArg(WithConverter(IntConverter), WithShortFlag("c"))),
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"-c"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingValue))
	assert.Contains(t, stderr.String(), "--count")
}

func TestParser_ConversionError(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	_, err := parser.Parse([]string{"--count", "abc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))
	assert.Contains(t, stderr.String(), "not a valid int")
}

func TestParser_EnumConversionError(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	_, err := parser.Parse([]string{"--mode", "TURBO"})
	require.Error(t, err)
	assert.Contains(t, stderr.String(), `"TURBO" is not a valid Mode`)
}

func TestParser_DefaultValue(t *testing.T) {
	parser, err := NewParserWith(
		WithStderr(&bytes.Buffer{}),
		WithFlag("count", NewArg(WithConverter(IntConverter), WithDefaultValue("10"))),
	)
	require.NoError(t, err)

	ns, err := parser.Parse([]string{})
	require.NoError(t, err)

	count, err := ns.GetInt("count")
	assert.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestParser_StandaloneFlag(t *testing.T) {
	parser, err := NewParserWith(
		WithStderr(&bytes.Buffer{}),
		WithFlag("verbose", NewArg(WithType(Standalone), WithShortFlag("v"))),
	)
	require.NoError(t, err)

	ns, err := parser.Parse([]string{"-v"})
	require.NoError(t, err)
	verbose, err := ns.GetBool("verbose")
	assert.NoError(t, err)
	assert.True(t, verbose)

	ns, err = parser.Parse([]string{})
	require.NoError(t, err)
	verbose, err = ns.GetBool("verbose")
	assert.NoError(t, err)
	assert.False(t, verbose, "an absent standalone flag should read as false")
}

func TestParser_Positional(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser, err := NewParserWith(
		WithStderr(stderr),
		WithFlag("mode", NewArg(WithEnum(modeEnum()))),
		WithPositional("filename", NewArg(WithDescription("Input file"), SetRequired(true))),
	)
	require.NoError(t, err)

	ns, err := parser.Parse([]string{"--mode", "SLOW", "input.txt"})
	require.NoError(t, err)

	filename, err := ns.GetString("filename")
	assert.NoError(t, err)
	assert.Equal(t, "input.txt", filename)

	_, err = parser.Parse([]string{"--mode", "SLOW"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequiredMissing))
	assert.Contains(t, stderr.String(), "filename")
}

func TestParser_UnrecognizedPositional(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	_, err := parser.Parse([]string{"--mode", "FAST", "stray"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGrammar))
	assert.Contains(t, stderr.String(), "unrecognized arguments: stray")
}

func TestParser_ParseString(t *testing.T) {
	parser := demoParser(t, &bytes.Buffer{})

	ns, err := parser.ParseString(`--mode "FAST" --count 2`)
	require.NoError(t, err)

	mode, err := Value[testMode](ns, "mode")
	assert.NoError(t, err)
	assert.Equal(t, fastMode, mode)

	count, err := ns.GetInt("count")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestParser_ParseKnownArgs(t *testing.T) {
	parser := demoParser(t, &bytes.Buffer{})

	ns, leftover, err := parser.ParseKnownArgs([]string{"--mode", "FAST", "--unknown", "extra"})
	require.NoError(t, err)

	mode, err := Value[testMode](ns, "mode")
	assert.NoError(t, err)
	assert.Equal(t, fastMode, mode)

	assert.Contains(t, leftover, "--unknown")
	assert.Contains(t, leftover, "extra")
}

func TestParser_HelpFlag(t *testing.T) {
	stdout := &bytes.Buffer{}
	parser, err := NewParserWith(
		WithProgramName("demo"),
		WithStdout(stdout),
		WithStderr(&bytes.Buffer{}),
		WithFlag("mode", NewArg(WithEnum(modeEnum()))),
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--help"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pflag.ErrHelp))
	assert.Contains(t, stdout.String(), "Usage: demo")

	var exitCode = -1
	parser.SetExitFunc(func(code int) { exitCode = code })
	parser.MustParse([]string{"--help"})
	assert.Equal(t, 0, exitCode, "help is not a failure")
}

func TestParser_Registration(t *testing.T) {
	parser := NewParser()

	assert.ErrorIs(t, parser.AddFlag("", NewArg()), ErrEmptyFlagName)

	require.NoError(t, parser.AddFlag("mode", NewArg()))
	assert.ErrorIs(t, parser.AddFlag("mode", NewArg()), ErrDuplicateFlag)
	assert.ErrorIs(t, parser.AddFlag("other", NewArg(WithShortFlag("xy"))), ErrInvalidShortForm)

	require.NoError(t, parser.AddFlag("count", NewArg(WithShortFlag("c"))))
	assert.ErrorIs(t, parser.AddFlag("config", NewArg(WithShortFlag("c"))), ErrDuplicateFlag)

	assert.True(t, parser.HasFlag("--mode"))
	assert.True(t, parser.HasFlag("-c"))
	assert.False(t, parser.HasFlag("--bogus"))

	argument, err := parser.GetArgument("count")
	require.NoError(t, err)
	assert.Equal(t, "c", argument.Short)
}

func TestParser_DestNameConversion(t *testing.T) {
	parser, err := NewParserWith(
		WithStderr(&bytes.Buffer{}),
		WithFlag("dry-run", NewArg(WithType(Standalone))),
	)
	require.NoError(t, err)

	ns, err := parser.Parse([]string{"--dry-run"})
	require.NoError(t, err)

	dryRun, err := ns.GetBool("dry_run")
	assert.NoError(t, err)
	assert.True(t, dryRun)
}

func TestExtractAutoFix(t *testing.T) {
	tokens, found := extractAutoFix([]string{"--autofix", "--mode", "FAST"})
	assert.True(t, found)
	assert.Equal(t, []string{"--mode", "FAST"}, tokens)

	tokens, found = extractAutoFix([]string{"--mode", "FAST"})
	assert.False(t, found)
	assert.Equal(t, []string{"--mode", "FAST"}, tokens)
}

func TestNamespace_Getters(t *testing.T) {
	parser := demoParser(t, &bytes.Buffer{})

	ns, err := parser.Parse([]string{"--count", "7"})
	require.NoError(t, err)

	assert.True(t, ns.Has("count"))
	assert.False(t, ns.Has("mode"))

	count, err := ns.GetInt("count")
	assert.NoError(t, err)
	assert.Equal(t, 7, count)

	_, err = ns.GetString("count")
	assert.ErrorIs(t, err, ErrUnsupportedTypeConversion)

	_, err = ns.GetInt("mode")
	assert.ErrorIs(t, err, ErrFlagNotFound)

	assert.Equal(t, 0, ns.GetOrDefault("missing", 0))
	assert.Equal(t, 7, ns.GetOrDefault("count", 0))
}

func TestParser_GuidanceMentionsHelp(t *testing.T) {
	stderr := &bytes.Buffer{}
	parser := demoParser(t, stderr)

	_, err := parser.Parse([]string{"--mod", "FAST"})
	require.Error(t, err)
	assert.True(t, strings.Contains(stderr.String(), "--help"))
}
