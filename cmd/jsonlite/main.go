package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/kevinushey/jsonlite"
	"github.com/kevinushey/jsonlite/internal/config"
	"github.com/kevinushey/jsonlite/value"
)

// CLI defines the command-line interface. Mode flags are mutually
// exclusive; without one the tool normalizes: decode, simplify, re-encode.
// Option flags are pointers so only explicitly-set flags override the
// option profile.
var CLI struct {
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`

	Validate bool `help:"Check that the input is valid JSON and exit." xor:"mode"`
	Minify   bool `help:"Rewrite the input without insignificant whitespace." xor:"mode"`
	Pretty   bool `help:"Reformat the input with two-space indentation." xor:"mode"`
	Describe bool `help:"Print a one-line structural summary of the decoded value." xor:"mode"`

	SimplifyVector    *bool   `help:"Promote arrays of scalars to typed sequences (default true)."`
	SimplifyDataFrame *bool   `help:"Promote arrays of objects to tables (default true)."`
	SimplifyMatrix    *bool   `help:"Promote uniform nested arrays to dimensioned arrays (default true)."`
	Flatten           *bool   `help:"Flatten nested table columns into dotted names."`
	UnicodeEscapes    *bool   `help:"Pre-expand \\uXXXX escapes before parsing."`
	MaxDepth          *int    `help:"Maximum nesting depth (default 1000)."`
	KeyCase           *string `help:"Rename keys: none, camel, snake or kebab."`

	DataFrame     *string `help:"Table orientation: rows or columns."`
	Matrix        *string `help:"Array traversal: rowmajor or columnmajor."`
	Factor        *string `help:"Categorical form: labels or codes."`
	Temporal      *string `help:"Instant form: iso8601, epoch, string or mongo."`
	Complex       *string `help:"Complex form: text or pair."`
	Raw           *string `help:"Byte form: base64, hex or mongo."`
	NA            *string `help:"Missing-value form: null or string." name:"na"`
	Null          *string `help:"Structured-null form: list or null."`
	AutoUnbox     *bool   `help:"Emit length-1 sequences as bare scalars."`
	Digits        *int    `help:"Fractional digits for doubles (default 4, negative for full precision)."`
	Indent        *bool   `help:"Indent normalized output with two spaces."`
	Force         *bool   `help:"Coerce unmappable values to their printed form instead of failing."`
	EscapeUnicode *bool   `help:"Emit non-ASCII characters as \\uXXXX escapes."`

	Config      string `help:"Path to a .jsonlite.yml option profile. Found by walking up from the working directory when omitted." type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

const Version = "0.1.0"

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonlite"),
		kong.Description("Decode, simplify and re-encode JSON with type-preserving promotion of arrays into sequences, tables and matrices"),
		kong.UsageOnError(),
	)
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage was already shown by kong.UsageOnError.
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonlite version %s\n", Version)
		return
	}

	if err := run(newLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", userMessage(err))
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if CLI.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run executes the selected mode over the resolved options.
func run(logger *slog.Logger) error {
	cfg, err := loadProfile(logger)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	data, err := readInput()
	if err != nil {
		return err
	}
	logger.Debug("read input", "bytes", len(data))

	switch {
	case CLI.Validate:
		if !jsonlite.Valid(data) {
			return fmt.Errorf("input is not valid JSON")
		}
		logger.Debug("input is valid JSON")
		return nil
	case CLI.Minify:
		out, err := jsonlite.Minify(data)
		if err != nil {
			return err
		}
		return writeOutput(out)
	case CLI.Pretty:
		out, err := jsonlite.Prettify(data)
		if err != nil {
			return err
		}
		return writeOutput(out)
	case CLI.Describe:
		v, err := jsonlite.Decode(data, cfg.DecodeOptions())
		if err != nil {
			return err
		}
		return writeOutput([]byte(describe(v)))
	default:
		v, err := jsonlite.Decode(data, cfg.DecodeOptions())
		if err != nil {
			return err
		}
		out, err := jsonlite.Encode(v, cfg.EncodeOptions())
		if err != nil {
			return err
		}
		logger.Debug("normalized", "bytes", len(out))
		return writeOutput(out)
	}
}

// loadProfile resolves the option profile: an explicit --config path, a
// profile found by walking up from the working directory, or defaults.
func loadProfile(logger *slog.Logger) (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded option profile", "path", path)
	return cfg, nil
}

// applyFlags overrides profile values with explicitly-set flags.
func applyFlags(cfg *config.Config) {
	if CLI.SimplifyVector != nil {
		cfg.Decode.SimplifyVector = *CLI.SimplifyVector
	}
	if CLI.SimplifyDataFrame != nil {
		cfg.Decode.SimplifyDataFrame = *CLI.SimplifyDataFrame
	}
	if CLI.SimplifyMatrix != nil {
		cfg.Decode.SimplifyMatrix = *CLI.SimplifyMatrix
	}
	if CLI.Flatten != nil {
		cfg.Decode.Flatten = *CLI.Flatten
	}
	if CLI.UnicodeEscapes != nil {
		cfg.Decode.UnicodeEscapes = *CLI.UnicodeEscapes
	}
	if CLI.MaxDepth != nil {
		cfg.Decode.MaxDepth = *CLI.MaxDepth
	}
	if CLI.KeyCase != nil {
		cfg.Decode.KeyCase = *CLI.KeyCase
	}
	if CLI.DataFrame != nil {
		cfg.Encode.DataFrame = *CLI.DataFrame
	}
	if CLI.Matrix != nil {
		cfg.Encode.Matrix = *CLI.Matrix
	}
	if CLI.Factor != nil {
		cfg.Encode.Factor = *CLI.Factor
	}
	if CLI.Temporal != nil {
		cfg.Encode.Temporal = *CLI.Temporal
	}
	if CLI.Complex != nil {
		cfg.Encode.Complex = *CLI.Complex
	}
	if CLI.Raw != nil {
		cfg.Encode.Raw = *CLI.Raw
	}
	if CLI.NA != nil {
		cfg.Encode.NA = *CLI.NA
	}
	if CLI.Null != nil {
		cfg.Encode.Null = *CLI.Null
	}
	if CLI.AutoUnbox != nil {
		cfg.Encode.AutoUnbox = *CLI.AutoUnbox
	}
	if CLI.Digits != nil {
		cfg.Encode.Digits = *CLI.Digits
	}
	if CLI.Indent != nil {
		cfg.Encode.Pretty = *CLI.Indent
	}
	if CLI.Force != nil {
		cfg.Encode.Force = *CLI.Force
	}
	if CLI.EscapeUnicode != nil {
		cfg.Encode.EscapeUnicode = *CLI.EscapeUnicode
	}
}

// readInput reads JSON from file or stdin.
func readInput() ([]byte, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file %q not found", CLI.Input)
			}
			return nil, fmt.Errorf("failed to read %q: %w", CLI.Input, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("input file %q is empty", CLI.Input)
		}
		return data, nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to access stdin: %w", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return nil, fmt.Errorf("no input provided")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input received from stdin")
	}
	return data, nil
}

// writeOutput writes the result to file or stdout.
func writeOutput(out []byte) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, out, 0644); err != nil {
			return fmt.Errorf("failed to write to file %q: %w", CLI.Output, err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}
	_, err := fmt.Println(strings.TrimSpace(string(out)))
	return err
}

// readInteractiveInput lets the user paste JSON and signal completion
// with Ctrl+D (EOF).
func readInteractiveInput() ([]byte, error) {
	fmt.Fprintln(os.Stderr, "jsonlite interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading input: %w", err)
		}
		builder.WriteString(line)
	}
	if builder.Len() == 0 {
		return nil, fmt.Errorf("empty input received")
	}
	return []byte(builder.String()), nil
}

// describe renders a one-line structural summary of a decoded value.
func describe(v value.Value) string {
	switch t := v.(type) {
	case *value.Scalar:
		if t.IsNA() {
			return "scalar NA"
		}
		return fmt.Sprintf("scalar<%s>", t.Kind())
	case *value.Sequence:
		return fmt.Sprintf("sequence<%s> length %d", t.Kind, t.Len())
	case *value.List:
		names := ""
		if t.Named() {
			names = ", named"
		}
		return fmt.Sprintf("list length %d%s", t.Len(), names)
	case *value.Table:
		names := make([]string, len(t.Cols()))
		for i, c := range t.Cols() {
			names[i] = c.Name
		}
		return fmt.Sprintf("table %d rows x %d columns (%s)", t.Rows(), len(t.Cols()), strings.Join(names, ", "))
	case *value.Array:
		dims := make([]string, len(t.Dims()))
		for i, d := range t.Dims() {
			dims[i] = fmt.Sprint(d)
		}
		return fmt.Sprintf("array<%s> dims [%s]", t.Seq().Kind, strings.Join(dims, ","))
	case *value.Categorical:
		return fmt.Sprintf("categorical length %d with %d levels", t.Len(), len(t.Levels()))
	case *value.Temporal:
		if t.Unit() == value.UnitDate {
			return "temporal date"
		}
		return "temporal date-time"
	case *value.Complex:
		return "complex"
	case *value.Bytes:
		return fmt.Sprintf("bytes length %d", t.Len())
	case value.Null:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// userMessage adds a kind prefix so CLI failures read uniformly.
func userMessage(err error) string {
	var pe *jsonlite.ParseError
	if errors.As(err, &pe) {
		return fmt.Sprintf("Parse Error: %v", err)
	}
	var ve *jsonlite.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("Validation Error: %v", err)
	}
	var ue *jsonlite.UnsupportedTypeError
	if errors.As(err, &ue) {
		return fmt.Sprintf("Encoding Error: %v", err)
	}
	var de *jsonlite.DepthExceededError
	if errors.As(err, &de) {
		return fmt.Sprintf("Depth Error: %v", err)
	}
	var se *value.SchemaError
	if errors.As(err, &se) {
		return fmt.Sprintf("Schema Error: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}
