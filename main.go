package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/structconv/internal/codec"
	"github.com/mcncl/structconv/internal/config"
	"github.com/mcncl/structconv/internal/decoder"
	"github.com/mcncl/structconv/internal/diag"
	"github.com/mcncl/structconv/internal/encoder"
	"github.com/mcncl/structconv/internal/errors"
	"github.com/mcncl/structconv/internal/formatter"
	"github.com/mcncl/structconv/internal/models"
	"github.com/mcncl/structconv/internal/parser"
	"github.com/mcncl/structconv/internal/protoconv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI defines the command-line interface
var CLI struct {
	Config string `help:"Path to config file. Defaults to the nearest .structconv.yml." short:"c" type:"path"`
	Debug  bool   `help:"Report skipped keys and elements on stderr." short:"d"`

	Encode  EncodeCmd  `cmd:"" help:"Convert a plain JSON object into a tagged Struct."`
	Decode  DecodeCmd  `cmd:"" help:"Convert a tagged Struct back into plain JSON."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// IOFlags are shared by the conversion commands
type IOFlags struct {
	Input   string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Compact bool   `help:"Write compact JSON instead of indented JSON."`
	KeyCase string `help:"Rewrite object keys: none, camel, lower_camel, snake or kebab." short:"k"`
}

// EncodeCmd converts plain JSON to the tagged representation
type EncodeCmd struct {
	IOFlags
	Format          string `help:"Output format: tagged or protojson." short:"f"`
	LegacyListKinds bool   `help:"Omit the kind tag on scalar and struct list elements."`
}

// DecodeCmd converts the tagged representation to plain JSON
type DecodeCmd struct {
	IOFlags
	From       string `help:"Input format: tagged or protojson." default:"tagged"`
	InferKinds bool   `help:"Decode untagged values by their populated payload field."`
}

// VersionCmd prints the version
type VersionCmd struct{}

// Context holds the runtime context
type Context struct {
	ConfigPath string
	Debug      bool
	Logger     *zap.Logger
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("structconv"),
		kong.Description("Convert between plain JSON and the protobuf Struct representation"),
		kong.UsageOnError(),
	)

	kctx, err := app.Parse(os.Args[1:])
	if err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	logger := diag.NewConsole(zapcore.DebugLevel)
	defer func() { _ = logger.Sync() }()
	diag.SetLogger(logger)

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	err = kctx.Run(&Context{
		ConfigPath: configPath,
		Debug:      CLI.Debug,
		Logger:     logger,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: structconv --help\n")
		os.Exit(1)
	}
}

// Run encodes a plain JSON object
func (c *EncodeCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig(config.Overrides{
		Format:          c.Format,
		Compact:         setFlag(c.Compact),
		LegacyListKinds: setFlag(c.LegacyListKinds),
		KeyCase:         c.KeyCase,
	})
	if err != nil {
		return err
	}

	in, err := ctx.openInput(c.Input)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	obj, err := parser.ParseObject(in)
	if err != nil {
		return err
	}

	keys, err := config.KeyTransform(cfg.Encode.KeyCase)
	if err != nil {
		return err
	}

	s := encoder.ToStruct(obj,
		encoder.WithDebug(cfg.Dev.Debug),
		encoder.WithLogger(ctx.Logger),
		encoder.WithLegacyListKinds(cfg.Encode.LegacyListKinds),
		encoder.WithKeyTransform(keys),
	)

	out, err := formatter.NewFormatter(cfg.Output).FormatStruct(s,
		protoconv.WithDebug(cfg.Dev.Debug),
		protoconv.WithLogger(ctx.Logger),
	)
	if err != nil {
		return err
	}
	return ctx.writeOutput(c.Output, out)
}

// Run decodes a tagged Struct
func (c *DecodeCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig(config.Overrides{
		Compact:    setFlag(c.Compact),
		InferKinds: setFlag(c.InferKinds),
		KeyCase:    c.KeyCase,
	})
	if err != nil {
		return err
	}

	in, err := ctx.openInput(c.Input)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	s, err := c.readStruct(in, cfg, ctx.Logger)
	if err != nil {
		return err
	}

	keys, err := config.KeyTransform(cfg.Decode.KeyCase)
	if err != nil {
		return err
	}

	plain := decoder.FromStruct(s,
		decoder.WithDebug(cfg.Dev.Debug),
		decoder.WithLogger(ctx.Logger),
		decoder.WithPayloadInference(cfg.Decode.InferKinds),
		decoder.WithKeyTransform(keys),
	)

	out, err := formatter.NewFormatter(cfg.Output).FormatPlain(plain)
	if err != nil {
		return err
	}
	return ctx.writeOutput(c.Output, out)
}

func (c *DecodeCmd) readStruct(r io.Reader, cfg *config.Config, log *zap.Logger) (*models.Struct, error) {
	switch c.From {
	case "", config.FormatTagged:
		return codec.ReadStruct(r)
	case config.FormatProtoJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.NewInputError("failed to read input", err)
		}
		return protoconv.UnmarshalJSON(data,
			protoconv.WithDebug(cfg.Dev.Debug),
			protoconv.WithLogger(log),
		)
	default:
		return nil, errors.NewInputError(
			fmt.Sprintf("input format '%s' is not one of %s, %s", c.From, config.FormatTagged, config.FormatProtoJSON),
			errors.ErrUnknownFormat,
		)
	}
}

// Run prints the version
func (c *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "structconv version %s\n", Version)
	return err
}

func (ctx *Context) loadConfig(o config.Overrides) (*config.Config, error) {
	o.Debug = setFlag(ctx.Debug)
	return config.LoadConfigWithCLI(ctx.ConfigPath, o)
}

// openInput opens the input file, or stdin when no path is given
func (ctx *Context) openInput(path string) (io.ReadCloser, error) {
	if path != "" {
		f, err := parser.Open(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	if f, ok := ctx.Stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return nil, errors.NewInputError("failed to access stdin", err)
		}
		if (info.Mode() & os.ModeCharDevice) != 0 {
			// Terminal is interactive, nothing was piped
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}
	return io.NopCloser(ctx.Stdin), nil
}

// writeOutput writes the result to a file or stdout
func (ctx *Context) writeOutput(path, content string) error {
	content = strings.TrimSpace(content)
	if path != "" {
		if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(ctx.Stderr, "Output written to %s\n", path)
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, content); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// setFlag turns a boolean flag into an override. Unset (false) flags leave
// the config file value in place.
func setFlag(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}
