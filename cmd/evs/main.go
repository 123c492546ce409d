package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/metaphox/eventscript/ast"
	"github.com/metaphox/eventscript/internal/config"
	"github.com/metaphox/eventscript/internal/diagnostic"
	"github.com/metaphox/eventscript/lexer"
	"github.com/metaphox/eventscript/parser"
	"github.com/metaphox/eventscript/symbols"
)

var version = "0.1.0"

// errReported marks a failure whose diagnostic has already been written.
var errReported = errors.New("reported")

func main() {
	os.Exit(run())
}

func run() int {
	return execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// execute runs the command tree over args and returns the process exit code.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	rootCmd := newRootCmd(out, errOut)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(errOut, "evs: %v\n", err)
		}
		return 1
	}
	return 0
}

// app is the state shared by all subcommands once the configuration is known.
type app struct {
	// flags
	configPath string
	format     string
	color      string
	looseUnary bool
	verbose    bool

	cfg      config.Config
	logger   *slog.Logger
	reporter *diagnostic.Reporter
	out      io.Writer
	errOut   io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "evs",
		Short: "evs inspects eventscript source",
		Long: `evs runs the eventscript front end over a file or standard input
and prints the tokens, the syntax tree, the canonical source or the
declared symbols.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default: eventscript.toml or eventscript.yaml in the working directory)")
	flags.StringVar(&a.format, "format", "", "output format: text or yaml")
	flags.StringVar(&a.color, "color", "", "diagnostic colour: auto, always or never")
	flags.BoolVar(&a.looseUnary, "loose-unary", false, "parse unary operands at the lowest binding power")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug details to stderr")

	rootCmd.AddCommand(
		a.newTokensCmd(),
		a.newParseCmd(),
		a.newFmtCmd(),
		a.newCheckCmd(),
	)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the logger
// and reporter.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = a.color
	}
	if flags.Changed("loose-unary") {
		cfg.Parser.LooseUnary = a.looseUnary
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	handler := slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	a.logger = slog.New(handler).With("run_id", uuid.NewString())
	a.reporter = diagnostic.New(a.errOut, cfg.Output.Color)
	a.logger.Debug("configuration loaded",
		"path", cfg.Path,
		"format", cfg.Output.Format,
		"loose_unary", cfg.Parser.LooseUnary)
	return nil
}

// readInput returns the source named by args, or standard input when args is
// empty.
func (a *app) readInput(cmd *cobra.Command, args []string) (name, source string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return args[0], string(data), nil
}

// fail reports a front-end error against its source.
func (a *app) fail(name, source string, err error) error {
	a.logger.Debug("front end failed", "input", name, "error", err)
	if rerr := a.reporter.Report(name, source, err); rerr != nil {
		return rerr
	}
	return errReported
}

func (a *app) parserOptions() []parser.Option {
	return []parser.Option{parser.LooseUnary(a.cfg.Parser.LooseUnary)}
}

// parse scans and parses source, reporting any failure.
func (a *app) parse(name, source string) (*ast.Program, error) {
	start := time.Now()
	prog, err := parser.ParseString(source, a.parserOptions()...)
	if err != nil {
		return nil, a.fail(name, source, err)
	}
	a.logger.Debug("parsed",
		"input", name,
		"statements", len(prog.Statements),
		"elapsed", time.Since(start))
	return prog, nil
}

func (a *app) yamlOutput() bool { return a.cfg.Output.Format == "yaml" }

func (a *app) newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			tokens, err := lexer.Tokenize(source)
			if err != nil {
				return a.fail(name, source, err)
			}
			a.logger.Debug("scanned", "input", name, "tokens", len(tokens))

			if a.yamlOutput() {
				return ast.EncodeYAML(a.out, ast.TokensYAML(tokens))
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", tok.Pos(), tok, tok.BindingPower)
			}
			return tw.Flush()
		},
	}
}

func (a *app) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			prog, err := a.parse(name, source)
			if err != nil {
				return err
			}
			if a.yamlOutput() {
				return ast.EncodeYAML(a.out, ast.YAML(prog))
			}
			_, err = io.WriteString(a.out, prog.String())
			return err
		},
	}
}

func (a *app) newFmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print the canonical source",
		Long: `fmt reparses the input and prints it in canonical form: one statement
per line, four-space block indentation and explicit parentheses only
where the source had them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && len(args) == 0 {
				return errors.New("fmt: --write needs a file argument")
			}
			name, source, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			prog, err := a.parse(name, source)
			if err != nil {
				return err
			}
			formatted := ast.Format(prog)
			if !write {
				_, err = io.WriteString(a.out, formatted)
				return err
			}
			if formatted == source {
				return nil
			}
			info, err := os.Stat(name)
			if err != nil {
				return err
			}
			a.logger.Info("rewriting", "file", name)
			return os.WriteFile(name, []byte(formatted), info.Mode().Perm())
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}

// symbolRecord is the YAML shape of one checked declaration.
type symbolRecord struct {
	Name    string `yaml:"name"`
	Pos     string `yaml:"pos"`
	Depth   int    `yaml:"depth"`
	Const   bool   `yaml:"const,omitempty"`
	Mutable bool   `yaml:"mutable,omitempty"`
	Type    string `yaml:"type,omitempty"`
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and list the declared variables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			prog, err := a.parse(name, source)
			if err != nil {
				return err
			}
			table, err := symbols.Collect(prog)
			if err != nil {
				return a.fail(name, source, err)
			}
			vars := table.Variables()
			a.logger.Debug("collected", "input", name, "variables", len(vars))

			if a.yamlOutput() {
				records := make([]symbolRecord, 0, len(vars))
				for _, s := range vars {
					records = append(records, symbolRecord{
						Name:    s.Name,
						Pos:     s.Token.Pos(),
						Depth:   s.Depth,
						Const:   s.Const,
						Mutable: s.Mutable,
						Type:    s.Type,
					})
				}
				enc := yaml.NewEncoder(a.out)
				enc.SetIndent(2)
				if err := enc.Encode(records); err != nil {
					return err
				}
				return enc.Close()
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, s := range vars {
				typ := s.Type
				if typ == "" {
					typ = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\tdepth %d\n", s.Token.Pos(), declKeyword(s), s.Name, typ, s.Depth)
			}
			return tw.Flush()
		},
	}
}

func declKeyword(s symbols.Symbol) string {
	switch {
	case s.Const:
		return "const"
	case s.Mutable:
		return "let mut"
	default:
		return "let"
	}
}
