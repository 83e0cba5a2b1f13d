package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/jsonsql/internal/config"
	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/register"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the jsonsql CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jsonsql",
		Short: "Typed JSON access for SQL engines",
		Long: `jsonsql evaluates JSON accessor functions over text documents, either
in its in-memory engine or inside SQLite, and shows how casts and
operators are rewritten into typed accessors.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			level := cfg.Level()
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (.yaml, .yml or .cue)")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewFunctionsCommand(opts))

	return cmd
}

// LoadConfig returns the configured settings, or the defaults when no
// config file was given.
func (o *RootOptions) LoadConfig() (config.Config, error) {
	if o.ConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

// newSession builds an engine session with every function, operator and
// rule installed under cfg.
func newSession(cfg config.Config) (*engine.Session, register.Options, error) {
	opts, err := cfg.RegisterOptions()
	if err != nil {
		return nil, register.Options{}, WrapExitError(ExitCommandError, "invalid config", err)
	}
	s := engine.NewSession(engine.WithIntPolicy(opts.Function.IntPolicy))
	if err := register.RegisterAll(s, opts); err != nil {
		return nil, register.Options{}, err
	}
	return s, opts, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
