package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/toyz/autoiface/internal/cli"
	"github.com/toyz/autoiface/internal/utils"
)

type rootFlags struct {
	configPath string
	dir        string
	verbose    bool
	quiet      bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "autoiface",
		Short: "Generate interfaces and decorators from annotated types",
		Long: `autoiface derives an interface from the public instance methods of each
annotated type, optionally including inherited and embedded methods, and can
generate a forwarding decorator for it.

Go types are annotated with a //autoiface::interface comment. Descriptor
files describe Java-like type hierarchies and are rendered as Java sources.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.Version = version

	f := root.PersistentFlags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Config file (default: ./"+cli.ConfigFileName+" when present)")
	f.StringVarP(&flags.dir, "dir", "C", "", "Working directory (default: current directory)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Only show errors")
	f.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newGenerateCmd(flags))
	root.AddCommand(newModelCmd(flags))
	root.AddCommand(newCleanCmd(flags))
	return root
}

// session is the resolved configuration and output for one command run
type session struct {
	dir         string
	config      *cli.Config
	diagnostics *utils.DiagnosticSystem
	reporter    *cli.DiagnosticReporter
}

func (f *rootFlags) open(cmd *cobra.Command) (*session, error) {
	dir := f.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	config, err := cli.LoadConfig(dir, f.configPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	diagnostics := utils.NewDiagnosticSystem(config.DiagnosticLevel())
	diagnostics.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	reporter := cli.NewDiagnosticReporter(cmd.ErrOrStderr(), config.Verbose)
	if f.noColor {
		diagnostics.SetColors(false)
		reporter.SetColors(false)
	}

	return &session{dir: dir, config: config, diagnostics: diagnostics, reporter: reporter}, nil
}

func (s *session) generator() *cli.Generator {
	return cli.NewGenerator(s.config, s.dir, s.diagnostics, s.reporter)
}
