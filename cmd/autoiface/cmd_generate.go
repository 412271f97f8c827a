package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toyz/autoiface/internal/cli"
	"github.com/toyz/autoiface/internal/parser"
)

func newGenerateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [packages...]",
		Short: "Generate Go interfaces and decorators for annotated types",
		Long: `Load the given Go package patterns and generate an interface, and
optionally a decorator, for every type annotated with //autoiface::interface.

Patterns follow the go tool:
  ./...              current directory and all subdirectories
  ./internal/...     internal and all its subdirectories
  ./pkg/store        a single package

Annotation options:
  -name=X                  interface name (default <Type>Interface)
  -pkg=path                package of the generated artifacts
  -includeInherited        include promoted methods of embedded types
  -createDecorator         also generate a forwarding decorator
  -decoratorName=X         decorator name (default <Type>Decorator)`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{parser.DefaultPattern}
			}

			s.diagnostics.Section("autoiface")
			if s.config.Verbose {
				s.diagnostics.Subsection("Configuration")
				s.diagnostics.List("Patterns: %s", strings.Join(args, ", "))
				s.diagnostics.List("File prefix: %s", s.config.Go.FilePrefix)
				s.diagnostics.List("Accessor: %s", s.config.Go.Accessor)
				if s.config.DryRun {
					s.diagnostics.List("Dry run: enabled")
				}
			}

			summary, err := s.generator().GenerateGo(cmd.Context(), args)
			if err != nil {
				return err
			}
			return finish(s, summary)
		},
	}
	addGenerationFlags(cmd)
	cmd.Flags().Bool("tests", false, "Also scan test files")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns of files to skip (repeatable)")
	return cmd
}

func addGenerationFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntP("jobs", "j", 0, "Subjects processed concurrently (default: number of CPUs)")
	f.Bool("dry-run", false, "Report what would be written without writing")
}

// finish prints the pass summary and fails the command when any subject or
// artifact failed
func finish(s *session, summary *cli.GenerationSummary) error {
	s.diagnostics.Summary("Generation complete", summary.Stats())
	if s.config.Verbose && len(summary.Files) > 0 {
		s.diagnostics.Subsection("Files")
		for _, file := range summary.Files {
			s.diagnostics.List("%s", file)
		}
	}
	if summary.Errors > 0 {
		return fmt.Errorf("generation finished with %d error(s)", summary.Errors)
	}
	return nil
}
