package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/autoiface/internal/cli"
)

func newCleanCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [packages...]",
		Short: "Remove generated Go files",
		Long: `Remove files named with the generated prefix that start with the
generated code header. Patterns ending in /... are searched recursively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}

			s.diagnostics.StartProgress("Cleaning generated files")
			removed, err := cli.NewCleaner(s.dir, s.config).CleanGeneratedFiles(args)
			if err != nil {
				s.diagnostics.EndProgress(false, "")
				return err
			}
			s.diagnostics.EndProgress(true, "")

			verb := "Removed"
			if s.config.DryRun {
				verb = "Would remove"
			}
			for _, file := range removed {
				s.diagnostics.Verbose("%s %s", verb, file)
			}
			s.diagnostics.Success("%s %d generated file(s)", verb, len(removed))
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "List files without removing them")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns of files to keep (repeatable)")
	return cmd
}
