package main

import (
	"github.com/spf13/cobra"
)

func newModelCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model <descriptor.yaml...>",
		Short: "Generate Java interfaces and decorators from descriptor files",
		Long: `Load one or more descriptor files describing a type hierarchy and write a
Java interface, and optionally a default-method decorator, for every type with
an autoInterface block. References may cross files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}

			s.diagnostics.Section("autoiface")
			if s.config.Verbose {
				s.diagnostics.Subsection("Configuration")
				s.diagnostics.List("Output: %s", s.config.Java.Out)
				s.diagnostics.List("Accessor: %s", s.config.Java.Accessor)
			}

			summary, err := s.generator().GenerateModel(cmd.Context(), args)
			if err != nil {
				return err
			}
			return finish(s, summary)
		},
	}
	addGenerationFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Output directory for Java sources (default: generated)")
	return cmd
}
