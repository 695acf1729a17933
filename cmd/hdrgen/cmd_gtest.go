package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdrgen/internal/generator"
	"hdrgen/internal/scanner"
)

func newGtestCmd(a *app) *cobra.Command {
	var (
		output          string
		outDir          string
		noAccessControl bool
	)

	cmd := &cobra.Command{
		Use:   "gtest <header.h>...",
		Short: "Generate a gtest skeleton per header",
		Long: `Generate one test file per header with a fixture and one TEST_F case per
function. Class members are exercised through a testInstance built from the
class's first constructor.

By default only public members get test cases; --no-access-control includes
private and protected members too.

Directories are walked for .h files. -o names the output file and needs
exactly one header.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noAccessControl {
				a.cfg.AccessControl = false
			}

			s := scanner.NewScanner(a.fs, a.cfg.Test.Suffixes, a.cfg.Exclude)
			inputs, err := s.ScanPaths(args)
			if err != nil {
				return err
			}

			g := a.generator()
			var summaries []generator.Summary
			if output != "" {
				if len(inputs) != 1 {
					return fmt.Errorf("-o needs exactly one header, got %d", len(inputs))
				}
				summary, err := g.Test(cmd.Context(), generator.TestJob{Input: inputs[0], Output: output})
				if err != nil {
					return err
				}
				summaries = append(summaries, summary)
			} else {
				summaries, err = g.TestAll(cmd.Context(), inputs, outDir)
				if err != nil {
					return err
				}
			}

			printSummaries(cmd, summaries, "case(s)")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: test_<header>.cpp)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for generated files")
	cmd.Flags().BoolVar(&noAccessControl, "no-access-control", false, "generate cases for non-public members too")
	cmd.MarkFlagsMutuallyExclusive("output", "out-dir")

	return cmd
}

func printSummaries(cmd *cobra.Command, summaries []generator.Summary, unit string) {
	out := cmd.OutOrStdout()
	for _, s := range summaries {
		fmt.Fprintf(out, "input: %s, output: %v (%d %s)\n", s.Input, s.Outputs, s.Emitted, unit)
	}
}
