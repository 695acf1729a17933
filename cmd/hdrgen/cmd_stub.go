package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdrgen/internal/generator"
	"hdrgen/internal/scanner"
)

func newStubCmd(a *app) *cobra.Command {
	var (
		output string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "stub <header>...",
		Short: "Generate stub declarations and empty definitions per header",
		Long: `Generate a stub header and source per header. Every function, public or
not, gets a declaration and an empty body that discards its parameters.
Member functions take the object as a leading void* obj.

-o names the output base: -o fake_widget writes fake_widget.h and
fake_widget.cpp. It needs exactly one header.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scanner.NewScanner(a.fs, a.cfg.Stub.Suffixes, a.cfg.Exclude)
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
				header, source := generator.StubOutputPaths(inputs[0], "", "", output)
				summary, err := g.Stub(cmd.Context(), generator.StubJob{Input: inputs[0], Header: header, Source: source})
				if err != nil {
					return err
				}
				summaries = append(summaries, summary)
			} else {
				summaries, err = g.StubAll(cmd.Context(), inputs, outDir)
				if err != nil {
					return err
				}
			}

			printSummaries(cmd, summaries, "stub(s)")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base name (default: unittest_stub-<header>)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for generated files")
	cmd.MarkFlagsMutuallyExclusive("output", "out-dir")

	return cmd
}
