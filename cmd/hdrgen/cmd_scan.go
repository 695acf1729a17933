package main

import (
	"github.com/spf13/cobra"

	"hdrgen/internal/analyzer"
	"hdrgen/internal/parser"
	"hdrgen/internal/reporter"
	"hdrgen/internal/scanner"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		format          string
		noAccessControl bool
	)

	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Report what the generators would see without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noAccessControl {
				a.cfg.AccessControl = false
			}

			r, err := reporter.NewReporter(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			s := scanner.NewScanner(a.fs, a.cfg.Stub.Suffixes, a.cfg.Exclude)
			inputs, err := s.ScanPaths(args)
			if err != nil {
				return err
			}

			registry := parser.NewRegistry()
			if err := a.generator().Scan(cmd.Context(), inputs, registry); err != nil {
				return err
			}

			findings := analyzer.AnalyzeRegistry(registry)
			return r.Report(reporter.NewReport(registry, findings))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", reporter.FormatConsole, "report format (console, json, yaml)")
	cmd.Flags().BoolVar(&noAccessControl, "no-access-control", false, "mark non-public members testable")

	return cmd
}
