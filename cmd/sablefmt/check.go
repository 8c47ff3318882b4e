package main

import (
	"os"

	"github.com/spf13/cobra"

	"sablefmt/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Check formatting and style rules without writing",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "text", "output format (text|json)")
	checkCmd.Flags().Bool("strict", false, "treat warnings as errors")
	checkCmd.Flags().Bool("no-cache", false, "bypass the check-result cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	outputFormat, _ := cmd.Flags().GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	maxDiag, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	fileSet, results, err := runPipeline(cmd, args, driver.ModeCheck, noCache, maxDiag)
	if err != nil {
		return err
	}

	var report runReport
	if outputFormat == "json" {
		if err := renderJSON(fileSet, results, &report); err != nil {
			return err
		}
	} else {
		renderText(fileSet, results, renderOpts{
			check:   true,
			quiet:   quiet,
			colored: colored,
		}, &report)
	}

	return report.exitError(true, strict)
}
