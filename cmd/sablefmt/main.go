package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sablefmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sablefmt",
	Short: "Sable source formatter and style checker",
	Long:  `sablefmt formats Sable source files into the one canonical style and checks the documentation and layout rules.`,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show per file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color mode against the output terminal and
// configures the global color state.
func useColor(cmd *cobra.Command, out *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	var enabled bool
	switch mode {
	case "auto":
		enabled = isTerminal(out)
	case "on", "always":
		enabled = true
	case "off", "never":
		enabled = false
	default:
		return false, fmt.Errorf("invalid --color mode %q (auto|on|off)", mode)
	}
	color.NoColor = !enabled
	return enabled, nil
}
