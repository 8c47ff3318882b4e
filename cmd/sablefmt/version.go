package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sablefmt/internal/version"
)

var versionShowFull bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sablefmt build information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if _, err := useColor(cmd, os.Stdout); err != nil {
		return err
	}

	switch format {
	case "pretty":
		fmt.Printf("sablefmt %s\n", version.Version)
		if versionShowFull {
			if version.GitCommit != "" {
				fmt.Printf("commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Printf("built:  %s\n", version.BuildDate)
			}
		}
		return nil
	case "json":
		payload := struct {
			Tool      string `json:"tool"`
			Version   string `json:"version"`
			GitCommit string `json:"git_commit,omitempty"`
			BuildDate string `json:"build_date,omitempty"`
		}{
			Tool:      "sablefmt",
			Version:   version.Version,
			GitCommit: version.GitCommit,
			BuildDate: version.BuildDate,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("version: unsupported format %q", format)
	}
}
