package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/cplx/pkg/core/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		out := cmd.OutOrStdout()
		if versionJSON {
			data, _ := json.MarshalIndent(info, "", "  ")
			fmt.Fprintln(out, string(data))
			return
		}
		fmt.Fprintf(out, "cplx v%s\n", info.Version)
		fmt.Fprintf(out, "  Kernel:     %s\n", info.Kernel)
		fmt.Fprintf(out, "  Protocol:   %s\n", info.Protocol)
		if info.Commit != "" {
			fmt.Fprintf(out, "  Git Commit: %s\n", info.Commit)
		}
		if info.BuildDate != "" {
			fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		}
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
}
