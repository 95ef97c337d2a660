package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version will be set by build flags from cmd/adfix/main.go
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("adfix version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version string (called from main.go)
func SetVersion(v string) {
	version = v
}
