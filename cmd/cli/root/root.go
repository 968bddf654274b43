package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the top-level placetrack command.
var RootCmd = &cobra.Command{
	Use:   "placetrack",
	Short: "Placetrack CLI",
	Long:  "Command line interface for the placetrack expense-and-usage ledger API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command for subcommand registration.
func GetRoot() *cobra.Command {
	return RootCmd
}
