package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"mini-library/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the single-user menu interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := setup()
		if err != nil {
			return err
		}
		console.New(mgr, os.Stdin, os.Stdout).Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
