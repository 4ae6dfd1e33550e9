package cmd

import (
	"github.com/spf13/cobra"

	"mini-library/web"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the multi-user web interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, mgr, err := setup()
		if err != nil {
			return err
		}
		e := web.BuildServer(mgr, cfg.LogLevel)
		return e.Start(cfg.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(webCmd)
}
