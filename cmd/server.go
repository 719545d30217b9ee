package cmd

import (
	"anganwadi/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Anganwadi HTTP server",
	Long:  `Start the Anganwadi backend HTTP server, serving the admin API and the public frontend assets.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
