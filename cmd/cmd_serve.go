package main

import (
	"github.com/itsatony/stationhub/internal/server"
	"github.com/spf13/cobra"
	nuts "github.com/vaudience/go-nuts"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Station Hub API server",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(nuts.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Clear console and draw logo
	ClearConsole()
	DrawLogo()
	nuts.L.Infof("[Main] Starting Station Hub Server v%s", nuts.GetVersion())

	return server.New(cfg).Start()
}
