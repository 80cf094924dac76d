// FilePath: cmd/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	tm "github.com/buger/goterm"
	"github.com/itsatony/stationhub/internal/config"
	"github.com/spf13/cobra"
	nuts "github.com/vaudience/go-nuts"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "stationhub",
	Short: "Station Hub - monitoring station asset management",
	Long: `Station Hub tracks monitoring stations, their sensors, routers,
technical details, breakdowns and interventions with a full change history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		nuts.SetLoglevel(strings.ToUpper(cfg.Monitoring.LogLevel), "stationhub", false, "")
		return nil
	},
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Initialize version info
	nuts.InitVersion()

	if err := rootCmd.Execute(); err != nil {
		nuts.L.Errorf("[Main] %v", err)
		os.Exit(1)
	}
}

// ClearConsole clears the console screen.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"   _____ __        __  _             __  __      __  ",
		"  / ___// /_____ _/ /_(_)___  ____  / / / /_  __/ /_ ",
		"  \\__ \\/ __/ __ `/ __/ / __ \\/ __ \\/ /_/ / / / / __ \\",
		" ___/ / /_/ /_/ / /_/ / /_/ / / / / __  / /_/ / /_/ /",
		"/____/\\__/\\__,_/\\__/_/\\____/_/ /_/_/ /_/\\__,_/_.___/ ",
		"......................................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
