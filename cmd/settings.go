package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ThatOtherAndrew/acsim/internal/config"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the settings file path and the effective settings",
	Run:   printSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func printSettings(cmd *cobra.Command, args []string) {
	path := configPath
	if path == "" {
		p, err := config.GetSettingsPath()
		if err != nil {
			log.Fatal("Failed to get settings path:", err)
		}
		path = p
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		log.Fatal("Failed to marshal settings:", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Settings file:", path)
	fmt.Fprintln(out, string(data))
}
