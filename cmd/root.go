package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	modelPath  string
	windowed   bool
)

var rootCmd = &cobra.Command{
	Use:   "acsim",
	Short: "Interactive 3D air conditioner simulator",
	Long: `acsim opens a window with a wall-mounted air conditioner. Click the lamp
or press L to toggle power, use the arrow button or the Up/Down keys to set
the temperature, and empty the condensate bowl before it locks the unit.`,
	Run: Run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.config/acsim/settings.json)")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "OBJ mesh tried before the configured model paths")
	rootCmd.PersistentFlags().BoolVar(&windowed, "windowed", false, "open a window instead of going fullscreen")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
