package main

import (
	"fraud-detector/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "fraud-detector",
	Short: "Email fraud scanner and phishing training game",
	Long:  "fraud-detector classifies email text as FRAUD or SAFE, logs every scan and runs a phishing training quiz.",
	RunE:  runServe,
	// Errors are logged by the commands themselves.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs/config.yml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(trainCmd)
}

// loadConfig reads the config named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.LoadConfig(path)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
