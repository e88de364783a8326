package main

import (
	"fmt"
	"strings"

	"fraud-detector/internal/classifier"
	"fraud-detector/internal/textnorm"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify text from the command line without logging it",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg.Server.Debug)
		if err != nil {
			return err
		}
		defer logger.Sync()

		model, err := classifier.LoadOrTrain(cfg.Model.Path, logger)
		if err != nil {
			return fmt.Errorf("failed to load model: %w", err)
		}

		label, confidence := model.Predict(textnorm.Normalize(strings.Join(args, " ")))
		fmt.Fprintf(cmd.OutOrStdout(), "%s %.2f%%\n", label, confidence)
		return nil
	},
}
