package main

import (
	"fmt"

	"fraud-detector/internal/classifier"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Retrain the model and overwrite the stored artifact",
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

		model, err := classifier.Train(classifier.TrainingSet)
		if err != nil {
			return fmt.Errorf("failed to train model: %w", err)
		}
		if err := model.Save(cfg.Model.Path); err != nil {
			return err
		}

		logger.Info("Model written",
			zap.String("path", cfg.Model.Path),
			zap.Int("features", model.Vectorizer.Size()))
		fmt.Fprintf(cmd.OutOrStdout(), "model written to %s\n", cfg.Model.Path)
		return nil
	},
}
