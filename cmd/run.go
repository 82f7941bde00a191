package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cardscan-cli/internal/model"
	"github.com/sells-group/cardscan-cli/internal/pipeline"
)

var (
	runImage        string
	runSheetID      string
	runMetadataPath string
	runNoEnrichment bool
	runNoGrading    bool
	runDataDir      string
	runOutputsDir   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a single scanned card sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if runDataDir != "" {
			cfg.Paths.DataDir = runDataDir
		}
		if runOutputsDir != "" {
			cfg.Paths.OutputsDir = runOutputsDir
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		metadata, err := loadSheetMetadata(runMetadataPath)
		if err != nil {
			return err
		}

		input := pipeline.SheetInput{
			SheetID:   sheetIDOrDefault(runSheetID, runImage),
			ImagePath: runImage,
			Metadata:  metadata,
		}
		flags := model.StageFlags{
			EnrichmentEnabled: !runNoEnrichment,
			GradingEnabled:    !runNoGrading,
		}

		result, err := env.Pipeline.Run(ctx, input, flags)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("sheet processed",
			zap.String("sheet", input.SheetID),
			zap.Int("cards", result.Summary.TotalCards),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// sheetIDOrDefault falls back to the image file name without extension.
func sheetIDOrDefault(sheetID, imagePath string) string {
	if sheetID != "" {
		return sheetID
	}
	base := filepath.Base(imagePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loadSheetMetadata reads an optional YAML file of string key/value pairs
// merged into every card record on the sheet.
func loadSheetMetadata(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read metadata file %s", path)
	}
	metadata := map[string]string{}
	if err := yaml.Unmarshal(data, &metadata); err != nil {
		return nil, eris.Wrapf(err, "parse metadata file %s", path)
	}
	return metadata, nil
}

func init() {
	runCmd.Flags().StringVar(&runImage, "image", "", "path to the scanned sheet image (required)")
	runCmd.Flags().StringVar(&runSheetID, "sheet-id", "", "sheet identifier (default: image file name)")
	runCmd.Flags().StringVar(&runMetadataPath, "metadata", "", "YAML file of sheet metadata merged into every card")
	runCmd.Flags().BoolVar(&runNoEnrichment, "no-enrichment", false, "skip market value and career stat lookups")
	runCmd.Flags().BoolVar(&runNoGrading, "no-grading", false, "skip condition grading and descriptions")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "", "checkpoint directory (default from config)")
	runCmd.Flags().StringVar(&runOutputsDir, "outputs-dir", "", "final artifact directory (default from config)")
	_ = runCmd.MarkFlagRequired("image")
	rootCmd.AddCommand(runCmd)
}
