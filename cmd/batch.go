package main

import (
	"encoding/csv"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cardscan-cli/internal/model"
	"github.com/sells-group/cardscan-cli/internal/pipeline"
)

var (
	batchManifest     string
	batchNoEnrichment bool
	batchNoGrading    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process a manifest of scanned sheets",
	Long:  "Reads a CSV manifest with an image_path column (plus optional sheet_id and metadata columns) and processes each sheet in order. A failed sheet is logged and skipped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		inputs, err := readBatchManifest(batchManifest)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			return eris.Errorf("manifest %s has no rows", batchManifest)
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		flags := model.StageFlags{
			EnrichmentEnabled: !batchNoEnrichment,
			GradingEnabled:    !batchNoGrading,
		}

		// Sheets run one at a time; card-level concurrency lives inside the
		// enrichment stage.
		var failed int
		for _, input := range inputs {
			if ctx.Err() != nil {
				return eris.Wrap(ctx.Err(), "batch interrupted")
			}
			if _, err := env.Pipeline.Run(ctx, input, flags); err != nil {
				failed++
				zap.L().Error("batch: sheet failed",
					zap.String("sheet", input.SheetID),
					zap.Error(err),
				)
			}
		}

		zap.L().Info("batch complete",
			zap.Int("sheets", len(inputs)),
			zap.Int("failed", failed),
		)
		return nil
	},
}

// readBatchManifest parses a CSV manifest. The header names the columns:
// image_path is required, sheet_id optional, and every other column is
// carried as sheet metadata.
func readBatchManifest(path string) ([]pipeline.SheetInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open manifest %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "read manifest header %s", path)
	}

	imageCol, sheetCol := -1, -1
	for i, name := range header {
		switch name {
		case "image_path":
			imageCol = i
		case "sheet_id":
			sheetCol = i
		}
	}
	if imageCol < 0 {
		return nil, eris.Errorf("manifest %s is missing the image_path column", path)
	}

	var inputs []pipeline.SheetInput
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "read manifest row %s", path)
		}

		input := pipeline.SheetInput{ImagePath: row[imageCol]}
		if sheetCol >= 0 {
			input.SheetID = row[sheetCol]
		}
		input.SheetID = sheetIDOrDefault(input.SheetID, input.ImagePath)

		for i, value := range row {
			if i == imageCol || i == sheetCol || value == "" {
				continue
			}
			if input.Metadata == nil {
				input.Metadata = map[string]string{}
			}
			input.Metadata[header[i]] = value
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchManifest, "manifest", "", "CSV manifest of sheets to process (required)")
	batchCmd.Flags().BoolVar(&batchNoEnrichment, "no-enrichment", false, "skip market value and career stat lookups")
	batchCmd.Flags().BoolVar(&batchNoGrading, "no-grading", false, "skip condition grading and descriptions")
	_ = batchCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(batchCmd)
}
