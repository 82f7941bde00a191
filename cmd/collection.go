package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cardscan-cli/internal/checkpoint"
	"github.com/sells-group/cardscan-cli/internal/collection"
	"github.com/sells-group/cardscan-cli/internal/model"
)

var (
	collectionFormat string
	collectionOut    string
)

var collectionCmd = &cobra.Command{
	Use:   "collection [glob]",
	Short: "Summarize processed sheets into a collection report",
	Long:  "Aggregates final sheet artifacts (default: <outputs_dir>/*_final.json) into collection totals, value estimates and frequency tables.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := filepath.Join(cfg.Paths.OutputsDir, "*_final.json")
		if len(args) == 1 {
			pattern = args[0]
		}

		paths, err := filepath.Glob(pattern)
		if err != nil {
			return eris.Wrapf(err, "bad glob %s", pattern)
		}
		if len(paths) == 0 {
			return eris.Errorf("no final artifacts match %s", pattern)
		}

		var results []model.PipelineResult
		for _, path := range paths {
			result, err := checkpoint.ReadFinal(path)
			if err != nil {
				zap.L().Warn("collection: skipping unreadable artifact",
					zap.String("path", path),
					zap.Error(err),
				)
				continue
			}
			results = append(results, *result)
		}
		if len(results) == 0 {
			return eris.Errorf("no readable artifacts match %s", pattern)
		}

		summary := collection.Aggregate(results)

		switch collectionFormat {
		case "table":
			fmt.Fprintln(os.Stdout, collection.RenderTable(summary))
			return nil
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		case "xlsx":
			out := collectionOut
			if out == "" {
				out = "collection.xlsx"
			}
			if err := collection.WriteXLSX(out, summary); err != nil {
				return err
			}
			zap.L().Info("collection report written", zap.String("path", out))
			return nil
		default:
			return eris.Errorf("unknown format %q (want table, json or xlsx)", collectionFormat)
		}
	},
}

func init() {
	collectionCmd.Flags().StringVar(&collectionFormat, "format", "table", "output format: table, json or xlsx")
	collectionCmd.Flags().StringVar(&collectionOut, "out", "", "output path for xlsx format")
	rootCmd.AddCommand(collectionCmd)
}
