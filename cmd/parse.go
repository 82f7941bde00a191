package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cardscan-cli/internal/extract"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Run the field extractor over raw card text",
	Long:  "Debug helper: reads OCR text from a file (or stdin) and prints the extracted card record, skipping imaging and OCR entirely.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return eris.Wrapf(err, "read %s", args[0])
			}
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return eris.Wrap(err, "read stdin")
			}
		}

		record := extract.Extract(string(data), 0, nil)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
