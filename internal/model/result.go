package model

import "time"

// StageFlags records which optional stages were enabled for a run.
// Skipping a stage is an explicit choice, not a failure.
type StageFlags struct {
	EnrichmentEnabled bool `json:"enrichment_enabled"`
	GradingEnabled    bool `json:"grading_enabled"`
}

// Summary counts cards carrying each enrichment/grading section. It is
// always derived from the final card sequence, never from stage counters.
type Summary struct {
	TotalCards      int `json:"total_cards"`
	CardsWithPrices int `json:"cards_with_prices"`
	CardsWithStats  int `json:"cards_with_stats"`
	CardsWithGrades int `json:"cards_with_grades"`
}

// PipelineResult is the final artifact for one sheet.
type PipelineResult struct {
	Timestamp        time.Time         `json:"pipeline_timestamp"`
	SheetMetadata    map[string]string `json:"sheet_metadata"`
	ProcessingConfig StageFlags        `json:"processing_config"`
	Cards            []CardRecord      `json:"cards"`
	Summary          Summary           `json:"summary"`
}

// Summarize computes section-presence counts over a final card sequence.
func Summarize(cards []CardRecord) Summary {
	s := Summary{TotalCards: len(cards)}
	for i := range cards {
		if cards[i].HasMarketValue() {
			s.CardsWithPrices++
		}
		if cards[i].HasPlayerStats() {
			s.CardsWithStats++
		}
		if cards[i].HasGrade() {
			s.CardsWithGrades++
		}
	}
	return s
}

// RunStatus represents the current state of a sheet processing run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusExtracting RunStatus = "extracting"
	RunStatusEnriching  RunStatus = "enriching"
	RunStatusGrading    RunStatus = "grading"
	RunStatusComplete   RunStatus = "complete"
	RunStatusFailed     RunStatus = "failed"
)

// ScanRun tracks one sheet run in the run store.
type ScanRun struct {
	ID            string            `json:"id"`
	SheetID       string            `json:"sheet_id"`
	ImagePath     string            `json:"image_path"`
	SheetMetadata map[string]string `json:"sheet_metadata,omitempty"`
	Status        RunStatus         `json:"status"`
	Summary       *Summary          `json:"summary,omitempty"`
	OutputPath    string            `json:"output_path,omitempty"`
	Error         string            `json:"error,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
