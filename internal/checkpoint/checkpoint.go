// Package checkpoint persists the card sequence after each pipeline stage
// as a JSON document keyed by sheet id and stage name. A crash after any
// stage leaves recoverable, inspectable state on disk; a failed write is
// fatal for the run but never corrupts earlier checkpoints.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cardscan-cli/internal/model"
)

// Stage identifies one checkpointed pipeline phase.
type Stage string

const (
	StageExtracted Stage = "extracted"
	StageEnriched  Stage = "enriched"
	StageGraded    Stage = "graded"
)

// Store writes stage checkpoints to the data dir and final artifacts to
// the outputs dir.
type Store struct {
	dataDir    string
	outputsDir string
}

// New creates both directories if needed and returns a Store.
func New(dataDir, outputsDir string) (*Store, error) {
	for _, dir := range []string{dataDir, outputsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "checkpoint: create dir %s", dir)
		}
	}
	return &Store{dataDir: dataDir, outputsDir: outputsDir}, nil
}

// StagePath returns the checkpoint file path for a sheet and stage.
func (s *Store) StagePath(sheetID string, stage Stage) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s_%s.json", sheetID, stage))
}

// FinalPath returns the final artifact path for a sheet.
func (s *Store) FinalPath(sheetID string) string {
	return filepath.Join(s.outputsDir, fmt.Sprintf("%s_final.json", sheetID))
}

// WriteStage durably persists the card sequence for one completed stage.
func (s *Store) WriteStage(sheetID string, stage Stage, cards []model.CardRecord) (string, error) {
	path := s.StagePath(sheetID, stage)
	if err := writeJSON(path, cards); err != nil {
		return "", eris.Wrapf(err, "checkpoint: write stage %s for %s", stage, sheetID)
	}
	zap.L().Info("checkpoint: stage saved",
		zap.String("sheet_id", sheetID),
		zap.String("stage", string(stage)),
		zap.Int("cards", len(cards)),
		zap.String("path", path),
	)
	return path, nil
}

// ReadStage loads a previously checkpointed card sequence.
func (s *Store) ReadStage(sheetID string, stage Stage) ([]model.CardRecord, error) {
	data, err := os.ReadFile(s.StagePath(sheetID, stage))
	if err != nil {
		return nil, eris.Wrapf(err, "checkpoint: read stage %s for %s", stage, sheetID)
	}
	var cards []model.CardRecord
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, eris.Wrapf(err, "checkpoint: unmarshal stage %s for %s", stage, sheetID)
	}
	return cards, nil
}

// WriteFinal persists the final pipeline artifact for a sheet.
func (s *Store) WriteFinal(sheetID string, result *model.PipelineResult) (string, error) {
	path := s.FinalPath(sheetID)
	if err := writeJSON(path, result); err != nil {
		return "", eris.Wrapf(err, "checkpoint: write final artifact for %s", sheetID)
	}
	return path, nil
}

// ReadFinal loads a final pipeline artifact from an arbitrary path.
func ReadFinal(path string) (*model.PipelineResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "checkpoint: read final artifact %s", path)
	}
	var result model.PipelineResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, eris.Wrapf(err, "checkpoint: unmarshal final artifact %s", path)
	}
	return &result, nil
}

// writeJSON marshals v and replaces the target file via a temp-file rename,
// so readers never observe a half-written checkpoint.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrap(err, "create temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return eris.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return eris.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return eris.Wrap(err, "rename temp file")
	}
	return nil
}
