package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cardscan-cli/internal/checkpoint"
	"github.com/sells-group/cardscan-cli/internal/config"
	"github.com/sells-group/cardscan-cli/internal/extract"
	"github.com/sells-group/cardscan-cli/internal/imaging"
	"github.com/sells-group/cardscan-cli/internal/model"
	"github.com/sells-group/cardscan-cli/internal/ocr"
	"github.com/sells-group/cardscan-cli/internal/store"
	"github.com/sells-group/cardscan-cli/pkg/anthropic"
	"github.com/sells-group/cardscan-cli/pkg/bbref"
	"github.com/sells-group/cardscan-cli/pkg/ebay"
)

// SheetInput identifies one scan sheet to process.
type SheetInput struct {
	SheetID   string
	ImagePath string
	Metadata  map[string]string
}

// Pipeline orchestrates extraction, enrichment and grading for scan sheets.
type Pipeline struct {
	cfg       *config.Config
	runs      store.Store
	ckpt      *checkpoint.Store
	ocr       ocr.Extractor
	ebay      ebay.Client
	bbref     bbref.Client
	describer anthropic.Client
}

// New creates a Pipeline. The describer may be nil, in which case grading
// runs without AI descriptions.
func New(
	cfg *config.Config,
	runs store.Store,
	ckpt *checkpoint.Store,
	textExtractor ocr.Extractor,
	ebayClient ebay.Client,
	bbrefClient bbref.Client,
	describer anthropic.Client,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		runs:      runs,
		ckpt:      ckpt,
		ocr:       textExtractor,
		ebay:      ebayClient,
		bbref:     bbrefClient,
		describer: describer,
	}
}

// Run processes a single sheet through all enabled stages, writing a
// checkpoint after each stage and the final artifact at the end.
func (p *Pipeline) Run(ctx context.Context, input SheetInput, flags model.StageFlags) (*model.PipelineResult, error) {
	log := zap.L().With(zap.String("sheet", input.SheetID), zap.String("image", input.ImagePath))
	log.Info("pipeline: starting sheet")

	run, err := p.runs.CreateRun(ctx, input.SheetID, input.ImagePath, input.Metadata)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}

	setStatus := func(status model.RunStatus) {
		if statusErr := p.runs.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("pipeline: failed to update status", zap.Error(statusErr))
		}
	}
	fail := func(stageErr error) (*model.PipelineResult, error) {
		if failErr := p.runs.FailRun(ctx, run.ID, stageErr.Error()); failErr != nil {
			log.Warn("pipeline: failed to record failure", zap.Error(failErr))
		}
		return nil, stageErr
	}

	// Stage 1: extraction. An unreadable sheet is fatal; a noisy cell is not.
	setStatus(model.RunStatusExtracting)
	cards, err := p.extractCards(ctx, input)
	if err != nil {
		return fail(eris.Wrap(err, "pipeline: extraction"))
	}
	if _, err := p.ckpt.WriteStage(input.SheetID, checkpoint.StageExtracted, cards); err != nil {
		return fail(eris.Wrap(err, "pipeline: extracted checkpoint"))
	}
	log.Info("pipeline: extraction complete", zap.Int("cards", len(cards)))

	// Stage 2: enrichment.
	if flags.EnrichmentEnabled {
		setStatus(model.RunStatusEnriching)
		p.enrichCards(ctx, cards)
		if _, err := p.ckpt.WriteStage(input.SheetID, checkpoint.StageEnriched, cards); err != nil {
			return fail(eris.Wrap(err, "pipeline: enriched checkpoint"))
		}
	} else {
		log.Info("pipeline: enrichment skipped")
	}

	// Stage 3: grading.
	if flags.GradingEnabled {
		setStatus(model.RunStatusGrading)
		p.gradeCards(ctx, cards)
		if _, err := p.ckpt.WriteStage(input.SheetID, checkpoint.StageGraded, cards); err != nil {
			return fail(eris.Wrap(err, "pipeline: graded checkpoint"))
		}
	} else {
		log.Info("pipeline: grading skipped")
	}

	result := &model.PipelineResult{
		Timestamp:        time.Now().UTC(),
		SheetMetadata:    input.Metadata,
		ProcessingConfig: flags,
		Cards:            cards,
		Summary:          model.Summarize(cards),
	}

	outputPath, err := p.ckpt.WriteFinal(input.SheetID, result)
	if err != nil {
		return fail(eris.Wrap(err, "pipeline: final artifact"))
	}
	if err := p.runs.CompleteRun(ctx, run.ID, &result.Summary, outputPath); err != nil {
		log.Warn("pipeline: failed to record completion", zap.Error(err))
	}

	log.Info("pipeline: sheet complete",
		zap.Int("cards", result.Summary.TotalCards),
		zap.Int("with_prices", result.Summary.CardsWithPrices),
		zap.Int("with_stats", result.Summary.CardsWithStats),
		zap.Int("with_grades", result.Summary.CardsWithGrades),
		zap.String("output", outputPath),
	)
	return result, nil
}

// extractCards loads the sheet, splits it into grid cells and OCRs each cell.
// A cell whose OCR fails yields a card with empty raw text so positions stay
// stable across the sheet.
func (p *Pipeline) extractCards(ctx context.Context, input SheetInput) ([]model.CardRecord, error) {
	log := zap.L().With(zap.String("sheet", input.SheetID))

	img, err := imaging.Load(input.ImagePath)
	if err != nil {
		return nil, err
	}

	gridSize := p.cfg.Imaging.GridSize
	if gridSize <= 0 {
		gridSize = 3
	}
	threshold := uint8(p.cfg.Imaging.EnhanceThreshold)
	if p.cfg.Imaging.EnhanceThreshold <= 0 || p.cfg.Imaging.EnhanceThreshold > 255 {
		threshold = imaging.DefaultThreshold
	}

	cells := imaging.SplitGrid(img, gridSize)
	if len(cells) == 0 {
		return nil, eris.Errorf("image %s is smaller than a %dx%d grid", input.ImagePath, gridSize, gridSize)
	}

	cards := make([]model.CardRecord, 0, len(cells))
	for i, cell := range cells {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "extraction canceled")
		}

		if factor := p.cfg.Imaging.ScaleFactor; factor > 0 && factor != 1 {
			cell = imaging.Scale(cell, factor)
		}
		enhanced := imaging.Enhance(cell, threshold)
		text, ocrErr := p.extractCellText(ctx, enhanced)
		if ocrErr != nil {
			log.Warn("pipeline: ocr failed for cell", zap.Int("cell", i), zap.Error(ocrErr))
			text = ""
		}
		cards = append(cards, extract.Extract(text, i, input.Metadata))
	}
	return cards, nil
}

func (p *Pipeline) extractCellText(ctx context.Context, img image.Image) (string, error) {
	ocrCtx, cancel := context.WithTimeout(ctx, p.lookupTimeout())
	defer cancel()
	return p.ocr.ExtractText(ocrCtx, img)
}
