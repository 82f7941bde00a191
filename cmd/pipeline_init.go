package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cardscan-cli/internal/checkpoint"
	"github.com/sells-group/cardscan-cli/internal/ocr"
	"github.com/sells-group/cardscan-cli/internal/pipeline"
	"github.com/sells-group/cardscan-cli/internal/store"
	anthropicpkg "github.com/sells-group/cardscan-cli/pkg/anthropic"
	"github.com/sells-group/cardscan-cli/pkg/bbref"
	"github.com/sells-group/cardscan-cli/pkg/ebay"
)

// pipelineEnv bundles the pipeline with the resources it owns.
type pipelineEnv struct {
	Pipeline *pipeline.Pipeline
	Store    store.Store
	Ckpt     *checkpoint.Store
}

func (e *pipelineEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "cardscan.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	ckpt, err := checkpoint.New(cfg.Paths.DataDir, cfg.Paths.OutputsDir)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	textExtractor, err := ocr.NewExtractor(cfg.OCR)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	ebayClient := ebay.NewClient(
		ebay.WithBaseURL(cfg.Ebay.BaseURL),
		ebay.WithUserAgent(cfg.Ebay.UserAgent),
		ebay.WithRateLimit(cfg.Ebay.RateLimitRPS),
	)
	bbrefClient := bbref.NewClient(
		bbref.WithBaseURL(cfg.Bbref.BaseURL),
		bbref.WithUserAgent(cfg.Bbref.UserAgent),
		bbref.WithRateLimit(cfg.Bbref.RateLimitRPS),
	)

	// Descriptions are optional; without an API key grading still runs.
	var describer anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		describer = anthropicpkg.NewClient(cfg.Anthropic.Key)
	}

	p := pipeline.New(cfg, st, ckpt, textExtractor, ebayClient, bbrefClient, describer)
	return &pipelineEnv{Pipeline: p, Store: st, Ckpt: ckpt}, nil
}
