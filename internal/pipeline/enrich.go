package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/cardscan-cli/internal/model"
	"github.com/sells-group/cardscan-cli/internal/resilience"
	"github.com/sells-group/cardscan-cli/pkg/bbref"
	"github.com/sells-group/cardscan-cli/pkg/ebay"
)

const (
	marketValueSource = "ebay_sold_listings"
	playerStatsSource = "baseball_reference"

	defaultLookupTimeout = 30 * time.Second
)

// lookupTimeout bounds every external collaborator call so no single hung
// request can stall the pipeline.
func (p *Pipeline) lookupTimeout() time.Duration {
	if p.cfg.Pipeline.LookupTimeoutSecs > 0 {
		return time.Duration(p.cfg.Pipeline.LookupTimeoutSecs) * time.Second
	}
	return defaultLookupTimeout
}

// enrichCards looks up market value and career stats for every card that has
// a player name. Lookups run concurrently per card; a failed lookup leaves
// that card unenriched and never affects its neighbors.
func (p *Pipeline) enrichCards(ctx context.Context, cards []model.CardRecord) {
	concurrency := p.cfg.Pipeline.EnrichConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for i := range cards {
		card := &cards[i]
		g.Go(func() error {
			p.enrichCard(ctx, card)
			return nil
		})
	}
	_ = g.Wait()
}

func (p *Pipeline) enrichCard(ctx context.Context, card *model.CardRecord) {
	log := zap.L().With(zap.String("card", card.CardPosition))

	if card.PlayerName == "" {
		log.Debug("enrich: no player name, skipping lookups")
		return
	}
	log = log.With(zap.String("player", card.PlayerName))

	timeout := p.lookupTimeout()
	retryCfg := resilience.DefaultRetryConfig()

	var prices *ebay.Prices
	err := resilience.Do(ctx, retryCfg, func(ctx context.Context) error {
		lookupCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		result, lookupErr := p.ebay.SoldListings(lookupCtx, ebay.Query{
			PlayerName:   card.PlayerName,
			Year:         card.Year,
			Manufacturer: card.Manufacturer,
		})
		if lookupErr != nil {
			return lookupErr
		}
		prices = result
		return nil
	})
	switch {
	case err != nil:
		log.Warn("enrich: price lookup failed", zap.Error(err))
	case prices == nil:
		log.Debug("enrich: no sold listings found")
	default:
		card.AttachMarketValue(&model.MarketValue{
			AvgSoldPrice:  model.Round2(prices.Avg),
			MinSoldPrice:  model.Round2(prices.Min),
			MaxSoldPrice:  model.Round2(prices.Max),
			NumSalesFound: prices.NumSales,
			Source:        marketValueSource,
		})
	}

	var stats *bbref.CareerStats
	err = resilience.Do(ctx, retryCfg, func(ctx context.Context) error {
		lookupCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		result, lookupErr := p.bbref.CareerStats(lookupCtx, card.PlayerName)
		if lookupErr != nil {
			return lookupErr
		}
		stats = result
		return nil
	})
	switch {
	case err != nil:
		log.Warn("enrich: stats lookup failed", zap.Error(err))
	case stats == nil:
		log.Debug("enrich: player not found")
	default:
		card.AttachPlayerStats(&model.PlayerStats{
			CareerBattingAvg: stats.BattingAvg,
			CareerHomeRuns:   stats.HomeRuns,
			CareerRBI:        stats.RBI,
			Source:           playerStatsSource,
			RefURL:           stats.PlayerURL,
		})
	}
}
