// Package pipeline orchestrates one run: fetch both sources concurrently,
// extract, assemble, diff against the prior snapshot, persist, and return
// the output document.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/omidrezab/parsfx/internal/config"
	"github.com/omidrezab/parsfx/internal/extract"
	"github.com/omidrezab/parsfx/internal/reconcile"
	"github.com/omidrezab/parsfx/internal/snapshot"
	"github.com/omidrezab/parsfx/internal/source"
	"github.com/omidrezab/parsfx/pkg/models"
)

// Pipeline wires the sources, extractor, store, and reconciliation for one run.
type Pipeline struct {
	market    *source.Market
	rateTable *source.RateTable
	extractor *extract.Extractor
	store     *snapshot.Store
	codes     []models.Code
	log       *logrus.Logger
}

// New builds a pipeline from configuration.
func New(cfg *config.Config, log *logrus.Logger) *Pipeline {
	codes := cfg.Codes()
	client := source.NewHTTPClient(time.Duration(cfg.HTTP.TimeoutSec) * time.Second)

	return &Pipeline{
		market:    source.NewMarket(cfg.Market.URL, cfg.Market.APIKey, codes, client),
		rateTable: source.NewRateTable(cfg.RateTable.URL, client),
		extractor: extract.New(codes),
		store:     snapshot.NewStore(cfg.Snapshot.Path),
		codes:     codes,
		log:       log,
	}
}

// Run executes the pipeline once and returns the output document. Both
// fetches run concurrently and both must succeed; failure of either aborts
// the run before anything is written, leaving the previous snapshot file
// untouched. Everything downstream of the join degrades instead of failing:
// missing currencies, unusable table rows, and an absent or corrupt prior
// snapshot all surface as missing values or Indeterminate indicators.
func (p *Pipeline) Run(ctx context.Context) (models.Snapshot, error) {
	var (
		quotes map[models.Code]models.Quote
		html   string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := p.market.FetchQuotes(gctx)
		if err != nil {
			return fmt.Errorf("%s: %w", p.market.Name(), err)
		}
		quotes = q
		return nil
	})
	g.Go(func() error {
		h, err := p.rateTable.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("%s: %w", p.rateTable.Name(), err)
		}
		html = h
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rates, err := p.extractor.Parse(html)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		p.log.Warn("rate table yielded no recognized rows")
	}
	if len(quotes) == 0 {
		p.log.Warn("market listing contained no tracked currencies")
	}

	previous, ok := p.store.Load()
	if !ok {
		p.log.WithField("path", p.store.Path()).
			Warn("previous snapshot unavailable, treating as empty")
	}

	current := reconcile.Assemble(p.codes, quotes, rates)
	reconcile.Diff(current, previous)

	if err := p.store.Save(current); err != nil {
		return nil, fmt.Errorf("persist snapshot: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"currencies": len(current),
		"path":       p.store.Path(),
	}).Info("snapshot written")

	return current, nil
}
