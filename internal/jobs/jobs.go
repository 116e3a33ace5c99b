// Package jobs runs the scheduled background work: warming the price cache
// for every instrument currently held so interactive requests stay fast.
package jobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/traderisk/trade-risk-backend/internal/futures"
	"github.com/traderisk/trade-risk-backend/internal/instrument"
	"github.com/traderisk/trade-risk-backend/internal/marketdata"
	"github.com/traderisk/trade-risk-backend/internal/repository"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron      *cron.Cron
	tradeRepo *repository.TradeRepository
	prices    *marketdata.Service
}

// NewScheduler creates a Scheduler with a price warm-up job on the given
// cron schedule.
func NewScheduler(schedule string, tradeRepo *repository.TradeRepository, prices *marketdata.Service) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		tradeRepo: tradeRepo,
		prices:    prices,
	}

	if _, err := s.cron.AddFunc(schedule, s.WarmPrices); err != nil {
		return nil, fmt.Errorf("invalid price warm-up schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Start begins running scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// WarmPrices resolves every distinct held instrument and fetches its current
// price, populating the cache. Failures are logged per symbol and never stop
// the sweep.
func (s *Scheduler) WarmPrices() {
	names, err := s.tradeRepo.DistinctStockNames()
	if err != nil {
		log.Printf("price warm-up: failed to list held instruments: %v", err)
		return
	}

	warmed := 0
	for _, name := range names {
		inst := instrument.Parse(name)
		if inst.Symbol == "" {
			continue
		}

		ticker, ok := "", false
		if !inst.Expiry.IsZero() {
			ticker, ok = futures.ContractTicker(inst.Symbol, inst.Expiry)
		}
		if !ok {
			ticker, ok = s.prices.ResolveTicker(inst.Symbol)
		}
		if !ok {
			continue
		}

		if _, err := s.prices.CurrentPrice(ticker); err != nil {
			log.Printf("price warm-up: %s: %v", ticker, err)
			continue
		}
		warmed++
	}

	log.Printf("price warm-up: refreshed %d of %d instruments", warmed, len(names))
}
