// Package engine drives the poll cycle: on a fixed interval it fetches fresh
// events for every watched log group concurrently, merges them against the
// per-group cursors, and hands new events to the printer.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/penwyp/cloudwatcher/internal/core/merge"
	"github.com/penwyp/cloudwatcher/internal/core/model"
	"github.com/penwyp/cloudwatcher/internal/data/source"
	"github.com/penwyp/cloudwatcher/internal/presentation"
	"github.com/penwyp/cloudwatcher/internal/util"
)

// Config holds the poller's timing knobs.
type Config struct {
	// Interval between rounds for each group.
	Interval time.Duration
	// Lookback bounds the first round's fetch window.
	Lookback time.Duration
	// FetchTimeout caps one round's fetch (all pages) so a stalled call
	// cannot delay the group's future rounds indefinitely.
	FetchTimeout time.Duration
}

// Poller runs one worker per watched group. Each worker exclusively owns its
// group's cursor state; workers share only the source client and the printer.
type Poller struct {
	source  source.Source
	printer *presentation.Printer

	mu           sync.Mutex
	interval     time.Duration
	lookback     time.Duration
	fetchTimeout time.Duration
}

// NewPoller creates a Poller over the given source and printer.
func NewPoller(src source.Source, printer *presentation.Printer, cfg Config) *Poller {
	p := &Poller{
		source:       src,
		printer:      printer,
		interval:     cfg.Interval,
		lookback:     cfg.Lookback,
		fetchTimeout: cfg.FetchTimeout,
	}
	if p.interval <= 0 {
		p.interval = 10 * time.Second
	}
	if p.lookback <= 0 {
		p.lookback = 10 * time.Minute
	}
	if p.fetchTimeout <= 0 {
		p.fetchTimeout = 30 * time.Second
	}
	return p
}

// SetInterval changes the refresh interval for subsequent rounds. Safe to
// call while Watch is running; applied from config live-reload.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
}

func (p *Poller) currentInterval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Watch polls every target until ctx is cancelled, then waits for in-flight
// rounds to finish. Per-group failures are logged and retried next round;
// they never stop other groups or the engine.
func (p *Poller) Watch(ctx context.Context, targets []model.LogGroupTarget) {
	var wg sync.WaitGroup
	for _, target := range targets {
		wg.Add(1)
		go func(t model.LogGroupTarget) {
			defer wg.Done()
			p.watchGroup(ctx, t)
		}(target)
	}
	wg.Wait()
}

// watchGroup runs the round loop for one group. The first round runs
// immediately; later rounds follow the (possibly live-updated) interval.
func (p *Poller) watchGroup(ctx context.Context, target model.LogGroupTarget) {
	state := merge.NewGroupState()
	floor := time.Now().Add(-p.lookback).UnixMilli()

	for {
		p.round(ctx, target, state, floor)
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.currentInterval()):
		}
	}
}

// round fetches all pages for the group even when the service paginates, then
// merges and prints. On any fetch error the cursor state is left untouched so
// the next round retries from the same position.
func (p *Poller) round(ctx context.Context, target model.LogGroupTarget, state *merge.GroupState, floor int64) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	start := floor
	if hint := state.StartHint(); hint > start {
		start = hint
	}

	pages, err := source.DrainPages(fetchCtx, p.source, source.FetchRequest{
		Group:        target.Name,
		StreamPrefix: target.StreamPrefix,
		StartTime:    start,
	})
	if err != nil {
		if ctx.Err() == nil {
			util.LogWarnf("fetch failed for group %s: %v", target.Name, err)
		}
		return
	}

	events := state.Merge(pages)
	if len(events) == 0 {
		return
	}
	if err := p.printer.Print(events); err != nil {
		util.LogErrorf("print failed for group %s: %v", target.Name, err)
		return
	}
	util.LogDebugf("group %s: %d new events across %d streams", target.Name, len(events), state.Streams())
}
