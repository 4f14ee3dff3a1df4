// Package pipeline orchestrates one report run: read records from the
// source, fold them into statistics, optionally generate an LLM narrative,
// and hand the result to the output layers.
package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oldg9516/ai-agents-stats/internal/cache"
	"github.com/oldg9516/ai-agents-stats/internal/export"
	"github.com/oldg9516/ai-agents-stats/internal/insight"
	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/notify"
	"github.com/oldg9516/ai-agents-stats/internal/render"
	"github.com/oldg9516/ai-agents-stats/internal/source"
	"github.com/oldg9516/ai-agents-stats/internal/stats"
	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
	"github.com/oldg9516/ai-agents-stats/internal/worker"
)

// Pipeline wires the record source, taxonomy, cache, and output layers
// around the aggregation fold.
type Pipeline struct {
	source     source.Source
	tax        taxonomy.Taxonomy
	cache      *cache.Results // nil when caching is disabled
	summarizer *insight.Summarizer
	notifier   *notify.Notifier
	renderer   *render.Renderer
	cfg        *model.Config
	log        *logrus.Entry
}

// New builds a pipeline from configuration. The source is opened here;
// callers own Close.
func New(ctx context.Context, cfg *model.Config, log *logrus.Entry) (*Pipeline, error) {
	src, err := source.Open(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	tax := taxonomy.Default()
	if cfg.Taxonomy.Path != "" {
		tax, err = taxonomy.LoadFile(cfg.Taxonomy.Path)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
	}

	summarizer, err := insight.NewSummarizer(cfg.LLM)
	if err != nil {
		// An unusable LLM config must not block the numbers.
		log.WithError(err).Warn("insight summarizer disabled")
		summarizer = nil
	}

	notifier, err := notify.New(cfg.Slack)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("configure Slack delivery: %w", err)
	}

	return &Pipeline{
		source:     src,
		tax:        tax,
		cache:      cache.FromConfig(cfg.Cache),
		summarizer: summarizer,
		notifier:   notifier,
		renderer:   render.NewRenderer(true),
		cfg:        cfg,
		log:        log,
	}, nil
}

// Close releases the pipeline's source.
func (p *Pipeline) Close() error {
	return p.source.Close()
}

// Run computes one mode's statistics over the queried window, consulting the
// result cache first.
func (p *Pipeline) Run(ctx context.Context, mode stats.Mode, q source.Query) (*model.StatsResult, error) {
	key := cache.ResultKey(string(mode), q.Key())
	if p.cache != nil {
		if cached := p.cache.Get(key); cached != nil {
			p.log.WithField("mode", mode).Debug("cache hit")
			return cached, nil
		}
	}

	records, err := p.fetchAll(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"mode":    mode,
		"records": len(records),
	}).Info("aggregating")

	pol := stats.PolicyFor(mode)
	if p.cfg.Stats.AccuracyWeight != 0 || p.cfg.Stats.VolumeWeight != 0 {
		pol.AccuracyWeight = p.cfg.Stats.AccuracyWeight
		pol.VolumeWeight = p.cfg.Stats.VolumeWeight
	}

	result, err := stats.Aggregate(records, p.tax, pol)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	if p.cache != nil {
		if err := p.cache.Set(key, result, p.cfg.Cache.MemoryTTL); err != nil {
			p.log.WithError(err).Warn("cache write failed")
		}
	}
	return result, nil
}

// fetchAll drains the source page by page.
func (p *Pipeline) fetchAll(ctx context.Context, q source.Query) ([]model.ClassificationRecord, error) {
	pageSize := q.Limit
	if pageSize <= 0 {
		pageSize = p.cfg.Source.PageSize
	}

	var all []model.ClassificationRecord
	offset := q.Offset
	for {
		page := q
		page.Limit = pageSize
		page.Offset = offset

		records, err := p.source.Fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
		if len(records) < pageSize {
			return all, nil
		}
		offset += pageSize
	}
}

// boundAggregator binds a query so the mode runner can fan out per mode.
type boundAggregator struct {
	p *Pipeline
	q source.Query
}

func (b *boundAggregator) Run(ctx context.Context, mode stats.Mode) (*model.StatsResult, error) {
	return b.p.Run(ctx, mode, b.q)
}

// RunModes computes several modes concurrently over the same window.
func (p *Pipeline) RunModes(ctx context.Context, modes []stats.Mode, q source.Query) []*worker.ModeResult {
	runner := worker.NewModeRunner(&boundAggregator{p: p, q: q}, len(modes))
	return runner.Run(ctx, modes)
}

// BuildReport wraps a result with its optional insight narrative. Insight
// generation runs strictly after aggregation and never alters the numbers; a
// failed generation logs a warning and the report ships without it.
func (p *Pipeline) BuildReport(ctx context.Context, result *model.StatsResult) *model.Report {
	report := &model.Report{Stats: result}

	if p.summarizer != nil {
		summary, err := p.summarizer.Generate(ctx, result)
		if err != nil {
			p.log.WithError(err).Warn("insight generation failed")
		} else {
			report.Insight = summary
		}
	}
	return report
}

// RenderReport writes the report to the requested outputs and prints the
// terminal summary.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath, xlsxPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.log.WithField("path", jsonPath).Info("wrote JSON report")
	}
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
		p.log.WithField("path", mdPath).Info("wrote Markdown report")
	}
	if xlsxPath != "" {
		if err := export.WriteXLSX(report, xlsxPath); err != nil {
			return fmt.Errorf("export XLSX: %w", err)
		}
		p.log.WithField("path", xlsxPath).Info("wrote XLSX report")
	}

	p.renderer.RenderSummary(report)

	if p.notifier != nil {
		if err := p.notifier.Send(report); err != nil {
			p.log.WithError(err).Warn("Slack delivery failed")
		}
	}
	return nil
}

// Refresh recomputes every mode over the open window, bypassing stale cache
// state, and primes the cache with fresh results. The server's cron
// scheduler calls this.
func (p *Pipeline) Refresh(ctx context.Context) error {
	if p.cache != nil {
		if err := p.cache.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}

	results := p.RunModes(ctx,
		[]stats.Mode{stats.ModeQuality, stats.ModeActions, stats.ModeAutomation},
		source.Query{})
	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("refresh %s: %w", r.Mode, r.Error)
		}
	}
	p.log.Info("cache refreshed")
	return nil
}
