package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/deckaudit/deckaudit/internal/analyze"
	"github.com/deckaudit/deckaudit/internal/cache"
	"github.com/deckaudit/deckaudit/internal/extract"
	"github.com/deckaudit/deckaudit/internal/llm"
	"github.com/deckaudit/deckaudit/internal/logger"
	"github.com/deckaudit/deckaudit/internal/model"
	"github.com/deckaudit/deckaudit/internal/normalize"
	"github.com/deckaudit/deckaudit/internal/slides"
	"github.com/deckaudit/deckaudit/internal/worker"
)

// Pipeline sequences the three analysis passes over a slide deck:
// per-slide extraction, per-category normalization, whole-dataset analysis.
// It owns the fatal-vs-degraded policy; individual bad slides or categories
// never abort a run.
type Pipeline struct {
	provider   llm.Provider
	extractor  *extract.FactExtractor
	normalizer *normalize.Normalizer
	analyzer   *analyze.Analyzer
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration, wiring the provider
// behind rate limiting and, when enabled, completion caching.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	base, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure reasoning provider: %w", err)
	}

	limiter := worker.NewLimiter(cfg.LLM.RequestsPerSecond, cfg.Concurrency.ExtractWorkers)
	var provider llm.Provider = llm.NewThrottledProvider(base, limiter)

	// Cache sits outside the limiter so replayed completions never wait
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		provider = llm.NewCachedProvider(provider, store, cfg.Cache.DiskTTL)
	}

	return NewPipelineWithProvider(cfg, provider), nil
}

// NewPipelineWithProvider creates a pipeline on top of an existing provider
func NewPipelineWithProvider(cfg *model.Config, provider llm.Provider) *Pipeline {
	return &Pipeline{
		provider:   provider,
		extractor:  extract.NewFactExtractor(provider, cfg.LLM.Model),
		normalizer: normalize.NewNormalizer(provider, cfg.LLM.Model),
		analyzer:   analyze.NewAnalyzer(provider, cfg.LLM.Model, cfg.LLM.AnalysisMaxTokens),
		config:     cfg,
	}
}

// Run executes the full analysis for one deck. Fatal only when the input is
// empty, every slide's extraction yields zero facts, or the final analysis
// call fails at the transport level.
func (p *Pipeline) Run(ctx context.Context, src *slides.Source) (*model.Report, error) {
	if src.Count() == 0 {
		return nil, model.ErrEmptyInput
	}

	logger.Log.WithField("slides", src.Count()).Info("pass 1: extracting facts per slide")
	facts := p.extractAll(ctx, src)
	if len(facts) == 0 {
		return nil, model.ErrNoFacts
	}

	grouped := normalize.GroupByCategory(facts)
	logger.Log.WithFields(map[string]interface{}{
		"facts":      len(facts),
		"categories": len(grouped.Order),
	}).Info("pass 2: normalizing category groups")
	normalized := p.normalizeAll(ctx, grouped)

	caseFile := normalize.AssembleCaseFile(grouped, normalized)

	logger.Log.Info("pass 3: analyzing case file for inconsistencies")
	findings, err := p.analyzer.Analyze(ctx, caseFile)
	if err != nil {
		var malformed *model.MalformedResponseError
		if errors.As(err, &malformed) {
			// The service answered but the findings were undecodable.
			// The case file is still worth reporting.
			logger.Log.WithError(err).Warn("analysis response unusable, report will carry no findings")
			findings = nil
		} else {
			return nil, fmt.Errorf("analysis: %w", err)
		}
	}

	coverage := model.CoverageFor(caseFile, src.Count())
	if coverage.Partial() {
		logger.Log.WithFields(map[string]interface{}{
			"slides_with_facts": coverage.SlidesWithFacts,
			"total_slides":      coverage.TotalSlides,
		}).Warn("coverage is partial: some slides contributed no facts")
	}

	return &model.Report{
		DeckPath:    src.Dir(),
		AnalyzedAt:  time.Now().UTC(),
		Provider:    p.provider.Name(),
		Model:       p.config.LLM.Model,
		SlideCount:  src.Count(),
		SlideLabels: src.Labels(),
		Coverage:    coverage,
		CaseFile:    caseFile,
		Findings:    findings,
	}, nil
}

// extractJob is one per-slide extraction call. The run context travels with
// the job so the caller's timeout applies inside the pool.
type extractJob struct {
	ctx       context.Context
	slide     slides.Slide
	src       *slides.Source
	extractor *extract.FactExtractor
}

type extractResult struct {
	index int
	facts []model.ExtractedFact
	err   error
}

func (r *extractResult) GetError() error { return r.err }

func (j *extractJob) Execute(context.Context) worker.Result {
	data, err := j.src.Read(j.slide.Index)
	if err != nil {
		return &extractResult{index: j.slide.Index, err: err}
	}
	facts, err := j.extractor.Extract(j.ctx, j.slide.Index, data, j.slide.MIME)
	return &extractResult{index: j.slide.Index, facts: facts, err: err}
}

// extractAll fans per-slide extraction out over the worker pool, then merges
// results sorted by slide index so downstream ordering is deterministic
// regardless of call-completion order. Failed slides are logged and skipped.
func (p *Pipeline) extractAll(ctx context.Context, src *slides.Source) []model.ExtractedFact {
	pool := worker.NewPool(p.config.Concurrency.ExtractWorkers)
	pool.Start()

	for _, slide := range src.Slides() {
		pool.Submit(&extractJob{ctx: ctx, slide: slide, src: src, extractor: p.extractor})
	}

	results := pool.Wait()

	extracted := make([]*extractResult, 0, len(results))
	for _, r := range results {
		extracted = append(extracted, r.(*extractResult))
	}
	sort.Slice(extracted, func(i, j int) bool { return extracted[i].index < extracted[j].index })

	var facts []model.ExtractedFact
	for _, r := range extracted {
		if r.err != nil {
			logger.Log.WithError(r.err).WithField("slide", src.Label(r.index)).
				Warn("slide skipped, coverage degraded")
			continue
		}
		logger.Log.WithFields(map[string]interface{}{
			"slide": src.Label(r.index),
			"facts": len(r.facts),
		}).Debug("slide extracted")
		facts = append(facts, r.facts...)
	}

	return facts
}

// normalizeJob is one per-category normalization call
type normalizeJob struct {
	ctx        context.Context
	category   string
	facts      []model.ExtractedFact
	normalizer *normalize.Normalizer
}

type normalizeResult struct {
	category string
	facts    []model.NormalizedFact
	err      error
}

func (r *normalizeResult) GetError() error { return r.err }

func (j *normalizeJob) Execute(context.Context) worker.Result {
	facts, err := j.normalizer.Normalize(j.ctx, j.category, j.facts)
	return &normalizeResult{category: j.category, facts: facts, err: err}
}

// normalizeAll fans per-category normalization out over the worker pool and
// merges by category key, order-insensitive. Normalize is fail-open, so
// every category comes back usable; errors only mean degraded (pass-through)
// groups.
func (p *Pipeline) normalizeAll(ctx context.Context, grouped normalize.Grouped) map[string][]model.NormalizedFact {
	pool := worker.NewPool(p.config.Concurrency.NormalizeWorkers)
	pool.Start()

	for _, category := range grouped.Order {
		pool.Submit(&normalizeJob{
			ctx:        ctx,
			category:   category,
			facts:      grouped.Groups[category],
			normalizer: p.normalizer,
		})
	}

	normalized := make(map[string][]model.NormalizedFact, len(grouped.Order))
	for _, r := range pool.Wait() {
		res := r.(*normalizeResult)
		if res.err != nil {
			logger.Log.WithError(res.err).WithField("category", res.category).
				Warn("category passed through unnormalized")
		}
		normalized[res.category] = res.facts
	}

	return normalized
}
