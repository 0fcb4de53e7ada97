package usecase

import (
	"context"
	"time"

	"InvestLens/internal/domain/models"
	"InvestLens/internal/domain/repository"
	"InvestLens/internal/domain/service"
	"InvestLens/internal/services/analysis"
	"InvestLens/pkg/logger"
)

// Budgets are the wall-clock limits per analysis depth, plus the estimated
// cost of the contextual phase used to decide whether it still fits.
type Budgets struct {
	Quick      time.Duration
	Standard   time.Duration
	Detailed   time.Duration
	Phase2Cost time.Duration
}

func (b Budgets) forDepth(depth string) time.Duration {
	switch depth {
	case models.DepthQuick:
		return b.Quick
	case models.DepthDetailed:
		return b.Detailed
	default:
		return b.Standard
	}
}

// Analyzer orchestrates the three-phase pipeline: fetch and extract, optional
// contextual enrichment, then scoring. Phase 2 is skipped when the depth is
// quick, the sector is unknown, or the remaining budget cannot cover it;
// everything downstream of a successful fetch degrades gracefully.
type Analyzer struct {
	market    service.MarketData
	extractor *analysis.Extractor
	enricher  service.Enricher
	scorer    *analysis.Scorer
	publisher repository.EventPublisher
	metrics   repository.Metrics
	logger    *logger.Logger
	budgets   Budgets
}

func NewAnalyzer(
	market service.MarketData,
	extractor *analysis.Extractor,
	enricher service.Enricher,
	scorer *analysis.Scorer,
	publisher repository.EventPublisher,
	metrics repository.Metrics,
	log *logger.Logger,
	budgets Budgets,
) *Analyzer {
	return &Analyzer{
		market:    market,
		extractor: extractor,
		enricher:  enricher,
		scorer:    scorer,
		publisher: publisher,
		metrics:   metrics,
		logger:    log,
		budgets:   budgets,
	}
}

// Analyze runs one full pipeline pass for the request.
func (a *Analyzer) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalysisResult, error) {
	start := time.Now()
	budget := a.budgets.forDepth(req.Depth)

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	// Phase 1: snapshot and core metrics. A fetch failure fails the run;
	// nothing downstream can proceed without data.
	phaseStart := time.Now()
	snap, err := a.market.Fetch(ctx, req.Ticker)
	if err != nil {
		a.logger.Warn("analysis aborted at market data",
			logger.String("ticker", req.Ticker),
			logger.Error(err))
		return nil, err
	}
	metrics := a.extractor.Extract(snap)
	a.metrics.RecordPhaseLatency("core", time.Since(phaseStart).Seconds())
	phases := []int{models.PhaseCoreMetrics}

	// Phase 2: contextual enrichment, only when the remaining budget can
	// absorb it.
	var signals *models.ContextualSignals
	if req.Depth != models.DepthQuick {
		remaining := budget - time.Since(start)
		if remaining > a.budgets.Phase2Cost && snap.HasSector() {
			phaseStart = time.Now()
			if sig, ok := a.enricher.Enrich(ctx, metrics, snap); ok {
				signals = &sig
				phases = append(phases, models.PhaseContext)
			}
			a.metrics.RecordPhaseLatency("context", time.Since(phaseStart).Seconds())
		}
	}

	// Phase 3: scoring always runs on whatever survived.
	phaseStart = time.Now()
	card := a.scorer.Score(metrics, signals)
	a.metrics.RecordPhaseLatency("scoring", time.Since(phaseStart).Seconds())
	phases = append(phases, models.PhaseScoring)

	result := &models.AnalysisResult{
		Ticker:         snap.Ticker,
		Name:           snap.Name,
		Price:          snap.Price,
		Recommendation: card.Recommendation,
		Score:          card.Score,
		Confidence:     card.Confidence,
		Insights:       card.Insights,
		RiskNotes:      card.RiskNotes,
		PhasesExecuted: phases,
		ElapsedMs:      time.Since(start).Milliseconds(),
		GeneratedAt:    time.Now().UTC(),
	}

	a.metrics.RecordAnalysis(string(result.Recommendation), string(result.Confidence))
	a.metrics.RecordScore(result.Ticker, result.Score)
	a.logger.Info("analysis completed",
		logger.String("ticker", result.Ticker),
		logger.String("recommendation", string(result.Recommendation)),
		logger.Float64("score", result.Score),
		logger.String("confidence", string(result.Confidence)),
		logger.Int("phases", len(phases)),
		logger.Duration("elapsed", time.Since(start)))

	a.publish(result)
	return result, nil
}

// publish emits the result asynchronously. Event delivery never affects the
// response.
func (a *Analyzer) publish(result *models.AnalysisResult) {
	if a.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.publisher.PublishAnalysis(ctx, result); err != nil {
			a.logger.Warn("analysis event publish failed",
				logger.String("ticker", result.Ticker),
				logger.Error(err))
		}
	}()
}
