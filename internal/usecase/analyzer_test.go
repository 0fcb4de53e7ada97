package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"InvestLens/internal/domain/models"
	"InvestLens/internal/domain/repository"
	"InvestLens/internal/services/analysis"
	"InvestLens/pkg/logger"
)

type fakeMarket struct {
	snap *models.RawMarketSnapshot
	err  error
}

func (f *fakeMarket) Fetch(_ context.Context, ticker string) (*models.RawMarketSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

type fakeEnricher struct {
	called bool
	sig    models.ContextualSignals
	ok     bool
}

func (f *fakeEnricher) Enrich(_ context.Context, _ models.MetricSet, _ *models.RawMarketSnapshot) (models.ContextualSignals, bool) {
	f.called = true
	return f.sig, f.ok
}

type fakePublisher struct {
	published chan *models.AnalysisResult
}

func (f *fakePublisher) PublishAnalysis(_ context.Context, r *models.AnalysisResult) error {
	f.published <- r
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordAnalysis(string, string)      {}
func (nopMetrics) RecordProviderCall(string, string)  {}
func (nopMetrics) RecordError(string)                 {}
func (nopMetrics) RecordScore(string, float64)        {}
func (nopMetrics) RecordPhaseLatency(string, float64) {}

func testBudgets() Budgets {
	return Budgets{
		Quick:      800 * time.Millisecond,
		Standard:   2 * time.Second,
		Detailed:   4 * time.Second,
		Phase2Cost: 300 * time.Millisecond,
	}
}

func healthySnapshot() *models.RawMarketSnapshot {
	return &models.RawMarketSnapshot{
		Ticker:         "MSFT",
		Name:           "Microsoft Corporation",
		Source:         "yahoo",
		Price:          models.Float(412.5),
		TrailingPE:     models.Float(30),
		ReturnOnEquity: models.Float(0.40),
		DebtToEquity:   models.Float(47),
		ProfitMargin:   models.Float(0.33),
		Sector:         "Technology",
		RetrievedAt:    time.Now(),
	}
}

func newAnalyzer(t *testing.T, market *fakeMarket, enricher *fakeEnricher, pub *fakePublisher, budgets Budgets) *Analyzer {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "fatal", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	var publisher repository.EventPublisher
	if pub != nil {
		publisher = pub
	}
	return NewAnalyzer(
		market,
		analysis.NewExtractor(),
		enricher,
		analysis.NewScorer(analysis.DefaultScoringConfig()),
		publisher,
		nopMetrics{},
		log,
		budgets,
	)
}

func TestAnalyzeRunsAllPhasesAtStandardDepth(t *testing.T) {
	enricher := &fakeEnricher{ok: true, sig: models.ContextualSignals{Sector: "Technology"}}
	a := newAnalyzer(t, &fakeMarket{snap: healthySnapshot()}, enricher, nil, testBudgets())

	result, err := a.Analyze(context.Background(), &models.AnalyzeRequest{Ticker: "MSFT", Depth: models.DepthStandard})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	want := []int{models.PhaseCoreMetrics, models.PhaseContext, models.PhaseScoring}
	if len(result.PhasesExecuted) != len(want) {
		t.Fatalf("phases = %v, want %v", result.PhasesExecuted, want)
	}
	for i, p := range want {
		if result.PhasesExecuted[i] != p {
			t.Fatalf("phases = %v, want %v", result.PhasesExecuted, want)
		}
	}
	if result.Ticker != "MSFT" || result.Name != "Microsoft Corporation" {
		t.Fatalf("identity fields wrong: %+v", result)
	}
	if result.Recommendation == "" || result.Score <= 0 {
		t.Fatalf("missing recommendation or score: %+v", result)
	}
}

func TestAnalyzeQuickDepthSkipsContext(t *testing.T) {
	enricher := &fakeEnricher{ok: true}
	a := newAnalyzer(t, &fakeMarket{snap: healthySnapshot()}, enricher, nil, testBudgets())

	result, err := a.Analyze(context.Background(), &models.AnalyzeRequest{Ticker: "MSFT", Depth: models.DepthQuick})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if enricher.called {
		t.Fatalf("enricher must not run at quick depth")
	}
	if result.RanPhase(models.PhaseContext) {
		t.Fatalf("phase 2 recorded despite quick depth: %v", result.PhasesExecuted)
	}
	if !result.RanPhase(models.PhaseScoring) {
		t.Fatalf("scoring must always run: %v", result.PhasesExecuted)
	}
}

func TestAnalyzeSkipsContextWhenBudgetTooTight(t *testing.T) {
	enricher := &fakeEnricher{ok: true}
	budgets := testBudgets()
	budgets.Standard = 50 * time.Millisecond
	budgets.Phase2Cost = 50 * time.Millisecond
	a := newAnalyzer(t, &fakeMarket{snap: healthySnapshot()}, enricher, nil, budgets)

	result, err := a.Analyze(context.Background(), &models.AnalyzeRequest{Ticker: "MSFT", Depth: models.DepthStandard})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if enricher.called {
		t.Fatalf("enricher must not run when the budget cannot cover it")
	}
	if result.RanPhase(models.PhaseContext) {
		t.Fatalf("phase 2 recorded despite exhausted budget: %v", result.PhasesExecuted)
	}
}

func TestAnalyzeSkipsContextWithoutSector(t *testing.T) {
	snap := healthySnapshot()
	snap.Sector = ""
	enricher := &fakeEnricher{ok: true}
	a := newAnalyzer(t, &fakeMarket{snap: snap}, enricher, nil, testBudgets())

	result, err := a.Analyze(context.Background(), &models.AnalyzeRequest{Ticker: "MSFT", Depth: models.DepthDetailed})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if enricher.called {
		t.Fatalf("enricher must not run without sector data")
	}
	if result.Confidence == models.ConfidenceHigh {
		t.Fatalf("confidence cannot be High without context")
	}
}

func TestAnalyzePassesGatewayErrorThrough(t *testing.T) {
	wantErr := errors.New("unavailable: no provider could serve MSFT")
	a := newAnalyzer(t, &fakeMarket{err: wantErr}, &fakeEnricher{}, nil, testBudgets())

	_, err := a.Analyze(context.Background(), &models.AnalyzeRequest{Ticker: "MSFT", Depth: models.DepthStandard})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want passthrough of %v", err, wantErr)
	}
}

func TestAnalyzePublishesResultEvent(t *testing.T) {
	pub := &fakePublisher{published: make(chan *models.AnalysisResult, 1)}
	enricher := &fakeEnricher{ok: true}
	a := newAnalyzer(t, &fakeMarket{snap: healthySnapshot()}, enricher, pub, testBudgets())

	result, err := a.Analyze(context.Background(), &models.AnalyzeRequest{Ticker: "MSFT", Depth: models.DepthStandard})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	select {
	case got := <-pub.published:
		if got.Ticker != result.Ticker {
			t.Fatalf("published ticker %q, want %q", got.Ticker, result.Ticker)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event published within 1s")
	}
}
