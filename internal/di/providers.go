package di

import (
	"fmt"

	"InvestLens/internal/domain/repository"
	"InvestLens/internal/domain/service"
	"InvestLens/internal/handler/api"
	internalrepo "InvestLens/internal/repository"
	"InvestLens/internal/service/marketdata"
	"InvestLens/internal/service/ratelimit"
	"InvestLens/internal/services/analysis"
	"InvestLens/internal/usecase"
	"InvestLens/pkg/cache"
	"InvestLens/pkg/config"
	xhttp "InvestLens/pkg/http"
	pkgkafka "InvestLens/pkg/kafka"
	"InvestLens/pkg/logger"
	"InvestLens/pkg/metrics"
	"InvestLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the snapshot cache: layered memory+Redis when Redis is
// enabled, in-process memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideMarketData assembles the provider chain and gateway. Yahoo is the
// primary source; Finnhub joins the chain when an API key is configured.
func ProvideMarketData(cfg *config.Config, cacheService cache.Service, log *logger.Logger, m repository.Metrics) service.MarketData {
	providers := []marketdata.Provider{
		marketdata.NewYahooClient(cfg.Providers.Yahoo.BaseURL, cfg.Providers.Yahoo.Timeout),
	}
	if cfg.Providers.Finnhub.APIKey != "" {
		providers = append(providers,
			marketdata.NewFinnhubClient(cfg.Providers.Finnhub.BaseURL, cfg.Providers.Finnhub.APIKey, cfg.Providers.Finnhub.Timeout))
	}

	return marketdata.NewGateway(providers, cacheService, ratelimit.New(), log, m, marketdata.GatewayConfig{
		RetryMax:     cfg.Providers.RetryMax,
		BackoffBase:  cfg.Providers.BackoffBase,
		RateCapacity: cfg.Providers.RateLimit.Capacity,
		RateRefill:   cfg.Providers.RateLimit.RefillPerSec,
		SnapshotTTL:  cfg.Cache.SnapshotTTL,
	})
}

// ProvideEnricher creates the contextual analyzer over static sector
// baselines.
func ProvideEnricher(log *logger.Logger) service.Enricher {
	return analysis.NewContextualAnalyzer(analysis.NewStaticSectorStats(), log)
}

// ProvideEventPublisher creates the Kafka publisher, or nil when events are
// disabled.
func ProvideEventPublisher(cfg *config.Config) (repository.EventPublisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithTimeouts(cfg.Events.PublishTimeout, cfg.Events.PublishTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Events.Topic), nil
}

// ProvideAnalyzer creates the pipeline orchestrator.
func ProvideAnalyzer(
	market service.MarketData,
	enricher service.Enricher,
	publisher repository.EventPublisher,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(
		market,
		analysis.NewExtractor(),
		enricher,
		analysis.NewScorer(analysis.DefaultScoringConfig()),
		publisher,
		m,
		log,
		usecase.Budgets{
			Quick:      cfg.Analysis.QuickBudget,
			Standard:   cfg.Analysis.StandardBudget,
			Detailed:   cfg.Analysis.DetailedBudget,
			Phase2Cost: cfg.Analysis.Phase2Cost,
		},
	)
}

// ProvideHTTPHandler creates the Echo route group for the analysis API.
func ProvideHTTPHandler(analyzer *usecase.Analyzer, log *logger.Logger) xhttp.Handler {
	return api.NewAnalysisHandler(analyzer, log)
}

// ProvideApp creates the application with its full lifecycle wiring.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	cacheService cache.Service,
	publisher repository.EventPublisher,
	log *logger.Logger,
) *server.App {
	return server.New(cfg, handler, cacheService, publisher, log)
}
