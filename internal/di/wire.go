//go:build wireinject
// +build wireinject

package di

import (
	"InvestLens/pkg/config"
	"InvestLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Market data
		ProvideMarketData,

		// Analysis pipeline
		ProvideEnricher,
		ProvideEventPublisher,
		ProvideAnalyzer,

		// HTTP surface
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
