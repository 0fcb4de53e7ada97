package analysis

import (
	"context"
	"strings"
	"sync"

	"InvestLens/internal/domain/models"
)

// sectorBaselines holds static averages per GICS-style sector. Values are
// coarse long-run approximations; live refreshes can overlay them.
var sectorBaselines = map[string]models.SectorAverages{
	"Technology":             {PERatio: 27, ReturnOnEquity: 0.17, ProfitMargin: 0.12, DebtToEquity: 0.7},
	"Healthcare":             {PERatio: 22, ReturnOnEquity: 0.14, ProfitMargin: 0.10, DebtToEquity: 0.9},
	"Financial Services":     {PERatio: 13, ReturnOnEquity: 0.11, ProfitMargin: 0.20, DebtToEquity: 1.5},
	"Consumer Cyclical":      {PERatio: 20, ReturnOnEquity: 0.15, ProfitMargin: 0.07, DebtToEquity: 1.0},
	"Consumer Defensive":     {PERatio: 19, ReturnOnEquity: 0.16, ProfitMargin: 0.06, DebtToEquity: 0.8},
	"Industrials":            {PERatio: 19, ReturnOnEquity: 0.13, ProfitMargin: 0.08, DebtToEquity: 1.1},
	"Energy":                 {PERatio: 12, ReturnOnEquity: 0.12, ProfitMargin: 0.09, DebtToEquity: 0.6},
	"Utilities":              {PERatio: 17, ReturnOnEquity: 0.09, ProfitMargin: 0.11, DebtToEquity: 1.4},
	"Basic Materials":        {PERatio: 14, ReturnOnEquity: 0.11, ProfitMargin: 0.09, DebtToEquity: 0.7},
	"Real Estate":            {PERatio: 30, ReturnOnEquity: 0.07, ProfitMargin: 0.20, DebtToEquity: 1.2},
	"Communication Services": {PERatio: 18, ReturnOnEquity: 0.12, ProfitMargin: 0.11, DebtToEquity: 0.9},
}

// defaultBaseline is used for sectors missing from the table.
var defaultBaseline = models.SectorAverages{PERatio: 20, ReturnOnEquity: 0.12, ProfitMargin: 0.10, DebtToEquity: 1.0}

// StaticSectorStats serves baselines from the table above, with an in-memory
// overlay for refreshed values.
type StaticSectorStats struct {
	mu      sync.RWMutex
	overlay map[string]models.SectorAverages
}

func NewStaticSectorStats() *StaticSectorStats {
	return &StaticSectorStats{overlay: make(map[string]models.SectorAverages)}
}

// Averages returns the baseline for sector, falling back to the default row.
// Lookup is case-insensitive.
func (s *StaticSectorStats) Averages(_ context.Context, sector string) (models.SectorAverages, error) {
	s.mu.RLock()
	if avg, ok := s.overlay[strings.ToLower(sector)]; ok {
		s.mu.RUnlock()
		return avg, nil
	}
	s.mu.RUnlock()

	for name, avg := range sectorBaselines {
		if strings.EqualFold(name, sector) {
			return avg, nil
		}
	}
	return defaultBaseline, nil
}

// Update overlays a refreshed baseline for sector.
func (s *StaticSectorStats) Update(sector string, avg models.SectorAverages) {
	s.mu.Lock()
	s.overlay[strings.ToLower(sector)] = avg
	s.mu.Unlock()
}
