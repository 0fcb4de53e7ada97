package marketdata

import (
	"context"
	"fmt"
	"time"

	"InvestLens/internal/domain/models"
	pkghttp "InvestLens/pkg/http"
)

const yahooModules = "financialData,summaryDetail,defaultKeyStatistics,assetProfile,price"

// yNumber is Yahoo's formatted-number envelope; only the raw value matters.
type yNumber struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				RegularMarketPrice yNumber `json:"regularMarketPrice"`
				LongName           string  `json:"longName"`
				ShortName          string  `json:"shortName"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE    yNumber `json:"trailingPE"`
				ForwardPE     yNumber `json:"forwardPE"`
				MarketCap     yNumber `json:"marketCap"`
				DividendYield yNumber `json:"dividendYield"`
			} `json:"summaryDetail"`
			FinancialData struct {
				ReturnOnEquity yNumber `json:"returnOnEquity"`
				DebtToEquity   yNumber `json:"debtToEquity"`
				ProfitMargins  yNumber `json:"profitMargins"`
				TotalRevenue   yNumber `json:"totalRevenue"`
				EarningsGrowth yNumber `json:"earningsGrowth"`
				RevenueGrowth  yNumber `json:"revenueGrowth"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				TrailingEps        yNumber `json:"trailingEps"`
				ForwardPE          yNumber `json:"forwardPE"`
				EnterpriseToEbitda yNumber `json:"enterpriseToEbitda"`
				NetIncomeToCommon  yNumber `json:"netIncomeToCommon"`
				Beta               yNumber `json:"beta"`
			} `json:"defaultKeyStatistics"`
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// YahooClient fetches fundamentals from Yahoo's quoteSummary endpoint.
type YahooClient struct {
	baseURL string
	client  *pkghttp.Client
}

func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	return &YahooClient{
		baseURL: baseURL,
		client:  pkghttp.NewClient(pkghttp.WithTimeout(timeout)),
	}
}

func (c *YahooClient) Name() string { return "yahoo" }

// Fetch retrieves the quoteSummary modules for ticker and flattens them into
// a snapshot.
func (c *YahooClient) Fetch(ctx context.Context, ticker string) (*models.RawMarketSnapshot, error) {
	var resp quoteSummaryResponse
	err := c.client.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    fmt.Sprintf("%s/v10/finance/quoteSummary/%s", c.baseURL, ticker),
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (compatible; InvestLens/1.0)",
		},
		QueryParams: map[string][]string{
			"modules": {yahooModules},
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if e := resp.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("yahoo quoteSummary: %s: %s", e.Code, e.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo quoteSummary: empty result for %s", ticker)
	}

	r := resp.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}
	forwardPE := r.SummaryDetail.ForwardPE
	if forwardPE.Raw == nil {
		forwardPE = r.DefaultKeyStatistics.ForwardPE
	}

	return &models.RawMarketSnapshot{
		Ticker:         ticker,
		Name:           name,
		Source:         c.Name(),
		Price:          models.FloatPtr(r.Price.RegularMarketPrice.Raw),
		TrailingPE:     models.FloatPtr(r.SummaryDetail.TrailingPE.Raw),
		ForwardPE:      models.FloatPtr(forwardPE.Raw),
		EVToEBITDA:     models.FloatPtr(r.DefaultKeyStatistics.EnterpriseToEbitda.Raw),
		ReturnOnEquity: models.FloatPtr(r.FinancialData.ReturnOnEquity.Raw),
		DebtToEquity:   models.FloatPtr(r.FinancialData.DebtToEquity.Raw),
		ProfitMargin:   models.FloatPtr(r.FinancialData.ProfitMargins.Raw),
		NetIncome:      models.FloatPtr(r.DefaultKeyStatistics.NetIncomeToCommon.Raw),
		TotalRevenue:   models.FloatPtr(r.FinancialData.TotalRevenue.Raw),
		EPS:            models.FloatPtr(r.DefaultKeyStatistics.TrailingEps.Raw),
		EarningsGrowth: models.FloatPtr(r.FinancialData.EarningsGrowth.Raw),
		RevenueGrowth:  models.FloatPtr(r.FinancialData.RevenueGrowth.Raw),
		MarketCap:      models.FloatPtr(r.SummaryDetail.MarketCap.Raw),
		Beta:           models.FloatPtr(r.DefaultKeyStatistics.Beta.Raw),
		DividendYield:  models.FloatPtr(r.SummaryDetail.DividendYield.Raw),
		Sector:         r.AssetProfile.Sector,
		Industry:       r.AssetProfile.Industry,
		RetrievedAt:    time.Now().UTC(),
	}, nil
}
