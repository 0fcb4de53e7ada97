package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"InvestLens/internal/domain/models"
	"InvestLens/internal/service/marketdata"
	pkghttp "InvestLens/pkg/http"
	"InvestLens/pkg/logger"
)

// Analyzer runs one analysis pipeline pass.
type Analyzer interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalysisResult, error)
}

// AnalysisHandler exposes the analysis pipeline over HTTP.
type AnalysisHandler struct {
	analyzer Analyzer
	logger   *logger.Logger
}

func NewAnalysisHandler(analyzer Analyzer, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, logger: log}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/analyze", h.Analyze)
	e.POST("/api/analyze", h.Analyze)
	e.GET("/api/analyze/summary", h.Summary)
	e.GET("/healthz", h.Health)
}

// Analyze handles GET/POST /api/analyze and returns the structured result.
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	result, err := h.run(c)
	if err != nil {
		return h.renderError(c, err)
	}
	return pkghttp.SuccessResponse(c, result)
}

// Summary handles GET /api/analyze/summary and returns the human-readable
// report as plain text.
func (h *AnalysisHandler) Summary(c echo.Context) error {
	result, err := h.run(c)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.String(http.StatusOK, result.Summary())
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AnalysisHandler) run(c echo.Context) (*models.AnalysisResult, error) {
	var req models.AnalyzeRequest
	if errs := pkghttp.ReadAndValidateRequest(c, &req); errs != nil {
		return nil, &validationFailure{payload: errs}
	}
	return h.analyzer.Analyze(c.Request().Context(), &req)
}

// validationFailure carries the renderable validation payload through the
// error return.
type validationFailure struct {
	payload interface{}
}

func (v *validationFailure) Error() string { return "request validation failed" }

func (h *AnalysisHandler) renderError(c echo.Context, err error) error {
	var vf *validationFailure
	if errors.As(err, &vf) {
		return pkghttp.BadRequestResponse(c, vf.payload)
	}

	if ge, ok := marketdata.AsGatewayError(err); ok {
		switch ge.Kind {
		case marketdata.KindInvalidTicker:
			return pkghttp.AppErrorResponse(c, pkghttp.BadRequestError("ERR_INVALID_TICKER", ge.Message))
		case marketdata.KindRateLimited:
			return pkghttp.AppErrorResponse(c, pkghttp.TooManyRequestsError("ERR_RATE_LIMITED", ge.Message))
		default:
			return pkghttp.AppErrorResponse(c, pkghttp.BadGatewayError("ERR_MARKET_DATA_UNAVAILABLE", ge.Message))
		}
	}

	h.logger.Error("analysis request failed", logger.Error(err))
	return pkghttp.InternalServerErrorResponse(c)
}
