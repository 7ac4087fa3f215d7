package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ataymia/slipsmith-sub000/internal/evaluation"
	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/services"
	"github.com/ataymia/slipsmith-sub000/internal/sports"
	"github.com/ataymia/slipsmith-sub000/pkg/utils"
)

type EvaluationHandler struct {
	ledger *evaluation.Ledger
	cache  *services.CacheService
}

func NewEvaluationHandler(ledger *evaluation.Ledger, cache *services.CacheService) *EvaluationHandler {
	return &EvaluationHandler{ledger: ledger, cache: cache}
}

// Run triggers an evaluation pass for a date. With sport set it covers
// one league; without it, every supported league.
// POST /api/v1/evaluation/run?date=&sport=
func (h *EvaluationHandler) Run(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.SendValidationError(c, "date is required", "expected YYYY-MM-DD")
		return
	}

	leagues := sports.Codes()
	if league := c.Query("sport"); league != "" {
		leagues = []string{league}
	}

	reports := make([]*evaluation.Report, 0, len(leagues))
	for _, league := range leagues {
		report, err := h.ledger.EvaluateDate(c.Request.Context(), date, league)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidDateFormat):
				utils.SendValidationError(c, "invalid date", err.Error())
			case errors.Is(err, models.ErrUnknownLeague):
				utils.SendValidationError(c, "unknown sport", err.Error())
			default:
				utils.SendInternalError(c, "evaluation failed")
			}
			return
		}
		reports = append(reports, report)
	}

	if len(reports) == 1 {
		utils.SendSuccess(c, reports[0])
		return
	}
	utils.SendSuccess(c, reports)
}

// Summary aggregates evaluated events over a date range.
// GET /api/v1/evaluation/summary?from=&to=
func (h *EvaluationHandler) Summary(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.SendValidationError(c, "from and to are required", "expected YYYY-MM-DD")
		return
	}

	summary, err := h.ledger.Summary(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, models.ErrInvalidDateFormat) {
			utils.SendValidationError(c, "invalid date range", err.Error())
			return
		}
		utils.SendInternalError(c, "failed to summarize evaluations")
		return
	}
	utils.SendSuccess(c, summary)
}

// Reliability returns the ledger, optionally filtered by sport kind.
// GET /api/v1/reliability?sport=
func (h *EvaluationHandler) Reliability(c *gin.Context) {
	sport := c.Query("sport")

	ctx := c.Request.Context()
	cacheKey := services.ReliabilityReportCacheKey(sport)
	if h.cache != nil {
		var cached []models.ReliabilityScore
		if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	scores, err := h.ledger.ReliabilityReport(ctx, sport)
	if err != nil {
		utils.SendInternalError(c, "failed to load reliability report")
		return
	}

	if h.cache != nil {
		h.cache.SetWithRetry(ctx, cacheKey, scores, 10*time.Minute, 3)
	}
	utils.SendSuccess(c, scores)
}
