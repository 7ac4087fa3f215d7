package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ataymia/slipsmith-sub000/internal/models"
	"github.com/ataymia/slipsmith-sub000/internal/services"
	"github.com/ataymia/slipsmith-sub000/pkg/utils"
)

type SlipHandler struct {
	pipeline *services.Pipeline
}

func NewSlipHandler(pipeline *services.Pipeline) *SlipHandler {
	return &SlipHandler{pipeline: pipeline}
}

// TopEvents exports the slip for a date and league.
// GET /api/v1/slips/top-events?date=&sport=&tier=&limit=&minProbability=
func (h *SlipHandler) TopEvents(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.SendValidationError(c, "date is required", "expected YYYY-MM-DD")
		return
	}
	league := c.Query("sport")
	if league == "" {
		utils.SendValidationError(c, "sport is required", "expected a league code, e.g. nba")
		return
	}

	tier := models.Tier(c.DefaultQuery("tier", string(models.TierStarter)))
	if !models.ValidTier(tier) {
		utils.SendValidationError(c, "invalid tier", "expected starter, pro or vip")
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			utils.SendValidationError(c, "invalid limit", limitStr)
			return
		}
		limit = v
	}

	minProbability := 0.0
	if minStr := c.Query("minProbability"); minStr != "" {
		v, err := strconv.ParseFloat(minStr, 64)
		if err != nil || v < 0 || v > 1 {
			utils.SendValidationError(c, "invalid minProbability", minStr)
			return
		}
		minProbability = v
	}

	slip, err := h.pipeline.TopEvents(c.Request.Context(), league, date, tier, limit, minProbability)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidDateFormat):
			utils.SendValidationError(c, "invalid date", err.Error())
		case errors.Is(err, models.ErrUnknownLeague):
			utils.SendValidationError(c, "unknown sport", err.Error())
		default:
			utils.SendInternalError(c, "failed to build slip")
		}
		return
	}

	// The slip itself is the contract; no success envelope here.
	c.JSON(200, slip)
}
