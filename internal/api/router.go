package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ataymia/slipsmith-sub000/internal/api/handlers"
	"github.com/ataymia/slipsmith-sub000/internal/evaluation"
	"github.com/ataymia/slipsmith-sub000/internal/services"
	"github.com/ataymia/slipsmith-sub000/pkg/database"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, db *database.DB, pipeline *services.Pipeline, ledger *evaluation.Ledger, cache *services.CacheService) {
	slipHandler := handlers.NewSlipHandler(pipeline)
	evaluationHandler := handlers.NewEvaluationHandler(ledger, cache)

	slips := group.Group("/slips")
	{
		slips.GET("/top-events", slipHandler.TopEvents)
	}

	eval := group.Group("/evaluation")
	{
		eval.POST("/run", evaluationHandler.Run)
		eval.GET("/summary", evaluationHandler.Summary)
	}

	group.GET("/reliability", evaluationHandler.Reliability)
}
