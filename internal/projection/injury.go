package projection

import (
	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/models"
)

// injuryMultipliers maps report status to the factor applied to every
// projected stat and to confidence. OUT players never reach this table;
// they are excluded from projection entirely.
var injuryMultipliers = map[string]float64{
	models.InjuryActive:       1.0,
	models.InjuryProbable:     0.95,
	models.InjuryQuestionable: 0.85,
	models.InjuryDoubtful:     0.6,
	models.InjuryOut:          0,
}

// injuryMultiplier resolves the factor for a status. An unrecognized
// status is deliberately treated as no penalty rather than a conservative
// one; changing that is a policy decision, not a bugfix.
func injuryMultiplier(status string, logger *logrus.Logger) float64 {
	mult, ok := injuryMultipliers[status]
	if !ok {
		logger.WithField("status", status).Warn("Unrecognized injury status, applying no penalty")
		return 1.0
	}
	return mult
}
