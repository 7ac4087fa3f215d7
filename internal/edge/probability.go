package edge

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// regressionFactor softens extreme probabilities toward 0.5. The 0.15
// figure is an output-parity calibration constant, not a fitted value.
const regressionFactor = 0.15

const (
	regressionHigh = 0.90
	regressionLow  = 0.10
)

// probability converts a projection-vs-line delta into the chance the
// projected side of the line hits. Lower confidence widens the effective
// distribution through the uncertainty factor.
func probability(edge, threshold, confidence float64) float64 {
	if threshold <= 0 {
		return 0.5
	}
	uncertainty := 1 + (1 - clamp(confidence, 0.5, 1.0))
	z := math.Abs(edge) / (threshold * uncertainty)
	p := distuv.UnitNormal.CDF(z)
	return regressToMean(p)
}

// regressToMean pulls probabilities outside the [0.10, 0.90] band toward
// 0.5, capping effective confidence at 0.925 / 0.075.
func regressToMean(p float64) float64 {
	if p > regressionHigh || p < regressionLow {
		return 0.5 + (p-0.5)*(1-regressionFactor)
	}
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
