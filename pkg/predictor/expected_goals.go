package predictor

import (
	"fmt"
	"math"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// Formula names for the expected-goals weighting presets
const (
	FormulaHomeWeighted = "home-weighted-v1"
	FormulaAwayBoost    = "away-boost-v1"
)

// DefaultExpectedGoalsParams returns the home-weighted-v1 formula with
// the standard rate and scale bounds
func DefaultExpectedGoalsParams() models.ExpectedGoalsParams {
	return models.ExpectedGoalsParams{
		Formula:       FormulaHomeWeighted,
		HomeAdvantage: 1.1,
		AwayFactor:    0.9,
		AttackWeight:  0.7,
		DefenseWeight: 0.3,
		MinRawLambda:  0.05,
		MaxRawLambda:  4.5,
		MinScale:      0.4,
		MaxScale:      2.5,
	}
}

// ExpectedGoalsParamsFor returns the preset for a named formula
func ExpectedGoalsParamsFor(formula string) (models.ExpectedGoalsParams, error) {
	params := DefaultExpectedGoalsParams()

	switch formula {
	case FormulaHomeWeighted, "":
		return params, nil
	case FormulaAwayBoost:
		params.Formula = FormulaAwayBoost
		params.HomeAdvantage = 1.0
		params.AwayFactor = 1.1
		return params, nil
	default:
		return models.ExpectedGoalsParams{}, fmt.Errorf("unknown expected goals formula: %q", formula)
	}
}

// EstimateExpectedGoals derives the calibrated rate pair for team A (home)
// against team B (away). A finite targetTotalOverride replaces the
// historical match total as the calibration target.
func EstimateExpectedGoals(
	statsA, statsB models.TeamSeasonStats,
	targetTotalOverride *float64,
	params models.ExpectedGoalsParams,
) models.ExpectedGoalsModel {
	attackA := firstNonZero(statsA.GoalsFor.Average.Home, statsA.GoalsFor.Average.Total)
	concededB := firstNonZero(statsB.GoalsAgainst.Average.Away, statsB.GoalsAgainst.Average.Total)
	attackB := firstNonZero(statsB.GoalsFor.Average.Away, statsB.GoalsFor.Average.Total)
	concededA := firstNonZero(statsA.GoalsAgainst.Average.Home, statsA.GoalsAgainst.Average.Total)

	rawA := params.HomeAdvantage * (params.AttackWeight*attackA + params.DefenseWeight*concededB)
	rawB := params.AwayFactor * (params.AttackWeight*attackB + params.DefenseWeight*concededA)

	rawA = clamp(rawA, params.MinRawLambda, params.MaxRawLambda)
	rawB = clamp(rawB, params.MinRawLambda, params.MaxRawLambda)
	baseTotal := rawA + rawB

	totalA := statsA.GoalsFor.Average.Total + statsA.GoalsAgainst.Average.Total
	totalB := statsB.GoalsFor.Average.Total + statsB.GoalsAgainst.Average.Total
	historicalTotal := (totalA + totalB) / 2
	if !isFinite(historicalTotal) || historicalTotal <= 0 {
		historicalTotal = baseTotal
	}

	targetTotal := historicalTotal
	if targetTotalOverride != nil && isFinite(*targetTotalOverride) {
		targetTotal = *targetTotalOverride
	}

	scaleFactor := 1.0
	if baseTotal > 0 {
		scaleFactor = targetTotal / baseTotal
	}
	if !isFinite(scaleFactor) {
		scaleFactor = 1.0
	}
	scaleFactor = clamp(scaleFactor, params.MinScale, params.MaxScale)

	return models.ExpectedGoalsModel{
		LambdaA:         rawA * scaleFactor,
		LambdaB:         rawB * scaleFactor,
		RawLambdaA:      rawA,
		RawLambdaB:      rawB,
		BaseTotal:       baseTotal,
		HistoricalTotal: historicalTotal,
		TargetTotal:     targetTotal,
		ScaleFactor:     scaleFactor,
		Formula:         params.Formula,
	}
}

// firstNonZero returns preferred unless it is zero, in which case fallback
func firstNonZero(preferred, fallback float64) float64 {
	if preferred != 0 {
		return preferred
	}
	return fallback
}

// clamp bounds v to [lo, hi]; NaN maps to lo
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
