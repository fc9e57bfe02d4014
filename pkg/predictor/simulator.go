package predictor

import (
	"math"
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// DefaultTrials is the Monte Carlo trial count used when none is configured
const DefaultTrials = 8000

// RandomSource yields uniform draws in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns an independent, seeded generator.
// Not safe for concurrent use; give each simulation its own.
func NewRandomSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultSimulationParams returns 8000 trials, 7 top scorelines and the
// 1.5/2.5/3.5 total-goals lines
func DefaultSimulationParams() models.SimulationParams {
	return models.SimulationParams{
		Trials:        DefaultTrials,
		TopScorelines: 7,
		OverLines:     []float64{1.5, 2.5, 3.5},
	}
}

// PoissonSample draws a Poisson(lambda) count by multiplying uniform draws
// until the running product falls to e^-lambda.
// lambda <= 0 returns 0 without drawing.
func PoissonSample(lambda float64, rng RandomSource) int {
	if !(lambda > 0) {
		return 0
	}

	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for p > limit {
		k++
		p *= rng.Float64()
	}
	return k - 1
}

type scoreKey struct {
	goalsA int
	goalsB int
}

// Simulate plays params.Trials independent matches with Poisson goal counts
// and aggregates outcome and scoreline frequencies.
//
// Scorelines with equal frequency are ordered by fewer total goals, then by
// fewer goals for A.
func Simulate(lambdaA, lambdaB float64, rng RandomSource, params models.SimulationParams) models.SimulationResult {
	trials := params.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}

	var winsA, winsB, draws, bothScored int
	var sumA, sumB int
	overs := make([]int, len(params.OverLines))
	counts := make(map[scoreKey]int)

	for i := 0; i < trials; i++ {
		goalsA := PoissonSample(lambdaA, rng)
		goalsB := PoissonSample(lambdaB, rng)
		sumA += goalsA
		sumB += goalsB

		switch {
		case goalsA > goalsB:
			winsA++
		case goalsB > goalsA:
			winsB++
		default:
			draws++
		}

		if goalsA > 0 && goalsB > 0 {
			bothScored++
		}
		for j, line := range params.OverLines {
			if float64(goalsA+goalsB) > line {
				overs[j]++
			}
		}

		counts[scoreKey{goalsA, goalsB}]++
	}

	n := float64(trials)
	result := models.SimulationResult{
		Trials:                    trials,
		WinsA:                     winsA,
		WinsB:                     winsB,
		Draws:                     draws,
		WinProbabilityA:           float64(winsA) / n * 100,
		WinProbabilityB:           float64(winsB) / n * 100,
		DrawProbability:           float64(draws) / n * 100,
		AverageGoalsA:             float64(sumA) / n,
		AverageGoalsB:             float64(sumB) / n,
		TopScorelines:             topScorelines(counts, trials, params.TopScorelines),
		BothTeamsScoreProbability: float64(bothScored) / n * 100,
	}

	if len(params.OverLines) > 0 {
		result.OverProbabilities = make(map[string]float64, len(params.OverLines))
		for j, line := range params.OverLines {
			result.OverProbabilities[strconv.FormatFloat(line, 'f', -1, 64)] = float64(overs[j]) / n * 100
		}
	}

	return result
}

// topScorelines ranks the histogram and keeps the first limit entries.
// limit <= 0 keeps all of them.
func topScorelines(counts map[scoreKey]int, trials, limit int) []models.Scoreline {
	scorelines := make([]models.Scoreline, 0, len(counts))
	for key, count := range counts {
		scorelines = append(scorelines, models.Scoreline{
			GoalsA:      key.goalsA,
			GoalsB:      key.goalsB,
			Count:       count,
			Probability: float64(count) / float64(trials) * 100,
		})
	}

	sort.Slice(scorelines, func(i, j int) bool {
		a, b := scorelines[i], scorelines[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if totalA, totalB := a.GoalsA+a.GoalsB, b.GoalsA+b.GoalsB; totalA != totalB {
			return totalA < totalB
		}
		return a.GoalsA < b.GoalsA
	})

	if limit > 0 && len(scorelines) > limit {
		scorelines = scorelines[:limit]
	}
	return scorelines
}
