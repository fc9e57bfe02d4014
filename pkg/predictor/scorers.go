package predictor

import (
	"math"
	"sort"

	"github.com/cypherlabdev/match-predictor-service/internal/models"
)

// DefaultTopScorers is the number of players reported per team
const DefaultTopScorers = 3

// EstimateScorers attributes a team's expected goals to its players by
// season goal share and returns each player's chance of scoring at least
// once, highest first. Players without goals or appearances are left out.
// topK <= 0 returns every eligible player.
func EstimateScorers(lambda float64, teamTotalSeasonGoals int, roster []models.RosterEntry, topK int) []models.PlayerScoringEstimate {
	if teamTotalSeasonGoals <= 0 || !(lambda > 0) {
		return []models.PlayerScoringEstimate{}
	}

	estimates := make([]models.PlayerScoringEstimate, 0, len(roster))
	for _, player := range roster {
		if player.Goals <= 0 || player.Appearances <= 0 {
			continue
		}

		share := float64(player.Goals) / float64(teamTotalSeasonGoals)
		playerLambda := lambda * share

		estimates = append(estimates, models.PlayerScoringEstimate{
			Name:               player.Name,
			Position:           player.Position,
			SeasonGoals:        player.Goals,
			Appearances:        player.Appearances,
			ScoringProbability: (1 - math.Exp(-playerLambda)) * 100,
		})
	}

	// Stable so equal probabilities keep roster order
	sort.SliceStable(estimates, func(i, j int) bool {
		return estimates[i].ScoringProbability > estimates[j].ScoringProbability
	})

	if topK > 0 && len(estimates) > topK {
		estimates = estimates[:topK]
	}
	return estimates
}
