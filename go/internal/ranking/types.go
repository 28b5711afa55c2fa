package ranking

import "math"

// Entry is one row of the points ranking
type Entry struct {
	Position    int
	ChannelNick string
	Points      int64
	// Average is the share of a 1000 point goal, as a percentage with two decimals
	Average float64
}

// PointsGoal is the reference total Average is measured against
const PointsGoal = 1000

// Header is the column row written by the exports
var Header = []string{"Position", "Viewer", "Points", "Average"}

func average(points int64) float64 {
	if points <= 0 {
		return 0
	}
	return math.Round(float64(points)/PointsGoal*100*100) / 100
}
