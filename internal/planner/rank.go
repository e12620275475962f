package planner

import (
	"sort"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/mathutil"
)

// PointsToRank returns the reward needed to strictly pass whoever currently
// holds desiredRank (1-based) on the leaderboard. leaderboard holds the other
// players' points in any order. A rank past the end of the board is free.
func PointsToRank(currentPoints float64, leaderboard []float64, desiredRank int) (float64, error) {
	if desiredRank < 1 {
		return 0, invalidf("desired rank %d must be at least 1", desiredRank)
	}
	if !mathutil.IsFinite(currentPoints) {
		return 0, invalidf("current points %v must be finite", currentPoints)
	}

	board := make([]float64, 0, len(leaderboard))
	for i, points := range leaderboard {
		if !mathutil.IsFinite(points) {
			return 0, invalidf("leaderboard entry %d is %v", i, points)
		}
		board = append(board, points)
	}
	if desiredRank > len(board) {
		return 0, nil
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(board)))
	return mathutil.Max(0, board[desiredRank-1]-currentPoints+1), nil
}
