package smoketest

import (
	"fmt"
	"math"
)

// scoreSlack absorbs float noise in the score bounds.
const scoreSlack = 1e-9

// verifyPlaylist checks the invariants every successful response must hold:
// exactly k results, ranks 1..k, scores in [0, 1] and non-increasing.
func verifyPlaylist(p Playlist, k int) error {
	if len(p.Results) != k {
		return fmt.Errorf("got %d results, want %d", len(p.Results), k)
	}
	for i, t := range p.Results {
		if t.Rank != i+1 {
			return fmt.Errorf("result %d has rank %d", i, t.Rank)
		}
		if math.IsNaN(t.Score) || t.Score < -scoreSlack || t.Score > 1+scoreSlack {
			return fmt.Errorf("result %d has score %v outside [0, 1]", i, t.Score)
		}
		if i > 0 && t.Score > p.Results[i-1].Score {
			return fmt.Errorf("result %d score %v exceeds previous %v", i, t.Score, p.Results[i-1].Score)
		}
	}
	return nil
}
