package termtreat

import "math"

// MaxRowsPerRank bounds how many rows SearchOptimal will stack at a single
// rank before it is forced to move down.
const MaxRowsPerRank = 6

// SearchEvalHook, if non-nil, is called once per terminal-node evaluation
// (every call to AnalyzeAlternate made by SearchOptimal). It exists purely
// for external instrumentation — e.g. a build-duration/evaluation-count
// metric — and is not consulted by the search itself.
var SearchEvalHook func()

// SearchOptimal performs the backtracking search that chooses the
// minimum-cost row vector for a term of the given frequency, subject to an
// SNR floor, at a fixed density. It returns the winning row vector and its
// cost (-DQ if the SNR floor is met, +Inf otherwise).
//
// The initial rank is min(ComputeMaxRank(frequency, density), MaxRankValue);
// ranks above that contribute no signal worth scanning. The search explores,
// at each rank, either dropping to the rank below unconditionally or adding
// one more row at the current rank and re-evaluating from there — whichever
// produces the lower cost, with ties resolved in favor of the additional
// row.
func SearchOptimal(frequency, density, snr float64) (RowVector, float64) {
	startRank := ComputeMaxRank(frequency, density)
	if startRank > MaxRankValue {
		startRank = MaxRankValue
	}

	var rows RowVector
	return searchRank(frequency, density, snr, int(startRank), rows)
}

func searchRank(frequency, density, snr float64, currentRank int, rows RowVector) (RowVector, float64) {
	if currentRank == -1 {
		if SearchEvalHook != nil {
			SearchEvalHook()
		}
		metrics := AnalyzeAlternate(rows, density, frequency)
		if metrics.SNR < snr || math.IsNaN(metrics.SNR) {
			return rows, math.Inf(1)
		}
		return rows, -metrics.DQ()
	}

	if FrequencyAtRank(frequency, Rank(currentRank)) > density {
		rows[currentRank]++
		return searchRank(frequency, density, snr, currentRank-1, rows)
	}

	if rows[currentRank] >= MaxRowsPerRank {
		return searchRank(frequency, density, snr, currentRank-1, rows)
	}

	rankDownRows, rankDownCost := searchRank(frequency, density, snr, currentRank-1, rows)

	rows[currentRank]++
	newRowRows, newRowCost := searchRank(frequency, density, snr, currentRank, rows)

	if rankDownCost < newRowCost {
		return rankDownRows, rankDownCost
	}
	return newRowRows, newRowCost
}
