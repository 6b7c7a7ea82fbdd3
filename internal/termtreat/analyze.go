package termtreat

import "math"

// TermTreatmentMetrics is the output of AnalyzeAlternate: the SNR, scan
// cost, and memory cost of a candidate row vector, plus the derived DQ
// figure-of-merit. Any field may be +Inf or NaN for an infeasible vector;
// callers must check SNR before trusting DQ.
type TermTreatmentMetrics struct {
	SNR        float64
	ScanCost   float64
	MemoryCost float64
}

// DQ is the document-quality figure-of-merit SearchOptimal maximizes:
// 1 / (scan_cost * memory_cost).
func (m TermTreatmentMetrics) DQ() float64 {
	return 1 / (m.ScanCost * m.MemoryCost)
}

// RowVector holds a candidate row count per rank, indexed by rank.
type RowVector [MaxRankValue + 1]uint32

// AnalyzeAlternate evaluates a candidate row vector against a target
// density and a term's signal (frequency). It walks ranks from
// MaxRankValue down to 0, folding in the noise contributed by every rank
// with no assigned rows and the cost contributed by every rank with one or
// more.
//
// residual_noise starts NaN and is only made finite once the first rank
// with rows[i] > 0 is processed; until then, ranks with rows[i] == 0
// accumulate into it via new_noise, which is itself NaN on the very first
// rank processed (last_signal_at_rank starts undefined). This mirrors the
// source model precisely: seeding residual_noise with 0 instead of NaN
// changes which branch SearchOptimal prefers.
func AnalyzeAlternate(rows RowVector, density, signal float64) TermTreatmentMetrics {
	scanCost := 0.0
	memoryCost := 0.0
	residualNoise := math.NaN()
	lastSignalAtRank := math.NaN()
	weight := 1.0
	firstIntersection := true

	for i := int(MaxRankValue); i >= 0; i-- {
		rank := Rank(i)
		signalAtRank := FrequencyAtRank(signal, rank)
		noiseAtRank := math.Max(density-signalAtRank, 0)
		fullRowCost := 1 / math.Pow(2, float64(i))
		newNoise := lastSignalAtRank - signalAtRank
		lastSignalAtRank = signalAtRank

		if rows[i] == 0 {
			residualNoise += newNoise
			continue
		}

		for j := uint32(0); j < rows[i]; j++ {
			if signalAtRank > density {
				memoryCost += fullRowCost
			} else {
				memoryCost += signalAtRank / density
			}

			if j == 0 {
				if !firstIntersection {
					residualNoise = (newNoise + residualNoise) * noiseAtRank
				} else {
					residualNoise = noiseAtRank
					firstIntersection = false
				}
			} else {
				residualNoise *= noiseAtRank
			}

			scanCost += weight * fullRowCost
			densityAtRank := residualNoise + signalAtRank
			weight = 1 - math.Pow(1-densityAtRank, 64)
		}
	}

	snr := signal / residualNoise
	if residualNoise == 0 {
		snr = math.Inf(1)
	}

	return TermTreatmentMetrics{SNR: snr, ScanCost: scanCost, MemoryCost: memoryCost}
}
